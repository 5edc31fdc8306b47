// Package match decides whether a translator's in-progress edit is
// semantically identical to the active translation or to a prior translation
// in the string's history.
//
// Matching is a pure computation over in-memory snapshots: it reconstructs
// the edited entry from the live field values, serializes it through the
// string's format adapter, and compares canonical texts. Two serialized
// forms are equivalent iff their normalized renderings are character-equal,
// where normalization strips only the serializer's own trailing line
// terminator.
package match

import (
	"fmt"

	"github.com/l10n-tools/editkit/fields"
	"github.com/l10n-tools/editkit/format"
	"github.com/l10n-tools/editkit/history"
	"github.com/l10n-tools/editkit/message"
)

// Params are the read-only inputs of one match computation.
type Params struct {
	// Active is the opaque value standing for the currently active
	// translation. It is returned untouched on an identity match and never
	// inspected.
	Active any
	// Format is the string's declared syntax.
	Format format.Format
	// History is the string's prior translations in caller-supplied order,
	// newest first by convention. On ties the first match wins; the matcher
	// never reorders or ranks.
	History []history.Record
	// Fields are the live field values from the editor.
	Fields []fields.Field
	// Initial is the entry as it was before any edits, i.e. the content of
	// the active translation.
	Initial *message.Entry
}

// Result is the outcome of one match computation. Exactly one of Active and
// Record is set on a match; the zero Result means no known translation is
// identical to the edit.
type Result struct {
	Active any
	Record *history.Record
}

// None reports whether nothing matched.
func (r Result) None() bool {
	return r.Active == nil && r.Record == nil
}

// Existing computes the match for the current edit.
//
// The edit matches the active translation when its canonical serialization
// round-trips to the initial entry's, even if individual fields were touched
// and changed back. Otherwise each history record is compared in order and
// the first equivalent one is returned. History records whose stored text
// fails to parse are skipped as non-matching; the scan continues. Failures
// on the live edit itself are collaborator contract violations and are
// returned as errors.
func Existing(p Params) (Result, error) {
	ad, err := format.For(p.Format)
	if err != nil {
		return Result{}, err
	}

	edited, err := fields.Reconstruct(p.Initial, p.Fields)
	if err != nil {
		return Result{}, fmt.Errorf("reconstructing edited entry: %w", err)
	}
	current := ad.Normalize(ad.SerializeEntry(edited))
	initial := ad.Normalize(ad.SerializeEntry(p.Initial))

	if current == initial {
		return Result{Active: p.Active}, nil
	}

	for i := range p.History {
		rec := &p.History[i]
		text, err := ad.StoredText(rec.Text)
		if err != nil {
			// Unparsable record: not a match.
			continue
		}
		if ad.Normalize(text) == current {
			return Result{Record: rec}, nil
		}
	}
	return Result{}, nil
}

// New returns a zero-argument matcher closed over fixed inputs, for callers
// that re-run the same computation per render.
func New(p Params) func() (Result, error) {
	return func() (Result, error) {
		return Existing(p)
	}
}
