// Package format selects parse/serialize capabilities by localization
// syntax. The set of formats is closed: plain strings and Fluent FTL.
//
// Each Adapter also knows how to normalize its own serializer's
// non-semantic trailing whitespace and how to derive the comparison text
// for a stored history string, so callers never branch on the format
// themselves.
package format

import (
	"fmt"

	"github.com/l10n-tools/editkit/ftl"
	"github.com/l10n-tools/editkit/message"
)

// Format identifies a localization syntax.
type Format string

const (
	// Plain is an unstructured single-value string format.
	Plain Format = "plain"
	// Fluent is the Fluent (FTL) message syntax.
	Fluent Format = "ftl"
)

// Adapter is the per-syntax capability set.
type Adapter interface {
	// ParseEntry converts raw text into an entry, failing when the text
	// does not conform to the format's grammar.
	ParseEntry(text string) (*message.Entry, error)
	// SerializeEntry converts an entry into canonical raw text. Canonical
	// means stable, not byte-identical to arbitrary input.
	SerializeEntry(e *message.Entry) string
	// Normalize strips exactly the serializer's known non-semantic trailing
	// whitespace from text, and nothing else. Internal whitespace and case
	// are meaningful edits and stay untouched.
	Normalize(text string) string
	// StoredText derives the comparison text for a stored history string.
	// Structured syntaxes reparse the stored text and reserialize it, so
	// that formatting differences in the stored form cannot mask a match;
	// two serialized forms are equivalent iff their normalized canonical
	// renderings are character-equal.
	StoredText(stored string) (string, error)
}

var adapters = map[Format]Adapter{
	Plain:  plainAdapter{},
	Fluent: fluentAdapter{},
}

// For returns the adapter for a format identifier.
func For(f Format) (Adapter, error) {
	a, ok := adapters[f]
	if !ok {
		return nil, fmt.Errorf("unknown format %q", f)
	}
	return a, nil
}

// Known reports whether f names a supported format.
func Known(f Format) bool {
	_, ok := adapters[f]
	return ok
}

// Parse is a convenience wrapper over For + ParseEntry.
func Parse(f Format, text string) (*message.Entry, error) {
	a, err := For(f)
	if err != nil {
		return nil, err
	}
	return a.ParseEntry(text)
}

// Serialize is a convenience wrapper over For + SerializeEntry.
func Serialize(f Format, e *message.Entry) (string, error) {
	a, err := For(f)
	if err != nil {
		return "", err
	}
	return a.SerializeEntry(e), nil
}

// ---------------------------------------------------------------------------
// plain
// ---------------------------------------------------------------------------

// plainAdapter treats the whole text as one editable value. Parsing cannot
// fail and serialization is the identity, so every byte of the text is
// semantic, trailing whitespace included.
type plainAdapter struct{}

func (plainAdapter) ParseEntry(text string) (*message.Entry, error) {
	return &message.Entry{
		Value: &message.Message{Pattern: message.ParsePattern(text)},
	}, nil
}

func (plainAdapter) SerializeEntry(e *message.Entry) string {
	msg, ok := e.Value.(*message.Message)
	if !ok {
		return ""
	}
	return msg.Pattern.Source()
}

func (plainAdapter) Normalize(text string) string {
	return text
}

func (plainAdapter) StoredText(stored string) (string, error) {
	return stored, nil
}

// ---------------------------------------------------------------------------
// ftl
// ---------------------------------------------------------------------------

type fluentAdapter struct{}

func (fluentAdapter) ParseEntry(text string) (*message.Entry, error) {
	return ftl.ParseEntry(text)
}

func (fluentAdapter) SerializeEntry(e *message.Entry) string {
	return ftl.SerializeEntry(e)
}

// Normalize strips the single trailing line terminator the FTL serializer
// always emits. "msg = hello" and "msg = hello\n" are equivalent; a second
// newline, or any other whitespace, is not.
func (fluentAdapter) Normalize(text string) string {
	if len(text) > 0 && text[len(text)-1] == '\n' {
		text = text[:len(text)-1]
		if len(text) > 0 && text[len(text)-1] == '\r' {
			text = text[:len(text)-1]
		}
	}
	return text
}

func (fluentAdapter) StoredText(stored string) (string, error) {
	entry, err := ftl.ParseEntry(stored)
	if err != nil {
		return "", err
	}
	return ftl.SerializeEntry(entry), nil
}
