// Package fields projects an entry's editable slots into an ordered field
// list and splices edited field values back into an entry of compatible
// shape.
package fields

import (
	"errors"
	"fmt"
	"strings"

	"github.com/l10n-tools/editkit/message"
)

// ErrStructuralMismatch reports that a field's key path has no counterpart
// in the entry being reconstructed.
var ErrStructuralMismatch = errors.New("no slot for field path")

// Path identifies one editable slot of an entry. The first segment is
// "value" for the message value or "attr" followed by the attribute name.
type Path []string

// String renders the path in dotted form for messages and errors.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Equal reports whether two paths identify the same slot.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Field is one user-editable slot of an entry. Editing replaces Value only;
// the path, name, and labels stay fixed for the lifetime of the edit.
type Field struct {
	// Path is the stable key of the slot within the entry.
	Path Path
	// Name is the display name: "" for the message value, the attribute
	// name otherwise.
	Name string
	// Labels is the ordered label sequence shown above the input.
	Labels []string
	// Value is the current editable text, placeables inline.
	Value string
}

// Project derives the ordered field list from an entry: the value slot
// first, then one field per attribute in document order. Projection is
// deterministic: the same entry shape always yields the same fields.
func Project(e *message.Entry) []Field {
	msg, ok := e.Value.(*message.Message)
	if !ok {
		return nil
	}

	fs := []Field{{
		Path:   Path{"value"},
		Name:   "",
		Labels: []string{"Value"},
		Value:  msg.Pattern.Source(),
	}}
	for _, a := range msg.Attributes {
		fs = append(fs, Field{
			Path:   Path{"attr", a.Name},
			Name:   a.Name,
			Labels: []string{a.Name},
			Value:  a.Pattern.Source(),
		})
	}
	return fs
}

// Reconstruct returns a copy of ref with each field's current value spliced
// into the slot named by its path. Fields are matched by path, not by
// position, so the same field list can be reconstructed against any
// shape-compatible entry (for example a reparsed history entry). A path
// with no counterpart in ref yields ErrStructuralMismatch; ref is never
// modified.
func Reconstruct(ref *message.Entry, fs []Field) (*message.Entry, error) {
	if ref == nil {
		return nil, errors.New("nil reference entry")
	}
	out := ref.Clone()
	msg, ok := out.Value.(*message.Message)
	if !ok {
		if len(fs) == 0 {
			return out, nil
		}
		return nil, fmt.Errorf("field %s: %w", fs[0].Path, ErrStructuralMismatch)
	}

	for _, f := range fs {
		pattern := message.ParsePattern(f.Value)
		switch {
		case f.Path.Equal(Path{"value"}):
			msg.Pattern = pattern
		case len(f.Path) == 2 && f.Path[0] == "attr":
			a := msg.Attribute(f.Path[1])
			if a == nil {
				return nil, fmt.Errorf("field %s: %w", f.Path, ErrStructuralMismatch)
			}
			a.Pattern = pattern
		default:
			return nil, fmt.Errorf("field %s: %w", f.Path, ErrStructuralMismatch)
		}
	}
	return out, nil
}
