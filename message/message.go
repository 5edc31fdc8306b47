// Package message defines the canonical structured form of one localizable
// message: an Entry whose value is a pattern of text and placeable elements,
// optionally carrying declarations and named attributes.
//
// The structural shape of an Entry (its set of pattern slots) is fixed once
// parsed; editing only ever replaces the text content of those slots.
package message

import "strings"

// Entry is one localizable message.
type Entry struct {
	// ID is the message identifier within its resource.
	ID string
	// Value is the message content. Value is a closed sum; Message is the
	// only variant today.
	Value Value
}

// Value is the tagged variant type for an Entry's content.
type Value interface {
	isValue()
}

// Message is the pattern-message variant of Value.
type Message struct {
	// Declarations are syntax-level declarations preceding the pattern.
	// The Fluent subset never produces any; they round-trip untouched for
	// syntaxes that have them.
	Declarations []Declaration
	// Pattern is the message value.
	Pattern Pattern
	// Attributes are named sub-patterns, in document order.
	Attributes []Attribute
}

func (*Message) isValue() {}

// Declaration is a named declaration attached to a message.
type Declaration struct {
	Name  string
	Value string
}

// Attribute is a named sub-pattern of a message.
type Attribute struct {
	Name    string
	Pattern Pattern
}

// Pattern is an ordered sequence of content elements.
type Pattern []Element

// Element is the tagged variant type for pattern content.
type Element interface {
	isElement()
}

// Text is a literal text run.
type Text struct {
	Value string
}

func (Text) isElement() {}

// Placeable is an inline expression kept as opaque source, without the
// surrounding braces. The source is stored verbatim, surrounding whitespace
// included; syntax-specific serializers decide how to render it.
type Placeable struct {
	Source string
}

func (Placeable) isElement() {}

// Source renders the pattern back to its textual form, placeables emitted
// verbatim between braces. Source is the exact inverse of ParsePattern:
// ParsePattern(p.Source()) reproduces p for any pattern, so formats whose
// text carries no placeable semantics round-trip byte-identically.
func (p Pattern) Source() string {
	var b strings.Builder
	for _, el := range p {
		switch el := el.(type) {
		case Text:
			b.WriteString(el.Value)
		case Placeable:
			b.WriteString("{")
			b.WriteString(el.Source)
			b.WriteString("}")
		}
	}
	return b.String()
}

// ParsePattern splits editable text into a pattern, recognizing balanced
// "{ ... }" runs as placeables. Unbalanced braces are kept as literal text
// rather than rejected: pattern text comes from the editor, not from a
// syntax-checked source.
func ParsePattern(text string) Pattern {
	var p Pattern
	var lit strings.Builder
	for i := 0; i < len(text); {
		open := strings.IndexByte(text[i:], '{')
		if open < 0 {
			lit.WriteString(text[i:])
			break
		}
		open += i
		depth := 0
		end := -1
		for j := open; j < len(text); j++ {
			switch text[j] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					end = j
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			lit.WriteString(text[i:])
			break
		}
		lit.WriteString(text[i:open])
		if lit.Len() > 0 {
			p = append(p, Text{Value: lit.String()})
			lit.Reset()
		}
		p = append(p, Placeable{Source: text[open+1 : end]})
		i = end + 1
	}
	if lit.Len() > 0 {
		p = append(p, Text{Value: lit.String()})
	}
	return p
}

// IsEmpty reports whether the pattern has no content at all.
func (p Pattern) IsEmpty() bool {
	for _, el := range p {
		switch el := el.(type) {
		case Text:
			if el.Value != "" {
				return false
			}
		case Placeable:
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the entry. Reconstruction splices edited text
// into a clone so that the original entry stays a read-only snapshot.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	out := &Entry{ID: e.ID}
	if msg, ok := e.Value.(*Message); ok {
		out.Value = msg.clone()
	}
	return out
}

func (m *Message) clone() *Message {
	out := &Message{
		Declarations: append([]Declaration(nil), m.Declarations...),
		Pattern:      append(Pattern(nil), m.Pattern...),
	}
	for _, a := range m.Attributes {
		out.Attributes = append(out.Attributes, Attribute{
			Name:    a.Name,
			Pattern: append(Pattern(nil), a.Pattern...),
		})
	}
	return out
}

// Attribute returns the named attribute of a message, or nil.
func (m *Message) Attribute(name string) *Attribute {
	for i := range m.Attributes {
		if m.Attributes[i].Name == name {
			return &m.Attributes[i]
		}
	}
	return nil
}
