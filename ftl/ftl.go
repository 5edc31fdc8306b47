// Package ftl implements parsing and canonical serialization of single
// Fluent (FTL) message entries.
//
// The supported subset covers the editor surface: `id = value` messages,
// block (multiline) values, attributes (`.name = value`), inline placeables
// (`{ $var }`), and leading comments. Select expressions and terms are out
// of scope; entries using them fail with a ParseError.
//
// Serialization is canonical, not byte-preserving: placeables are emitted as
// "{ source }", multiline values in block form with four-space indent, and
// the output always ends in exactly one line terminator regardless of the
// input's trailing whitespace.
package ftl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/l10n-tools/editkit/message"
)

// ParseError describes malformed FTL source.
type ParseError struct {
	// Line is the 1-based source line the error was detected on.
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ftl: line %d: %s", e.Line, e.Msg)
}

var identRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// slot accumulates the source lines of one pattern (the message value or one
// attribute) during parsing.
type slot struct {
	attr  string // attribute name, "" for the message value
	lines []string
	line  int // source line of the first fragment, for error reporting
}

// ParseEntry parses exactly one message entry from raw FTL text. Comment
// lines and blank lines before the entry are skipped; content after the
// entry's terminating blank line is an error.
func ParseEntry(raw string) (*message.Entry, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	var id string
	var slots []*slot
	started := false
	terminated := false

	for i, line := range lines {
		n := i + 1
		trimmed := strings.TrimSpace(line)

		if !started {
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			name, rest, err := splitAssign(trimmed, n)
			if err != nil {
				return nil, err
			}
			id = name
			v := &slot{line: n}
			if rest != "" {
				v.lines = append(v.lines, rest)
			}
			slots = append(slots, v)
			started = true
			continue
		}

		if trimmed == "" {
			terminated = true
			continue
		}
		if terminated {
			return nil, &ParseError{Line: n, Msg: "unexpected content after entry"}
		}
		if !isIndented(line) {
			return nil, &ParseError{Line: n, Msg: fmt.Sprintf("unexpected top-level line %q", trimmed)}
		}

		if strings.HasPrefix(trimmed, ".") {
			name, rest, err := splitAssign(trimmed[1:], n)
			if err != nil {
				return nil, &ParseError{Line: n, Msg: "malformed attribute: " + trimmed}
			}
			a := &slot{attr: name, line: n}
			if rest != "" {
				a.lines = append(a.lines, rest)
			}
			slots = append(slots, a)
			continue
		}

		// Continuation of the most recent slot.
		cur := slots[len(slots)-1]
		cur.lines = append(cur.lines, trimmed)
	}

	if !started {
		return nil, &ParseError{Line: len(lines), Msg: "no message entry found"}
	}

	msg := &message.Message{}
	for _, s := range slots {
		src := strings.Join(s.lines, "\n")
		if err := checkBraces(src, s.line); err != nil {
			return nil, err
		}
		pattern := message.ParsePattern(src)
		if s.attr == "" {
			msg.Pattern = pattern
		} else {
			if msg.Attribute(s.attr) != nil {
				return nil, &ParseError{Line: s.line, Msg: "duplicate attribute " + s.attr}
			}
			msg.Attributes = append(msg.Attributes, message.Attribute{Name: s.attr, Pattern: pattern})
		}
	}
	if hasSelect(msg.Pattern) {
		return nil, &ParseError{Line: 1, Msg: "select expressions are not supported"}
	}
	for _, a := range msg.Attributes {
		if hasSelect(a.Pattern) {
			return nil, &ParseError{Line: 1, Msg: "select expressions are not supported"}
		}
	}

	return &message.Entry{ID: id, Value: msg}, nil
}

// hasSelect reports whether any placeable carries a select expression. The
// arrow only has meaning inside a placeable; literal text may contain one.
func hasSelect(p message.Pattern) bool {
	for _, el := range p {
		if pl, ok := el.(message.Placeable); ok && strings.Contains(pl.Source, "->") {
			return true
		}
	}
	return false
}

// SerializeEntry renders an entry in canonical FTL form, ending in exactly
// one line terminator.
func SerializeEntry(e *message.Entry) string {
	msg, ok := e.Value.(*message.Message)
	if !ok {
		return e.ID + " =\n"
	}

	var b strings.Builder
	writePattern(&b, e.ID, msg.Pattern, 4)
	for _, a := range msg.Attributes {
		b.WriteString("    .")
		writePattern(&b, a.Name, a.Pattern, 8)
	}
	return b.String()
}

// patternSource renders a pattern in canonical FTL form: text verbatim,
// placeables as "{ source }" with single-space padding. Reserializing thus
// normalizes placeable whitespace ({$var} and { $var } come out the same).
func patternSource(p message.Pattern) string {
	var b strings.Builder
	for _, el := range p {
		switch el := el.(type) {
		case message.Text:
			b.WriteString(el.Value)
		case message.Placeable:
			b.WriteString("{ ")
			b.WriteString(strings.TrimSpace(el.Source))
			b.WriteString(" }")
		}
	}
	return b.String()
}

// writePattern writes "name = value" with block form for multiline values,
// indenting continuation lines by indent spaces.
func writePattern(b *strings.Builder, name string, p message.Pattern, indent int) {
	src := patternSource(p)
	b.WriteString(name)
	b.WriteString(" =")
	if src == "" {
		b.WriteString("\n")
		return
	}
	if !strings.Contains(src, "\n") {
		b.WriteString(" ")
		b.WriteString(src)
		b.WriteString("\n")
		return
	}
	pad := strings.Repeat(" ", indent)
	b.WriteString("\n")
	for _, line := range strings.Split(src, "\n") {
		b.WriteString(pad)
		b.WriteString(line)
		b.WriteString("\n")
	}
}

// splitAssign splits "ident = rest" and validates the identifier.
func splitAssign(s string, line int) (name, rest string, err error) {
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return "", "", &ParseError{Line: line, Msg: fmt.Sprintf("expected %q in %q", "=", s)}
	}
	name = strings.TrimSpace(s[:eq])
	if !identRe.MatchString(name) {
		return "", "", &ParseError{Line: line, Msg: fmt.Sprintf("invalid identifier %q", name)}
	}
	return name, strings.TrimSpace(s[eq+1:]), nil
}

// checkBraces rejects unbalanced placeable braces in pattern source.
func checkBraces(src string, line int) error {
	depth := 0
	for _, r := range src {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return &ParseError{Line: line, Msg: "unmatched } in pattern"}
			}
		}
	}
	if depth != 0 {
		return &ParseError{Line: line, Msg: "unterminated placeable"}
	}
	return nil
}

// isIndented reports whether the raw line begins with whitespace.
func isIndented(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}
