package match

import (
	"testing"

	"github.com/l10n-tools/editkit/fields"
	"github.com/l10n-tools/editkit/format"
	"github.com/l10n-tools/editkit/history"
	"github.com/l10n-tools/editkit/message"
)

// active is the opaque reference-translation sentinel used in tests.
type active struct{ id int }

func parse(t *testing.T, f format.Format, text string) *message.Entry {
	t.Helper()
	e, err := format.Parse(f, text)
	if err != nil {
		t.Fatalf("Parse(%s, %q) error: %v", f, text, err)
	}
	return e
}

// edit projects fields from initial and overrides the value slot.
func edit(t *testing.T, initial *message.Entry, value string) []fields.Field {
	t.Helper()
	fs := fields.Project(initial)
	for i := range fs {
		if fs[i].Path.Equal(fields.Path{"value"}) {
			fs[i].Value = value
			return fs
		}
	}
	t.Fatal("no value field")
	return nil
}

func TestIdentityRoundTripReturnsActive(t *testing.T) {
	for _, tc := range []struct {
		f    format.Format
		text string
	}{
		{f: format.Plain, text: "hello, world!"},
		{f: format.Fluent, text: "msg = hello, world!"},
	} {
		initial := parse(t, tc.f, tc.text)
		ref := &active{id: 1}

		res, err := Existing(Params{
			Active:  ref,
			Format:  tc.f,
			History: []history.Record{{ID: "98", Text: "something else"}},
			Fields:  fields.Project(initial),
			Initial: initial,
		})
		if err != nil {
			t.Fatalf("%s: Existing error: %v", tc.f, err)
		}
		if res.Active != ref {
			t.Fatalf("%s: result = %#v, want the active sentinel", tc.f, res)
		}
	}
}

func TestPlainEmptyEditMatchesActiveBeforeHistory(t *testing.T) {
	// Initial and live are both empty: identity with the active translation
	// wins even though history also holds an empty record.
	initial := parse(t, format.Plain, "")
	ref := &active{id: 7}

	res, err := Existing(Params{
		Active: ref,
		Format: format.Plain,
		History: []history.Record{
			{ID: "12", Text: "I was there before"},
			{ID: "98", Text: "hello, world!"},
			{ID: "10010", Text: ""},
		},
		Fields:  fields.Project(initial),
		Initial: initial,
	})
	if err != nil {
		t.Fatalf("Existing error: %v", err)
	}
	if res.Active != ref {
		t.Fatalf("result = %#v, want active sentinel", res)
	}
}

func TestPlainEmptyEditMatchesEmptyHistoryRecord(t *testing.T) {
	initial := parse(t, format.Plain, "x")

	res, err := Existing(Params{
		Active: &active{},
		Format: format.Plain,
		History: []history.Record{
			{ID: "12", Text: "I was there before"},
			{ID: "98", Text: "hello, world!"},
			{ID: "10010", Text: ""},
		},
		Fields:  edit(t, initial, ""),
		Initial: initial,
	})
	if err != nil {
		t.Fatalf("Existing error: %v", err)
	}
	if res.Record == nil || res.Record.ID != "10010" {
		t.Fatalf("result = %#v, want empty history record 10010", res)
	}
}

func TestFluentEditMatchesHistoryAcrossFormatting(t *testing.T) {
	initial := parse(t, format.Fluent, "msg = something")

	res, err := Existing(Params{
		Active: &active{},
		Format: format.Fluent,
		History: []history.Record{
			{ID: "31", Text: "msg = unrelated"},
			{ID: "42", Text: "msg = Come on Morty!\n"},
		},
		Fields:  edit(t, initial, "Come on Morty!"),
		Initial: initial,
	})
	if err != nil {
		t.Fatalf("Existing error: %v", err)
	}
	if res.Record == nil || res.Record.ID != "42" {
		t.Fatalf("result = %#v, want record 42", res)
	}
}

func TestFluentRoundTripBeatsHistory(t *testing.T) {
	initial := parse(t, format.Fluent, "msg = something")
	ref := &active{id: 3}

	// Re-entering the initial text is indistinguishable from no edit.
	res, err := Existing(Params{
		Active: ref,
		Format: format.Fluent,
		History: []history.Record{
			{ID: "42", Text: "msg = Come on Morty!\n"},
		},
		Fields:  edit(t, initial, "something"),
		Initial: initial,
	})
	if err != nil {
		t.Fatalf("Existing error: %v", err)
	}
	if res.Active != ref {
		t.Fatalf("result = %#v, want active sentinel", res)
	}
}

func TestTrailingTerminatorOnlyIsEquivalent(t *testing.T) {
	initial := parse(t, format.Fluent, "msg = something")

	// Record stored without the serializer's trailing newline still matches.
	res, err := Existing(Params{
		Active:  &active{},
		Format:  format.Fluent,
		History: []history.Record{{ID: "1", Text: "msg = hello"}},
		Fields:  edit(t, initial, "hello"),
		Initial: initial,
	})
	if err != nil {
		t.Fatalf("Existing error: %v", err)
	}
	if res.Record == nil || res.Record.ID != "1" {
		t.Fatalf("result = %#v, want record 1", res)
	}

	// Case differences stay meaningful.
	res, err = Existing(Params{
		Active:  &active{},
		Format:  format.Fluent,
		History: []history.Record{{ID: "1", Text: "msg = Hello"}},
		Fields:  edit(t, initial, "hello"),
		Initial: initial,
	})
	if err != nil {
		t.Fatalf("Existing error: %v", err)
	}
	if !res.None() {
		t.Fatalf("result = %#v, want no match", res)
	}
}

func TestFirstMatchWinsOnTies(t *testing.T) {
	initial := parse(t, format.Plain, "x")

	res, err := Existing(Params{
		Active: &active{},
		Format: format.Plain,
		History: []history.Record{
			{ID: "first", Text: "hello"},
			{ID: "second", Text: "hello"},
		},
		Fields:  edit(t, initial, "hello"),
		Initial: initial,
	})
	if err != nil {
		t.Fatalf("Existing error: %v", err)
	}
	if res.Record == nil || res.Record.ID != "first" {
		t.Fatalf("result = %#v, want the earlier record", res)
	}
}

func TestUnparsableAndDifferentlyShapedRecordsDoNotMatch(t *testing.T) {
	initial := parse(t, format.Fluent, "msg = old\n    .title = Old title")
	fs := fields.Project(initial)
	fs[0].Value = "new"
	fs[1].Value = "New title"

	res, err := Existing(Params{
		Active: &active{},
		Format: format.Fluent,
		History: []history.Record{
			{ID: "junk", Text: "this is not ftl"},
			{ID: "shape", Text: "msg = new"}, // value matches but the attribute is absent
			{ID: "hit", Text: "msg = new\n    .title = New title\n"},
		},
		Fields:  fs,
		Initial: initial,
	})
	if err != nil {
		t.Fatalf("Existing error: %v", err)
	}
	if res.Record == nil || res.Record.ID != "hit" {
		t.Fatalf("result = %#v, want record hit after skipping bad records", res)
	}
}

func TestArrowBearingTextMatchesHistory(t *testing.T) {
	// A literal arrow in the translation is plain text, not Fluent select
	// syntax; records carrying one must stay comparable.
	initial := parse(t, format.Fluent, "msg = something")

	res, err := Existing(Params{
		Active:  &active{},
		Format:  format.Fluent,
		History: []history.Record{{ID: "42", Text: "msg = File -> Save\n"}},
		Fields:  edit(t, initial, "File -> Save"),
		Initial: initial,
	})
	if err != nil {
		t.Fatalf("Existing error: %v", err)
	}
	if res.Record == nil || res.Record.ID != "42" {
		t.Fatalf("result = %#v, want record 42", res)
	}
}

func TestMultiFieldMatchRequiresAllSlots(t *testing.T) {
	initial := parse(t, format.Fluent, "msg = old\n    .title = Old title")
	fs := fields.Project(initial)
	fs[0].Value = "new"
	// .title still carries the old text: the whole message differs.

	res, err := Existing(Params{
		Active: &active{},
		Format: format.Fluent,
		History: []history.Record{
			{ID: "42", Text: "msg = new\n    .title = New title\n"},
		},
		Fields:  fs,
		Initial: initial,
	})
	if err != nil {
		t.Fatalf("Existing error: %v", err)
	}
	if !res.None() {
		t.Fatalf("result = %#v, want no match", res)
	}
}

func TestLiveEditFailurePropagates(t *testing.T) {
	initial := parse(t, format.Fluent, "msg = hello")

	_, err := Existing(Params{
		Active:  &active{},
		Format:  format.Fluent,
		Fields:  []fields.Field{{Path: fields.Path{"attr", "ghost"}, Value: "x"}},
		Initial: initial,
	})
	if err == nil {
		t.Fatal("live-edit structural mismatch must be reported, not absorbed")
	}
}

func TestUnknownFormatIsAnError(t *testing.T) {
	_, err := Existing(Params{Format: "po", Initial: parse(t, format.Plain, "x")})
	if err == nil {
		t.Fatal("unknown format must error")
	}
}

func TestNewClosureRecomputes(t *testing.T) {
	initial := parse(t, format.Plain, "hello")
	ref := &active{}
	get := New(Params{
		Active:  ref,
		Format:  format.Plain,
		Fields:  fields.Project(initial),
		Initial: initial,
	})

	for i := 0; i < 3; i++ {
		res, err := get()
		if err != nil {
			t.Fatalf("call %d error: %v", i, err)
		}
		if res.Active != ref {
			t.Fatalf("call %d result = %#v", i, res)
		}
	}
}
