package calendar_test

import (
	"slices"
	"testing"
	"time"

	rowskema "github.com/reoring/rowskema"
	"github.com/reoring/rowskema/contract/calendar"
)

func TestEvents_RoundTrip(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	color := calendar.ARGB(0x00FF00)
	done := true
	in := []calendar.Event{
		{
			ID: "e1", Title: "Standup", Location: "Room 1", Color: &color, Start: &start,
			End: start.Add(15 * time.Minute), Attendees: []string{"a", "b"},
			URI: "content://events/1", IsCompleted: &done,
		},
		{ID: "e2", Title: "Holiday", End: start.Add(24 * time.Hour), AllDay: true, URI: "content://events/2"},
	}
	out, err := calendar.DecodeEvents(calendar.EncodeEvents(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 events, got %d", len(out))
	}
	first := out[0]
	if first.Title != "Standup" || first.Location != "Room 1" || *first.Color != color {
		t.Fatalf("unexpected first event %+v", first)
	}
	if !first.Start.Equal(start) || !first.End.Equal(in[0].End) || first.AllDay {
		t.Fatalf("time fields mismatch %+v", first)
	}
	if !slices.Equal(first.Attendees, []string{"a", "b"}) || first.IsCompleted == nil || !*first.IsCompleted {
		t.Fatalf("attendees or completion mismatch %+v", first)
	}
	second := out[1]
	if !second.AllDay || second.Start != nil || second.Attendees != nil || second.Color != nil {
		t.Fatalf("optional fields must stay absent %+v", second)
	}
}

func TestEvents_SkipsRowsWithoutRequiredFields(t *testing.T) {
	table := &rowskema.Table{
		Cols: []string{"id", "title", "uri", "end_time"},
		Rows: [][]rowskema.Value{
			{rowskema.TextValue("a"), rowskema.TextValue("no uri"), rowskema.Null(), rowskema.Int64Value(1)},
			{rowskema.TextValue("b"), rowskema.TextValue("no end"), rowskema.TextValue("u"), rowskema.Null()},
			{rowskema.TextValue("c"), rowskema.TextValue("ok"), rowskema.TextValue("u"), rowskema.Int64Value(1)},
		},
	}
	out, err := calendar.DecodeEvents(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "c" {
		t.Fatalf("only the complete row must survive, got %+v", out)
	}
}

func TestEvents_ProviderWithoutIncludeTime(t *testing.T) {
	table := &rowskema.Table{
		Cols: []string{"id", "title", "uri", "end_time"},
		Rows: [][]rowskema.Value{{
			rowskema.TextValue("e"), rowskema.TextValue("t"), rowskema.TextValue("u"), rowskema.Int64Value(1),
		}},
	}
	out, _ := calendar.DecodeEvents(table)
	if len(out) != 1 || out[0].AllDay {
		t.Fatalf("unknown include_time must not mark the event all-day: %+v", out)
	}
}

func TestLists_RoundTrip(t *testing.T) {
	in := []calendar.List{{ID: "c1", Name: "Work", Color: 5, AccountName: "me", Types: []calendar.ListType{calendar.ListCalendar, calendar.ListTasks}}}
	table := calendar.EncodeLists(in)
	if s, _ := table.Rows[0][4].AsText(); s != `["Calendar","Tasks"]` {
		t.Fatalf("content types must travel by name, got %s", s)
	}
	out, err := calendar.DecodeLists(table)
	if err != nil || len(out) != 1 {
		t.Fatalf("unexpected decode %v (%v)", out, err)
	}
	if !slices.Equal(out[0].Types, in[0].Types) || out[0].AccountName != "me" {
		t.Fatalf("list mismatch %+v", out[0])
	}
}

func TestLists_UnknownContentTypeSkipsRow(t *testing.T) {
	table := &rowskema.Table{
		Cols: []string{"id", "name", "content_types"},
		Rows: [][]rowskema.Value{
			{rowskema.TextValue("c1"), rowskema.TextValue("Work"), rowskema.TextValue(`["Journal"]`)},
			{rowskema.TextValue("c2"), rowskema.TextValue("Chores"), rowskema.TextValue(`["tasks"]`)},
			{rowskema.TextValue("c3"), rowskema.TextValue("Home"), rowskema.TextValue(`["Tasks"]`)},
		},
	}
	out, err := calendar.DecodeLists(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "c3" || !slices.Equal(out[0].Types, []calendar.ListType{calendar.ListTasks}) {
		t.Fatalf("only exact case names may decode, got %+v", out)
	}
}

func TestEventRecord_RoundTrip(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	in := calendar.Event{ID: "e1", Title: "Review", Start: &start, End: start.Add(time.Hour), URI: "content://events/1"}
	rec := calendar.EncodeEventRecord(in)
	if _, ok := rec["description"]; ok {
		t.Fatalf("unset columns must be left out of the record: %v", rec)
	}
	out, err := calendar.DecodeEvents(rec)
	if err != nil || len(out) != 1 {
		t.Fatalf("unexpected decode %v (%v)", out, err)
	}
	e := out[0]
	if e.ID != "e1" || !e.Start.Equal(start) || !e.End.Equal(in.End) || e.AllDay || e.URI != in.URI {
		t.Fatalf("record mismatch %+v", e)
	}
}

func TestQuery_Values(t *testing.T) {
	start := time.UnixMilli(1000).UTC()
	q := calendar.Query{Text: "dentist", Start: &start, Excluded: []string{"a", "b"}}
	vals := q.Values()
	if vals[calendar.ParamStartTime] != "1000" || vals[calendar.ParamExclude] != "a,b" {
		t.Fatalf("unexpected values %v", vals)
	}
	if _, ok := vals[calendar.ParamEndTime]; ok {
		t.Fatalf("unset end must be omitted")
	}
	back := calendar.ParseQuery(vals)
	if back.Text != "dentist" || !back.Start.Equal(start) || back.End != nil || !slices.Equal(back.Excluded, q.Excluded) {
		t.Fatalf("parse mismatch %+v", back)
	}
}
