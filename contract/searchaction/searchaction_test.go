package searchaction_test

import (
	"testing"

	rowskema "github.com/reoring/rowskema"
	"github.com/reoring/rowskema/contract/searchaction"
)

func TestActions_RoundTrip(t *testing.T) {
	in := []searchaction.Action{{
		Key: "k", Label: "Maps", Type: searchaction.TypeURL, Data: "geo:0,0?q=${1}",
		Options: map[string]string{"browser": "default"}, Icon: 3, IconColor: 7,
	}}
	table := searchaction.EncodeActions(in)
	if s, _ := table.Rows[0][2].AsText(); s != "url" {
		t.Fatalf("type must travel by name, got %q", s)
	}
	out, err := searchaction.DecodeActions(table)
	if err != nil || len(out) != 1 {
		t.Fatalf("unexpected decode %v (%v)", out, err)
	}
	a := out[0]
	if a.Type != searchaction.TypeURL || a.Options["browser"] != "default" || a.IconColor != 7 || a.CustomIcon != "" {
		t.Fatalf("action mismatch %+v", a)
	}
}

func TestActions_UnknownTypeSkipsRow(t *testing.T) {
	table := &rowskema.Table{
		Cols: []string{"key", "label", "type", "data"},
		Rows: [][]rowskema.Value{
			{rowskema.TextValue("a"), rowskema.TextValue("A"), rowskema.TextValue("teleport"), rowskema.TextValue("d")},
			{rowskema.TextValue("b"), rowskema.TextValue("B"), rowskema.TextValue("call"), rowskema.TextValue("+1")},
		},
	}
	out, _ := searchaction.DecodeActions(table)
	if len(out) != 1 || out[0].Key != "b" || out[0].Type != searchaction.TypeCall || out[0].Options != nil {
		t.Fatalf("want only the call action, got %+v", out)
	}
}
