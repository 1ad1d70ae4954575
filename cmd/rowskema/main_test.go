package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/reoring/rowskema/catalog"
	"github.com/reoring/rowskema/wirejson"
)

func TestSampleThenCheck_EveryDomain(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	for _, d := range catalog.Domains() {
		for _, s := range d.Schemas {
			table, err := sampleTable(s, 3, now)
			if err != nil {
				t.Fatalf("%s: sample: %v", s.Name(), err)
			}
			data, err := wirejson.Marshal(table)
			if err != nil {
				t.Fatalf("%s: marshal: %v", s.Name(), err)
			}
			path := filepath.Join(t.TempDir(), "fixture.json")
			if err := os.WriteFile(path, data, 0o600); err != nil {
				t.Fatal(err)
			}
			rep, err := checkFile(path, s, d.Decoders[s.Name()])
			if err != nil {
				t.Fatalf("%s: check: %v", s.Name(), err)
			}
			if len(rep.issues) != 0 || len(rep.missing) != 0 {
				t.Fatalf("%s: sample must be clean, got issues %v missing %v", s.Name(), rep.issues, rep.missing)
			}
			if rep.rows != 3 || rep.count != 3 {
				t.Fatalf("%s: want 3 rows decoded, got %d/%d", s.Name(), rep.rows, rep.count)
			}
		}
	}
}

func TestCheckCmd_ReportsIssues(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	row := `["e%d","Title",null,null,null,null,1000,2000,1,null,"content://e",null]`
	cols := `["id","title","description","calendar_name","location","color","start_time","end_time","include_time","attendees","uri","is_completed"]`
	if err := os.WriteFile(good, []byte(fmt.Sprintf(`{"columns":%s,"rows":[`+row+`]}`, cols, 1)), 0o600); err != nil {
		t.Fatal(err)
	}
	broken := strings.Replace(fmt.Sprintf(row, 2), "1000", `"noon"`, 1)
	if err := os.WriteFile(bad, []byte(fmt.Sprintf(`{"columns":%s,"rows":[%s]}`, cols, broken)), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := checkCmd(&out, []string{"-domain", "calendar", good, bad})
	if !errors.Is(err, errIssues) {
		t.Fatalf("want errIssues, got %v", err)
	}
	text := out.String()
	if !strings.Contains(text, good+": 1 rows, 1 decoded") {
		t.Fatalf("good fixture line missing:\n%s", text)
	}
	if !strings.Contains(text, "kind_mismatch") || !strings.Contains(text, "column start_time") {
		t.Fatalf("issue line missing:\n%s", text)
	}
	if strings.Contains(text, "missing columns:") {
		t.Fatalf("both fixtures carry every column:\n%s", text)
	}
}

func TestDescribeCmd(t *testing.T) {
	var out bytes.Buffer
	if err := describeCmd(&out, []string{"-domain", "weather", "-format", "json"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), `"weather.forecasts"`) {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	out.Reset()
	if err := describeCmd(&out, []string{"-format", "jsonschema", "-domain", "file"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), `"file.files"`) {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	if err := describeCmd(&out, []string{"-format", "xml"}); err == nil {
		t.Fatalf("unknown format must fail")
	}
}
