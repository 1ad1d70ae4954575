package catalog_test

import (
	"slices"
	"strings"
	"testing"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/rowskema/catalog"
	"github.com/reoring/rowskema/contract/calendar"
	"github.com/reoring/rowskema/contract/weather"
)

func TestDomains_Consistent(t *testing.T) {
	names := catalog.Names()
	if !slices.IsSorted(names) || len(names) != 7 {
		t.Fatalf("want 7 sorted domains, got %v", names)
	}
	seen := map[string]bool{}
	for _, d := range catalog.Domains() {
		if len(d.Schemas) == 0 {
			t.Fatalf("%s: no schemas", d.Name)
		}
		for _, s := range d.Schemas {
			if seen[s.Name()] {
				t.Fatalf("schema name %s registered twice", s.Name())
			}
			seen[s.Name()] = true
			if !strings.HasPrefix(s.Name(), d.Name+".") {
				t.Fatalf("schema %s must carry the %s prefix", s.Name(), d.Name)
			}
			if d.Decoders[s.Name()] == nil {
				t.Fatalf("schema %s has no decoder", s.Name())
			}
			cols := s.Columns()
			if len(slices.Compact(slices.Sorted(slices.Values(cols)))) != len(cols) {
				t.Fatalf("schema %s repeats a column", s.Name())
			}
		}
	}
	if len(catalog.SchemaNames()) != len(seen) {
		t.Fatalf("SchemaNames must list every schema once")
	}
}

func TestSchema_Resolution(t *testing.T) {
	for _, name := range []string{"", "events", "calendar.events"} {
		s, err := catalog.Schema("calendar", name)
		if err != nil || s != calendar.EventColumns {
			t.Fatalf("%q: want events schema, got %v (%v)", name, s, err)
		}
	}
	if s, _ := catalog.Schema("weather", "locations"); s != weather.LocationColumns {
		t.Fatalf("short name must resolve within the domain")
	}
	if _, err := catalog.Schema("calendar", "forecasts"); err == nil {
		t.Fatalf("schema of another domain must not resolve")
	}
	if _, err := catalog.Schema("music", ""); err == nil || !strings.Contains(err.Error(), "calendar") {
		t.Fatalf("unknown domain error must list the known ones, got %v", err)
	}
}

func TestDecoder_ReturnsTypedSlice(t *testing.T) {
	d, _ := catalog.Lookup("calendar")
	out, err := d.Decoders[calendar.EventColumns.Name()](calendar.EncodeEvents(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := out.([]calendar.Event); !ok {
		t.Fatalf("want []calendar.Event, got %T", out)
	}
}

func TestDescribe(t *testing.T) {
	doc, err := catalog.Describe("weather")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Domains) != 1 || len(doc.Domains[0].Schemas) != 2 {
		t.Fatalf("unexpected document %+v", doc)
	}

	data, err := doc.YAML()
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var fromYAML catalog.Document
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatalf("yaml reparse: %v", err)
	}
	if fromYAML.Domains[0].Schemas[0].Name != "weather.forecasts" {
		t.Fatalf("yaml lost the schema name:\n%s", data)
	}

	data, err = doc.JSON()
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var fromJSON catalog.Document
	if err := j.Unmarshal(data, &fromJSON); err != nil {
		t.Fatalf("json reparse: %v", err)
	}
	icon := fromJSON.Domains[0].Schemas[0].Columns[16]
	if icon.Name != "icon" || !slices.Contains(icon.Cases, "None") {
		t.Fatalf("enum cases must be described, got %+v", icon)
	}

	if _, err := catalog.Describe("nope"); err == nil {
		t.Fatalf("unknown domain must fail")
	}
}

func TestJSONSchemas(t *testing.T) {
	all, err := catalog.JSONSchemas()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != len(catalog.SchemaNames()) {
		t.Fatalf("want one json schema per row schema, got %d", len(all))
	}
	ev := all["calendar.events"]
	if ev == nil || ev.Properties["start_time"].Type != "integer" {
		t.Fatalf("unexpected calendar.events projection %+v", ev)
	}
}
