// Package catalog indexes every domain contract: its schemas, operation paths,
// query parameters and the decoder a host uses for each schema.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	rowskema "github.com/reoring/rowskema"
	"github.com/reoring/rowskema/contract/calendar"
	"github.com/reoring/rowskema/contract/contact"
	"github.com/reoring/rowskema/contract/file"
	"github.com/reoring/rowskema/contract/location"
	"github.com/reoring/rowskema/contract/publictransport"
	"github.com/reoring/rowskema/contract/search"
	"github.com/reoring/rowskema/contract/searchaction"
	"github.com/reoring/rowskema/contract/weather"
	js "github.com/reoring/rowskema/jsonschema"
)

// Decoder turns a fetched row set into the domain's typed values.
type Decoder func(rowskema.RowSet) (any, error)

// Domain is one plugin domain.
type Domain struct {
	Name        string
	Description string
	Schemas     []*rowskema.Schema
	Paths       map[string]string
	Params      map[string]string
	// Decoders is keyed by schema name.
	Decoders map[string]Decoder
}

func decoder[T any](fn func(rowskema.RowSet) ([]T, error)) Decoder {
	return func(rs rowskema.RowSet) (any, error) { return fn(rs) }
}

var searchPaths = map[string]string{
	"search":  search.PathSearch,
	"root":    search.PathRoot,
	"refresh": search.PathRefresh,
}

var searchParams = map[string]string{
	"query":   search.ParamQuery,
	"network": search.ParamAllowNetwork,
	"lang":    search.ParamLang,
	"updated": search.ParamUpdatedAt,
}

func with(base map[string]string, more map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(more))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range more {
		out[k] = v
	}
	return out
}

var domains = []Domain{
	{
		Name:        "calendar",
		Description: "calendar events and the calendar lists they belong to",
		Schemas:     []*rowskema.Schema{calendar.EventColumns, calendar.CalendarListColumns},
		Paths:       with(searchPaths, map[string]string{"calendar_lists": calendar.PathCalendarLists}),
		Params: with(searchParams, map[string]string{
			"start":   calendar.ParamStartTime,
			"end":     calendar.ParamEndTime,
			"exclude": calendar.ParamExclude,
		}),
		Decoders: map[string]Decoder{
			calendar.EventColumns.Name():        decoder(calendar.DecodeEvents),
			calendar.CalendarListColumns.Name(): decoder(calendar.DecodeLists),
		},
	},
	{
		Name:        "contact",
		Description: "contacts with phone, email, postal and app specific entries",
		Schemas:     []*rowskema.Schema{contact.ContactColumns},
		Paths:       searchPaths,
		Params:      searchParams,
		Decoders: map[string]Decoder{
			contact.ContactColumns.Name(): decoder(contact.DecodeContacts),
		},
	},
	{
		Name:        "file",
		Description: "files with optional media and app metadata",
		Schemas:     []*rowskema.Schema{file.FileColumns},
		Paths:       searchPaths,
		Params:      searchParams,
		Decoders: map[string]Decoder{
			file.FileColumns.Name(): decoder(file.DecodeFiles),
		},
	},
	{
		Name:        "location",
		Description: "places around the user",
		Schemas:     []*rowskema.Schema{location.LocationColumns},
		Paths:       with(searchPaths, map[string]string{"get": location.PathGet}),
		Params: with(searchParams, map[string]string{
			"user_lat": location.ParamUserLatitude,
			"user_lon": location.ParamUserLongitude,
			"radius":   location.ParamSearchRadius,
			"id":       location.ParamID,
		}),
		Decoders: map[string]Decoder{
			location.LocationColumns.Name(): decoder(location.DecodeLocations),
		},
	},
	{
		Name:        "publictransport",
		Description: "departures at transit stops",
		Schemas:     []*rowskema.Schema{publictransport.DepartureColumns},
		Paths:       map[string]string{"search": search.PathSearch},
		Params: map[string]string{
			"query":   publictransport.ParamQuery,
			"network": publictransport.ParamAllowNetwork,
		},
		Decoders: map[string]Decoder{
			publictransport.DepartureColumns.Name(): decoder(publictransport.DecodeDepartures),
		},
	},
	{
		Name:        "searchaction",
		Description: "actions offered for the current query",
		Schemas:     []*rowskema.Schema{searchaction.ActionColumns},
		Paths:       map[string]string{"actions": searchaction.PathActions},
		Params: map[string]string{
			"query": searchaction.ParamQuery,
			"lang":  searchaction.ParamLang,
		},
		Decoders: map[string]Decoder{
			searchaction.ActionColumns.Name(): decoder(searchaction.DecodeActions),
		},
	},
	{
		Name:        "weather",
		Description: "forecasts and forecast locations",
		Schemas:     []*rowskema.Schema{weather.ForecastColumns, weather.LocationColumns},
		Paths: map[string]string{
			"forecasts": weather.PathForecasts,
			"locations": weather.PathLocations,
		},
		Params: map[string]string{
			"forecast.lat":           weather.ParamForecastLat,
			"forecast.lon":           weather.ParamForecastLon,
			"forecast.id":            weather.ParamForecastID,
			"forecast.location_name": weather.ParamForecastLocationName,
			"forecast.lang":          weather.ParamForecastLang,
			"location.query":         weather.ParamLocationQuery,
			"location.lang":          weather.ParamLocationLang,
		},
		Decoders: map[string]Decoder{
			weather.ForecastColumns.Name(): decoder(weather.DecodeForecasts),
			weather.LocationColumns.Name(): decoder(weather.DecodeLocations),
		},
	},
}

// Domains returns every registered domain in name order.
func Domains() []Domain {
	out := make([]Domain, len(domains))
	copy(out, domains)
	return out
}

// Names returns the domain names in order.
func Names() []string {
	out := make([]string, len(domains))
	for i, d := range domains {
		out[i] = d.Name
	}
	return out
}

// Lookup finds a domain by name.
func Lookup(name string) (Domain, bool) {
	for _, d := range domains {
		if d.Name == name {
			return d, true
		}
	}
	return Domain{}, false
}

// Schema resolves a schema of a domain. name may be the full schema name
// ("calendar.events") or the part after the domain prefix ("events"). An
// empty name selects the domain's first schema.
func Schema(domain, name string) (*rowskema.Schema, error) {
	d, ok := Lookup(domain)
	if !ok {
		return nil, fmt.Errorf("unknown domain %q (known: %s)", domain, strings.Join(Names(), ", "))
	}
	if name == "" {
		return d.Schemas[0], nil
	}
	for _, s := range d.Schemas {
		if s.Name() == name || s.Name() == d.Name+"."+name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("domain %s has no schema %q", domain, name)
}

// Document is the serializable description of one or more domains.
type Document struct {
	Domains []DomainDoc `json:"domains" yaml:"domains"`
}

type DomainDoc struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Paths       map[string]string `json:"paths,omitempty" yaml:"paths,omitempty"`
	Params      map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Schemas     []SchemaDoc       `json:"schemas" yaml:"schemas"`
}

type SchemaDoc struct {
	Name    string                `json:"name" yaml:"name"`
	Columns []rowskema.ColumnInfo `json:"columns" yaml:"columns"`
}

// Describe builds the document for the named domains, or all when names is
// empty.
func Describe(names ...string) (Document, error) {
	picked := domains
	if len(names) > 0 {
		picked = make([]Domain, 0, len(names))
		for _, n := range names {
			d, ok := Lookup(n)
			if !ok {
				return Document{}, fmt.Errorf("unknown domain %q", n)
			}
			picked = append(picked, d)
		}
	}
	doc := Document{Domains: make([]DomainDoc, 0, len(picked))}
	for _, d := range picked {
		dd := DomainDoc{Name: d.Name, Description: d.Description, Paths: d.Paths, Params: d.Params}
		for _, s := range d.Schemas {
			dd.Schemas = append(dd.Schemas, SchemaDoc{Name: s.Name(), Columns: s.Describe()})
		}
		doc.Domains = append(doc.Domains, dd)
	}
	return doc, nil
}

// YAML renders the document with yaml.v3.
func (d Document) YAML() ([]byte, error) { return yaml.Marshal(d) }

// JSON renders the document as indented JSON.
func (d Document) JSON() ([]byte, error) { return j.MarshalIndent(d, "", "  ") }

// JSONSchemas projects every schema of the named domains, keyed by schema name.
func JSONSchemas(names ...string) (map[string]*js.Schema, error) {
	doc, err := Describe(names...)
	if err != nil {
		return nil, err
	}
	out := map[string]*js.Schema{}
	for _, dd := range doc.Domains {
		d, _ := Lookup(dd.Name)
		for _, s := range d.Schemas {
			sch, err := s.JSONSchema()
			if err != nil {
				return nil, fmt.Errorf("json schema %s: %w", s.Name(), err)
			}
			out[s.Name()] = sch
		}
	}
	return out, nil
}

// SchemaNames lists every schema name across all domains, sorted.
func SchemaNames() []string {
	var out []string
	for _, d := range domains {
		for _, s := range d.Schemas {
			out = append(out, s.Name())
		}
	}
	sort.Strings(out)
	return out
}
