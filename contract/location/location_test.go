package location_test

import (
	"testing"

	rowskema "github.com/reoring/rowskema"
	"github.com/reoring/rowskema/contract/location"
	"github.com/reoring/rowskema/contract/publictransport"
)

func TestLocations_RoundTrip(t *testing.T) {
	icon := location.Icon("Cafe")
	rating := float32(4.5)
	bus := publictransport.Bus
	in := location.Location{
		ID: "l1", Label: "Corner Cafe", Latitude: 52.5, Longitude: 13.4,
		Icon: &icon, Category: "cafe", UserRating: &rating,
		Address: &location.Address{City: "Berlin", CountryCode: "DE"},
		OpeningSchedule: &location.OpeningSchedule{
			Hours: []location.OpeningHours{{DayOfWeek: 1, StartTime: "08:00", Duration: 36000}},
		},
		Departures: []location.Departure{{Time: "2024-05-01T08:00:00Z", Line: "100", Type: &bus}},
	}
	out, err := location.DecodeLocations(location.EncodeLocations([]location.Location{in}))
	if err != nil || len(out) != 1 {
		t.Fatalf("unexpected decode %v (%v)", out, err)
	}
	l := out[0]
	if *l.Icon != icon || *l.UserRating != rating || l.UserRatingCount != nil {
		t.Fatalf("scalar fields mismatch %+v", l)
	}
	if *l.Address != *in.Address || l.OpeningSchedule.Hours[0] != in.OpeningSchedule.Hours[0] {
		t.Fatalf("json fields mismatch %+v", l)
	}
	if len(l.Departures) != 1 || *l.Departures[0].Type != bus || l.Attribution != nil {
		t.Fatalf("departures mismatch %+v", l.Departures)
	}
}

func TestLocations_UnknownIconKeepsLocation(t *testing.T) {
	table := &rowskema.Table{
		Cols: []string{"id", "label", "latitude", "longitude", "icon"},
		Rows: [][]rowskema.Value{{
			rowskema.TextValue("l"), rowskema.TextValue("x"), rowskema.Float64Value(1), rowskema.Int32Value(2),
			rowskema.TextValue("Spaceport"),
		}},
	}
	out, _ := location.DecodeLocations(table)
	if len(out) != 1 || out[0].Icon != nil || out[0].Longitude != 2 {
		t.Fatalf("want one location without icon, got %+v", out)
	}
}

func TestQuery(t *testing.T) {
	q := location.Query{Text: "pizza", UserLatitude: 1.5, UserLongitude: -2, SearchRadius: 500, AllowNetwork: true}
	back, ok := location.ParseQuery(q.Values())
	if !ok || back != q {
		t.Fatalf("round trip mismatch %+v", back)
	}
	if _, ok := location.ParseQuery(map[string]string{"query": "pizza"}); ok {
		t.Fatalf("missing position must not parse")
	}
}

func TestLocationRecord_RoundTrip(t *testing.T) {
	count := int32(12)
	in := location.Location{
		ID: "l7", Label: "Library", Latitude: 48.1, Longitude: 11.5, UserRatingCount: &count,
		Attribution: &location.Attribution{Text: "OpenStreetMap", URL: "https://osm.org"},
	}
	rec := location.EncodeLocationRecord(in)
	if _, ok := rec["icon"]; ok {
		t.Fatalf("unset icon must be left out of the record: %v", rec)
	}
	out, err := location.DecodeLocations(rec)
	if err != nil || len(out) != 1 {
		t.Fatalf("unexpected decode %v (%v)", out, err)
	}
	l := out[0]
	if l.ID != "l7" || l.Latitude != 48.1 || *l.UserRatingCount != count || *l.Attribution != *in.Attribution || l.Icon != nil {
		t.Fatalf("record mismatch %+v", l)
	}
}
