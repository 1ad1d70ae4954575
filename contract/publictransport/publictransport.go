// Package publictransport is the departures plugin contract. One row is one
// departure; rows sharing station_id and provider belong to the same stop.
package publictransport

import (
	"time"

	j "github.com/goccy/go-json"

	rowskema "github.com/reoring/rowskema"
	"github.com/reoring/rowskema/codec"
)

const (
	// ParamQuery carries a JSON list of QueryLocation.
	ParamQuery        = "query"
	ParamAllowNetwork = "network"
)

// LineType is the vehicle class of a line.
type LineType string

const (
	Bus            LineType = "Bus"
	Tram           LineType = "Tram"
	Subway         LineType = "Subway"
	Monorail       LineType = "Monorail"
	CommuterTrain  LineType = "CommuterTrain"
	Train          LineType = "Train"
	RegionalTrain  LineType = "RegionalTrain"
	HighSpeedTrain LineType = "HighSpeedTrain"
	Boat           LineType = "Boat"
	CableCar       LineType = "CableCar"
	AerialTramway  LineType = "AerialTramway"
	Airplane       LineType = "Airplane"
)

func (t LineType) String() string { return string(t) }

// LineTypes lists every known line type.
var LineTypes = []LineType{
	Bus, Tram, Subway, Monorail, CommuterTrain, Train, RegionalTrain,
	HighSpeedTrain, Boat, CableCar, AerialTramway, Airplane,
}

var (
	StationID   = rowskema.NewColumn("station_id", rowskema.Text())
	StationName = rowskema.NewColumn("station_name", rowskema.Text())
	Provider    = rowskema.NewColumn("provider", rowskema.Text())
	Latitude    = rowskema.NewColumn("latitude", rowskema.Float64())
	Longitude   = rowskema.NewColumn("longitude", rowskema.Float64())
	Line        = rowskema.NewColumn("line", rowskema.Text())
	Type        = rowskema.NewColumn("line_type", codec.Enum(LineTypes...))
	LastStop    = rowskema.NewColumn("last_stop", rowskema.Text())
	LocalTime   = rowskema.NewColumn("local_time", codec.LocalTime())

	DepartureColumns = rowskema.NewSchema("publictransport.departures",
		StationID, StationName, Provider, Latitude, Longitude, Line, Type, LastStop, LocalTime,
	)
)

// QueryLocation is one candidate stop the host wants departures for.
type QueryLocation struct {
	Label     string  `json:"label"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// EncodeQuery renders the query parameter value for locs.
func EncodeQuery(locs []QueryLocation) (string, error) {
	b, err := j.Marshal(locs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeQuery parses the query parameter value.
func DecodeQuery(s string) ([]QueryLocation, error) {
	var out []QueryLocation
	if err := j.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Departure is one scheduled departure at a stop. Time carries only the
// wall clock part.
type Departure struct {
	StationID   string
	StationName string
	Provider    string
	Latitude    *float64
	Longitude   *float64
	Line        string
	Type        *LineType
	LastStop    string
	Time        time.Time
}

func EncodeDepartures(deps []Departure) *rowskema.Table {
	return rowskema.BuildRows(DepartureColumns, deps, func(w *rowskema.RowWriter, d Departure) {
		StationID.Set(w, d.StationID)
		if d.StationName != "" {
			StationName.Set(w, d.StationName)
		}
		Provider.Set(w, d.Provider)
		Latitude.SetPtr(w, d.Latitude)
		Longitude.SetPtr(w, d.Longitude)
		Line.Set(w, d.Line)
		Type.SetPtr(w, d.Type)
		if d.LastStop != "" {
			LastStop.Set(w, d.LastStop)
		}
		LocalTime.Set(w, d.Time)
	})
}

// DecodeDepartures returns no departures when the result cannot identify a
// stop: station_id, provider, line and local_time must be present, plus a
// station name or a full coordinate pair. Individual rows missing one of the
// required cells are skipped.
func DecodeDepartures(rs rowskema.RowSet) ([]Departure, error) {
	var out []Departure
	err := rowskema.WithColumns(rs, DepartureColumns, func(sc *rowskema.Scope) error {
		for _, c := range []rowskema.Field{StationID, Provider, Line, LocalTime} {
			if !sc.Contains(c) {
				return nil
			}
		}
		if !sc.Contains(StationName) && !(sc.Contains(Latitude) && sc.Contains(Longitude)) {
			return nil
		}
		for sc.Next() {
			id, ok := StationID.Get(sc)
			if !ok {
				continue
			}
			provider, ok := Provider.Get(sc)
			if !ok {
				continue
			}
			line, ok := Line.Get(sc)
			if !ok {
				continue
			}
			at, ok := LocalTime.Get(sc)
			if !ok {
				continue
			}
			out = append(out, Departure{
				StationID:   id,
				StationName: StationName.Or(sc, ""),
				Provider:    provider,
				Latitude:    Latitude.Ptr(sc),
				Longitude:   Longitude.Ptr(sc),
				Line:        line,
				Type:        Type.Ptr(sc),
				LastStop:    LastStop.Or(sc, ""),
				Time:        at,
			})
		}
		return nil
	})
	return out, err
}
