// Package weather is the weather plugin contract: forecasts for a location
// and a location search used to configure the forecast source.
package weather

import (
	"strconv"
	"time"

	rowskema "github.com/reoring/rowskema"
	"github.com/reoring/rowskema/codec"
)

const (
	PathForecasts = "forecasts"
	PathLocations = "locations"
)

// Forecast query parameters. A forecast is requested either by coordinates
// or by a provider specific location id.
const (
	ParamForecastLat          = "lat"
	ParamForecastLon          = "lon"
	ParamForecastID           = "id"
	ParamForecastLocationName = "location_name"
	ParamForecastLang         = "lang"
)

// Location search parameters.
const (
	ParamLocationQuery = "query"
	ParamLocationLang  = "lang"
)

// Icon is the condition glyph of a forecast.
type Icon string

func (i Icon) String() string { return string(i) }

const (
	IconClear                     Icon = "Clear"
	IconCloudy                    Icon = "Cloudy"
	IconCold                      Icon = "Cold"
	IconDrizzle                   Icon = "Drizzle"
	IconHaze                      Icon = "Haze"
	IconFog                       Icon = "Fog"
	IconHail                      Icon = "Hail"
	IconHeavyThunderstorm         Icon = "HeavyThunderstorm"
	IconHeavyThunderstormWithRain Icon = "HeavyThunderstormWithRain"
	IconHot                       Icon = "Hot"
	IconMostlyCloudy              Icon = "MostlyCloudy"
	IconPartlyCloudy              Icon = "PartlyCloudy"
	IconShowers                   Icon = "Showers"
	IconSleet                     Icon = "Sleet"
	IconSnow                      Icon = "Snow"
	IconStorm                     Icon = "Storm"
	IconThunderstorm              Icon = "Thunderstorm"
	IconThunderstormWithRain      Icon = "ThunderstormWithRain"
	IconWind                      Icon = "Wind"
	IconBrokenClouds              Icon = "BrokenClouds"
	IconNone                      Icon = "None"
)

var Icons = []Icon{
	IconClear, IconCloudy, IconCold, IconDrizzle, IconHaze, IconFog, IconHail,
	IconHeavyThunderstorm, IconHeavyThunderstormWithRain, IconHot, IconMostlyCloudy,
	IconPartlyCloudy, IconShowers, IconSleet, IconSnow, IconStorm, IconThunderstorm,
	IconThunderstormWithRain, IconWind, IconBrokenClouds, IconNone,
}

// Forecast columns. Temperatures are Kelvin, pressure hPa, wind m/s,
// precipitation mm; humidity, rain probability and clouds are percentages.
var (
	Timestamp       = rowskema.NewColumn("timestamp", codec.UnixMillis())
	CreatedAt       = rowskema.NewColumn("created_at", codec.UnixMillis())
	Temperature     = rowskema.NewColumn("temperature", rowskema.Float64())
	TemperatureMin  = rowskema.NewColumn("temperature_min", rowskema.Float64())
	TemperatureMax  = rowskema.NewColumn("temperature_max", rowskema.Float64())
	Pressure        = rowskema.NewColumn("pressure", rowskema.Float64())
	Humidity        = rowskema.NewColumn("humidity", rowskema.Float64())
	WindSpeed       = rowskema.NewColumn("wind_speed", rowskema.Float64())
	WindDirection   = rowskema.NewColumn("wind_direction", rowskema.Float64())
	Precipitation   = rowskema.NewColumn("precipitation", rowskema.Float64())
	RainProbability = rowskema.NewColumn("rain_probability", rowskema.Int32())
	Clouds          = rowskema.NewColumn("clouds", rowskema.Int32())
	Location        = rowskema.NewColumn("location", rowskema.Text())
	Provider        = rowskema.NewColumn("provider", rowskema.Text())
	ProviderURL     = rowskema.NewColumn("provider_url", rowskema.Text())
	Night           = rowskema.NewColumn("night", rowskema.Bool())
	IconColumn      = rowskema.NewColumn("icon", codec.Enum(Icons...))
	Condition       = rowskema.NewColumn("condition", rowskema.Text())

	ForecastColumns = rowskema.NewSchema("weather.forecasts",
		Timestamp, CreatedAt, Temperature, TemperatureMin, TemperatureMax, Pressure,
		Humidity, WindSpeed, WindDirection, Precipitation, RainProbability, Clouds,
		Location, Provider, ProviderURL, Night, IconColumn, Condition,
	)
)

// Location search columns.
var (
	LocationID   = rowskema.NewColumn("id", rowskema.Text())
	LocationLat  = rowskema.NewColumn("lat", rowskema.Float64())
	LocationLon  = rowskema.NewColumn("lon", rowskema.Float64())
	LocationName = rowskema.NewColumn("name", rowskema.Text())

	LocationColumns = rowskema.NewSchema("weather.locations",
		LocationID, LocationLat, LocationLon, LocationName,
	)
)

// Forecast is one forecast slot.
type Forecast struct {
	Timestamp       time.Time
	CreatedAt       time.Time
	Temperature     float64
	TemperatureMin  *float64
	TemperatureMax  *float64
	Pressure        *float64
	Humidity        *float64
	WindSpeed       *float64
	WindDirection   *float64
	Precipitation   *float64
	RainProbability *int32
	Clouds          *int32
	Location        string
	Provider        string
	ProviderURL     string
	Night           bool
	Icon            Icon
	Condition       string
}

func EncodeForecasts(fs []Forecast) *rowskema.Table {
	return rowskema.BuildRows(ForecastColumns, fs, func(w *rowskema.RowWriter, f Forecast) {
		Timestamp.Set(w, f.Timestamp)
		CreatedAt.Set(w, f.CreatedAt)
		Temperature.Set(w, f.Temperature)
		TemperatureMin.SetPtr(w, f.TemperatureMin)
		TemperatureMax.SetPtr(w, f.TemperatureMax)
		Pressure.SetPtr(w, f.Pressure)
		Humidity.SetPtr(w, f.Humidity)
		WindSpeed.SetPtr(w, f.WindSpeed)
		WindDirection.SetPtr(w, f.WindDirection)
		Precipitation.SetPtr(w, f.Precipitation)
		RainProbability.SetPtr(w, f.RainProbability)
		Clouds.SetPtr(w, f.Clouds)
		Location.Set(w, f.Location)
		Provider.Set(w, f.Provider)
		if f.ProviderURL != "" {
			ProviderURL.Set(w, f.ProviderURL)
		}
		Night.Set(w, f.Night)
		icon := f.Icon
		if icon == "" {
			icon = IconNone
		}
		IconColumn.Set(w, icon)
		Condition.Set(w, f.Condition)
	})
}

// DecodeForecasts skips rows lacking timestamp, created_at, temperature,
// condition, icon, location or provider. An icon cell with an unknown name
// still yields a forecast, with IconNone.
func DecodeForecasts(rs rowskema.RowSet) ([]Forecast, error) {
	var out []Forecast
	err := rowskema.WithColumns(rs, ForecastColumns, func(sc *rowskema.Scope) error {
		for sc.Next() {
			ts, ok := Timestamp.Get(sc)
			if !ok {
				continue
			}
			temp, ok := Temperature.Get(sc)
			if !ok {
				continue
			}
			created, ok := CreatedAt.Get(sc)
			if !ok {
				continue
			}
			cond, ok := Condition.Get(sc)
			if !ok {
				continue
			}
			if p := sc.Presence(IconColumn); !p.Seen() || p.WasNull() {
				continue
			}
			loc, ok := Location.Get(sc)
			if !ok {
				continue
			}
			provider, ok := Provider.Get(sc)
			if !ok {
				continue
			}
			out = append(out, Forecast{
				Timestamp:       ts,
				CreatedAt:       created,
				Temperature:     temp,
				TemperatureMin:  TemperatureMin.Ptr(sc),
				TemperatureMax:  TemperatureMax.Ptr(sc),
				Pressure:        Pressure.Ptr(sc),
				Humidity:        Humidity.Ptr(sc),
				WindSpeed:       WindSpeed.Ptr(sc),
				WindDirection:   WindDirection.Ptr(sc),
				Precipitation:   Precipitation.Ptr(sc),
				RainProbability: RainProbability.Ptr(sc),
				Clouds:          Clouds.Ptr(sc),
				Location:        loc,
				Provider:        provider,
				ProviderURL:     ProviderURL.Or(sc, ""),
				Night:           Night.Or(sc, false),
				Icon:            IconColumn.Or(sc, IconNone),
				Condition:       cond,
			})
		}
		return nil
	})
	return out, err
}

// Place is a weather location. Exactly one of LatLon or ID identifies it.
type Place struct {
	Name   string
	LatLon *LatLon
	ID     string
}

type LatLon struct {
	Lat, Lon float64
}

func EncodeLocations(ps []Place) *rowskema.Table {
	return rowskema.BuildRows(LocationColumns, ps, func(w *rowskema.RowWriter, p Place) {
		LocationName.Set(w, p.Name)
		if p.LatLon != nil {
			LocationLat.Set(w, p.LatLon.Lat)
			LocationLon.Set(w, p.LatLon.Lon)
		}
		if p.ID != "" {
			LocationID.Set(w, p.ID)
		}
	})
}

// DecodeLocations prefers coordinates over the id. Rows without a name, or
// with neither coordinates nor id, are skipped.
func DecodeLocations(rs rowskema.RowSet) ([]Place, error) {
	var out []Place
	err := rowskema.WithColumns(rs, LocationColumns, func(sc *rowskema.Scope) error {
		for sc.Next() {
			name, ok := LocationName.Get(sc)
			if !ok {
				continue
			}
			lat, latOK := LocationLat.Get(sc)
			lon, lonOK := LocationLon.Get(sc)
			switch {
			case latOK && lonOK:
				out = append(out, Place{Name: name, LatLon: &LatLon{Lat: lat, Lon: lon}})
			default:
				if id, ok := LocationID.Get(sc); ok {
					out = append(out, Place{Name: name, ID: id})
				}
			}
		}
		return nil
	})
	return out, err
}

// ForecastQuery renders the forecast parameters for p.
func ForecastQuery(p Place, lang string) map[string]string {
	out := map[string]string{ParamForecastLocationName: p.Name}
	if p.LatLon != nil {
		out[ParamForecastLat] = strconv.FormatFloat(p.LatLon.Lat, 'f', -1, 64)
		out[ParamForecastLon] = strconv.FormatFloat(p.LatLon.Lon, 'f', -1, 64)
	} else {
		out[ParamForecastID] = p.ID
	}
	if lang != "" {
		out[ParamForecastLang] = lang
	}
	return out
}

// ParseForecastQuery is the provider side of ForecastQuery. It reports false
// when the parameters identify no location.
func ParseForecastQuery(params map[string]string) (Place, string, bool) {
	p := Place{Name: params[ParamForecastLocationName]}
	lang := params[ParamForecastLang]
	lat, errLat := strconv.ParseFloat(params[ParamForecastLat], 64)
	lon, errLon := strconv.ParseFloat(params[ParamForecastLon], 64)
	if errLat == nil && errLon == nil {
		p.LatLon = &LatLon{Lat: lat, Lon: lon}
		return p, lang, true
	}
	if id := params[ParamForecastID]; id != "" {
		p.ID = id
		return p, lang, true
	}
	return p, lang, false
}
