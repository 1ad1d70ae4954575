// Package location is the places plugin contract: search around the user and
// lookup by id, with address, opening hours and departures as JSON cells.
package location

import (
	"strconv"

	rowskema "github.com/reoring/rowskema"
	"github.com/reoring/rowskema/codec"
	"github.com/reoring/rowskema/contract/publictransport"
	"github.com/reoring/rowskema/contract/search"
)

const (
	PathSearch = search.PathSearch
	PathGet    = "get"
)

const (
	ParamQuery         = search.ParamQuery
	ParamUserLatitude  = "user_lat"
	ParamUserLongitude = "user_lon"
	ParamSearchRadius  = "radius"
	ParamAllowNetwork  = search.ParamAllowNetwork
	ParamID            = "id"
)

// Icon is the category glyph of a place.
type Icon string

func (i Icon) String() string { return string(i) }

// Icons lists every icon name a provider may send.
var Icons = []Icon{
	"Airport", "AmericanFootball", "AmusementPark", "ArtGallery", "AsianCuisine", "Atm",
	"Bakery", "Bank", "Bar", "Baseball", "Basketball", "Bike", "Boat", "BookStore",
	"Breakfast", "Brunch", "BuddhistTemple", "Burger", "Bus", "CableCar", "Cafe", "Car",
	"CarRental", "CarRepair", "CarWash", "Casino", "CellPhoneStore", "ChargingStation",
	"Church", "Circus", "Climbing", "Clinic", "ClothingStore", "ConcertHall",
	"ConvenienceStore", "Courthouse", "Cricket", "Dentist", "DiscountStore",
	"ElectricScooter", "FastFood", "FireDepartment", "FitnessCenter", "Florist", "Forest",
	"FurnitureStore", "GasStation", "GenericTransit", "Golf", "GovernmentBuilding",
	"Gymnastics", "Hackerspace", "HairSalon", "Handball", "Hiking", "HinduTemple", "Hockey",
	"Hospital", "Hotel", "IceCream", "JapaneseCuisine", "JewelryStore", "Kayaking", "Kebab",
	"Kiosk", "Laundromat", "Library", "LiquorStore", "MartialArts", "Monument", "Moped",
	"Mosque", "Motorcycle", "Motorsports", "MovieTheater", "Museum", "NightClub",
	"NordicWalking", "Optician", "Paragliding", "Park", "Parking", "PetStore", "Pharmacy",
	"Physician", "Pizza", "PlaceOfWorship", "Police", "PostOffice", "Pub", "PublicBathroom",
	"Ramen", "Restaurant", "Rugby", "School", "Shopping", "ShoppingMall", "Skateboarding",
	"Skiing", "Snowboarding", "Soccer", "Soup", "Sports", "Stadium", "Stationery", "Subway",
	"Supermarket", "Surfing", "Swimming", "Synagogue", "Taxi", "Tennis", "Theater", "Train",
	"Tram", "University", "Volleyball",
}

// Address is a structured postal address.
type Address struct {
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
}

// OpeningHours is one opening interval. DayOfWeek is 1 (Monday) to 7,
// StartTime is "HH:MM" and Duration is in minutes.
type OpeningHours struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
}

// OpeningSchedule is either twenty-four-seven or a list of intervals.
type OpeningSchedule struct {
	TwentyFourSeven bool           `json:"twenty_four_seven,omitempty"`
	Hours           []OpeningHours `json:"hours,omitempty"`
}

// Departure is a next departure at a transit stop.
type Departure struct {
	Time      string                    `json:"time"`
	Delay     *int64                    `json:"delay,omitempty"`
	Line      string                    `json:"line"`
	LastStop  string                    `json:"last_stop,omitempty"`
	Type      *publictransport.LineType `json:"type,omitempty"`
	LineColor *int32                    `json:"line_color,omitempty"`
}

// Attribution credits the data source.
type Attribution struct {
	Text    string `json:"text,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
	URL     string `json:"url,omitempty"`
}

var (
	ID              = rowskema.NewColumn("id", rowskema.Text())
	Label           = rowskema.NewColumn("label", rowskema.Text())
	Latitude        = rowskema.NewColumn("latitude", rowskema.Float64())
	Longitude       = rowskema.NewColumn("longitude", rowskema.Float64())
	FixMeURL        = rowskema.NewColumn("fix_me_url", rowskema.Text())
	IconColumn      = rowskema.NewColumn("icon", codec.Enum(Icons...))
	Category        = rowskema.NewColumn("category", rowskema.Text())
	AddressColumn   = rowskema.NewColumn("address", codec.JSON[Address]())
	Schedule        = rowskema.NewColumn("opening_schedule", codec.JSON[OpeningSchedule]())
	WebsiteURL      = rowskema.NewColumn("website_url", rowskema.Text())
	PhoneNumber     = rowskema.NewColumn("phone_number", rowskema.Text())
	EmailAddress    = rowskema.NewColumn("email_address", rowskema.Text())
	UserRating      = rowskema.NewColumn("user_rating", rowskema.Float32())
	UserRatingCount = rowskema.NewColumn("user_rating_count", rowskema.Int32())
	Departures      = rowskema.NewColumn("departures", codec.List[Departure]())
	AttributionCol  = rowskema.NewColumn("attribution", codec.JSON[Attribution]())

	LocationColumns = rowskema.NewSchema("location.locations",
		ID, Label, Latitude, Longitude, FixMeURL, IconColumn, Category, AddressColumn,
		Schedule, WebsiteURL, PhoneNumber, EmailAddress, UserRating, UserRatingCount,
		Departures, AttributionCol,
	)
)

// Location is a place returned by a plugin.
type Location struct {
	ID              string
	Label           string
	Latitude        float64
	Longitude       float64
	FixMeURL        string
	Icon            *Icon
	Category        string
	Address         *Address
	OpeningSchedule *OpeningSchedule
	WebsiteURL      string
	PhoneNumber     string
	EmailAddress    string
	UserRating      *float32
	UserRatingCount *int32
	Departures      []Departure
	Attribution     *Attribution
}

func EncodeLocations(locs []Location) *rowskema.Table {
	return rowskema.BuildRows(LocationColumns, locs, writeLocation)
}

// EncodeLocationRecord encodes one location as the payload of a refresh
// query.
func EncodeLocationRecord(l Location) rowskema.Record {
	return rowskema.BuildRecord(LocationColumns, func(w *rowskema.RowWriter) { writeLocation(w, l) })
}

func writeLocation(w *rowskema.RowWriter, l Location) {
	ID.Set(w, l.ID)
	Label.Set(w, l.Label)
	Latitude.Set(w, l.Latitude)
	Longitude.Set(w, l.Longitude)
	text(w, FixMeURL, l.FixMeURL)
	IconColumn.SetPtr(w, l.Icon)
	text(w, Category, l.Category)
	AddressColumn.SetPtr(w, l.Address)
	Schedule.SetPtr(w, l.OpeningSchedule)
	text(w, WebsiteURL, l.WebsiteURL)
	text(w, PhoneNumber, l.PhoneNumber)
	text(w, EmailAddress, l.EmailAddress)
	UserRating.SetPtr(w, l.UserRating)
	UserRatingCount.SetPtr(w, l.UserRatingCount)
	Departures.Set(w, l.Departures)
	AttributionCol.SetPtr(w, l.Attribution)
}

// DecodeLocations skips rows without id, label or coordinates.
func DecodeLocations(rs rowskema.RowSet) ([]Location, error) {
	var out []Location
	err := rowskema.WithColumns(rs, LocationColumns, func(sc *rowskema.Scope) error {
		for sc.Next() {
			id, ok := ID.Get(sc)
			if !ok {
				continue
			}
			label, ok := Label.Get(sc)
			if !ok {
				continue
			}
			lat, ok := Latitude.Get(sc)
			if !ok {
				continue
			}
			lon, ok := Longitude.Get(sc)
			if !ok {
				continue
			}
			out = append(out, Location{
				ID:              id,
				Label:           label,
				Latitude:        lat,
				Longitude:       lon,
				FixMeURL:        FixMeURL.Or(sc, ""),
				Icon:            IconColumn.Ptr(sc),
				Category:        Category.Or(sc, ""),
				Address:         AddressColumn.Ptr(sc),
				OpeningSchedule: Schedule.Ptr(sc),
				WebsiteURL:      WebsiteURL.Or(sc, ""),
				PhoneNumber:     PhoneNumber.Or(sc, ""),
				EmailAddress:    EmailAddress.Or(sc, ""),
				UserRating:      UserRating.Ptr(sc),
				UserRatingCount: UserRatingCount.Ptr(sc),
				Departures:      Departures.Or(sc, nil),
				Attribution:     AttributionCol.Ptr(sc),
			})
		}
		return nil
	})
	return out, err
}

// Query is the search argument set. A zero SearchRadius leaves the radius to
// the provider.
type Query struct {
	Text          string
	UserLatitude  float64
	UserLongitude float64
	SearchRadius  int64 // meters
	AllowNetwork  bool
}

func (q Query) Values() map[string]string {
	out := map[string]string{
		ParamQuery:         q.Text,
		ParamUserLatitude:  strconv.FormatFloat(q.UserLatitude, 'f', -1, 64),
		ParamUserLongitude: strconv.FormatFloat(q.UserLongitude, 'f', -1, 64),
		ParamAllowNetwork:  strconv.FormatBool(q.AllowNetwork),
	}
	if q.SearchRadius > 0 {
		out[ParamSearchRadius] = strconv.FormatInt(q.SearchRadius, 10)
	}
	return out
}

// ParseQuery reports false when the user position is missing or malformed.
func ParseQuery(params map[string]string) (Query, bool) {
	q := Query{Text: params[ParamQuery]}
	lat, err := strconv.ParseFloat(params[ParamUserLatitude], 64)
	if err != nil {
		return q, false
	}
	lon, err := strconv.ParseFloat(params[ParamUserLongitude], 64)
	if err != nil {
		return q, false
	}
	q.UserLatitude, q.UserLongitude = lat, lon
	if r, err := strconv.ParseInt(params[ParamSearchRadius], 10, 64); err == nil {
		q.SearchRadius = r
	}
	q.AllowNetwork, _ = strconv.ParseBool(params[ParamAllowNetwork])
	return q, true
}

func text(w *rowskema.RowWriter, c *rowskema.Column[string], s string) {
	if s != "" {
		c.Set(w, s)
	}
}
