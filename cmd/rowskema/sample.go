package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	rowskema "github.com/reoring/rowskema"
	"github.com/reoring/rowskema/contract/calendar"
	"github.com/reoring/rowskema/contract/contact"
	"github.com/reoring/rowskema/contract/file"
	"github.com/reoring/rowskema/contract/location"
	"github.com/reoring/rowskema/contract/publictransport"
	"github.com/reoring/rowskema/contract/searchaction"
	"github.com/reoring/rowskema/contract/weather"
)

// sampleTable builds n plausible rows for s through the domain encoder, so the
// output is exactly what a provider would return.
func sampleTable(s *rowskema.Schema, n int, now time.Time) (*rowskema.Table, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative row count %d", n)
	}
	now = now.UTC().Truncate(time.Millisecond)
	switch s {
	case calendar.EventColumns:
		events := make([]calendar.Event, n)
		for i := range events {
			start := now.Add(time.Duration(i) * time.Hour)
			events[i] = calendar.Event{
				ID:           uuid.NewString(),
				Title:        fmt.Sprintf("Event %d", i+1),
				CalendarName: "Personal",
				Start:        &start,
				End:          start.Add(30 * time.Minute),
				Attendees:    []string{"alice@example.com", "bob@example.com"},
				URI:          "content://calendar/events/" + fmt.Sprint(i+1),
			}
		}
		return calendar.EncodeEvents(events), nil
	case calendar.CalendarListColumns:
		lists := make([]calendar.List, n)
		for i := range lists {
			lists[i] = calendar.List{
				ID:    uuid.NewString(),
				Name:  fmt.Sprintf("Calendar %d", i+1),
				Color: 0x3366CC,
				Types: []calendar.ListType{calendar.ListCalendar},
			}
		}
		return calendar.EncodeLists(lists), nil
	case contact.ContactColumns:
		cs := make([]contact.Contact, n)
		for i := range cs {
			id := uuid.NewString()
			cs[i] = contact.Contact{
				ID:             id,
				URI:            "content://contacts/" + id,
				DisplayName:    fmt.Sprintf("Contact %d", i+1),
				PhoneNumbers:   []contact.PhoneNumber{{Number: fmt.Sprintf("+1555000%04d", i), Type: "mobile"}},
				EmailAddresses: []contact.EmailAddress{{Address: fmt.Sprintf("contact%d@example.com", i+1)}},
			}
		}
		return contact.EncodeContacts(cs), nil
	case file.FileColumns:
		fs := make([]file.File, n)
		for i := range fs {
			id := uuid.NewString()
			fs[i] = file.File{
				ID:          id,
				Path:        fmt.Sprintf("/Documents/report-%d.pdf", i+1),
				ContentURI:  "content://files/" + id,
				MimeType:    "application/pdf",
				Size:        int64(1024 * (i + 1)),
				DisplayName: fmt.Sprintf("report-%d.pdf", i+1),
				Meta:        file.Metadata{Title: fmt.Sprintf("Report %d", i+1)},
			}
		}
		return file.EncodeFiles(fs), nil
	case location.LocationColumns:
		icon := location.Icon("Cafe")
		ls := make([]location.Location, n)
		for i := range ls {
			ls[i] = location.Location{
				ID:        uuid.NewString(),
				Label:     fmt.Sprintf("Cafe %d", i+1),
				Latitude:  52.52 + float64(i)*0.001,
				Longitude: 13.405,
				Icon:      &icon,
				Category:  "cafe",
				Address:   &location.Address{Address: "Unter den Linden 1", City: "Berlin", CountryCode: "DE"},
			}
		}
		return location.EncodeLocations(ls), nil
	case publictransport.DepartureColumns:
		bus := publictransport.Bus
		ds := make([]publictransport.Departure, n)
		station := uuid.NewString()
		for i := range ds {
			ds[i] = publictransport.Departure{
				StationID:   station,
				StationName: "Main Station",
				Provider:    "sample",
				Line:        fmt.Sprint(100 + i),
				Type:        &bus,
				LastStop:    "Airport",
				Time:        time.Date(0, 1, 1, 8, 5*i%60, 0, 0, time.UTC),
			}
		}
		return publictransport.EncodeDepartures(ds), nil
	case searchaction.ActionColumns:
		as := make([]searchaction.Action, n)
		for i := range as {
			as[i] = searchaction.Action{
				Key:   uuid.NewString(),
				Label: fmt.Sprintf("Search %d", i+1),
				Type:  searchaction.TypeWebSearch,
				Data:  "https://example.com/search?q=${1}",
			}
		}
		return searchaction.EncodeActions(as), nil
	case weather.ForecastColumns:
		fs := make([]weather.Forecast, n)
		for i := range fs {
			fs[i] = weather.Forecast{
				Timestamp:   now.Add(time.Duration(i) * time.Hour),
				CreatedAt:   now,
				Temperature: 288.15 + float64(i),
				Location:    "Berlin",
				Provider:    "sample",
				Icon:        weather.IconPartlyCloudy,
				Condition:   "Partly cloudy",
			}
		}
		return weather.EncodeForecasts(fs), nil
	case weather.LocationColumns:
		ps := make([]weather.Place, n)
		for i := range ps {
			ps[i] = weather.Place{Name: fmt.Sprintf("Place %d", i+1), ID: uuid.NewString()}
		}
		return weather.EncodeLocations(ps), nil
	}
	return nil, fmt.Errorf("no sample generator for schema %s", s.Name())
}
