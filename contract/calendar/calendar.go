// Package calendar is the calendar plugin contract: event rows, calendar list
// rows and the query arguments for both.
package calendar

import (
	"fmt"
	"strconv"
	"time"

	rowskema "github.com/reoring/rowskema"
	"github.com/reoring/rowskema/codec"
	"github.com/reoring/rowskema/contract/search"
)

const PathCalendarLists = "calendar_lists"

const (
	ParamQuery     = "query"
	ParamStartTime = "start"
	ParamEndTime   = "end"
	ParamExclude   = "exclude"
)

// Event columns.
var (
	ID           = rowskema.NewColumn("id", rowskema.Text())
	Title        = rowskema.NewColumn("title", rowskema.Text())
	Description  = rowskema.NewColumn("description", rowskema.Text())
	CalendarName = rowskema.NewColumn("calendar_name", rowskema.Text())
	Location     = rowskema.NewColumn("location", rowskema.Text())
	Color        = rowskema.NewColumn("color", rowskema.Int32Of[ARGB]())
	StartTime    = rowskema.NewColumn("start_time", codec.UnixMillis())
	EndTime      = rowskema.NewColumn("end_time", codec.UnixMillis())
	IncludeTime  = rowskema.NewColumn("include_time", rowskema.Bool())
	Attendees    = rowskema.NewColumn("attendees", codec.List[string]())
	URI          = rowskema.NewColumn("uri", rowskema.Text())
	IsCompleted  = rowskema.NewColumn("is_completed", rowskema.Bool())

	EventColumns = rowskema.NewSchema("calendar.events",
		ID, Title, Description, CalendarName, Location, Color,
		StartTime, EndTime, IncludeTime, Attendees, URI, IsCompleted,
	)
)

// ARGB is a packed 0xAARRGGBB color as stored in the color columns.
type ARGB int32

// ListType is the kind of content a calendar list holds.
type ListType int

const (
	ListCalendar ListType = iota
	ListTasks
)

func (t ListType) String() string {
	switch t {
	case ListTasks:
		return "Tasks"
	default:
		return "Calendar"
	}
}

// MarshalText lets lists of ListType travel inside JSON cells by name.
func (t ListType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText accepts the exact case names only.
func (t *ListType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Calendar":
		*t = ListCalendar
	case "Tasks":
		*t = ListTasks
	default:
		return fmt.Errorf("unknown list type %q", b)
	}
	return nil
}

// Calendar list columns.
var (
	ListID          = rowskema.NewColumn("id", rowskema.Text())
	ListName        = rowskema.NewColumn("name", rowskema.Text())
	ListColor       = rowskema.NewColumn("color", rowskema.Int32Of[ARGB]())
	ListAccountName = rowskema.NewColumn("account_name", rowskema.Text())
	ListContentType = rowskema.NewColumn("content_types", codec.List[ListType]())

	CalendarListColumns = rowskema.NewSchema("calendar.lists",
		ListID, ListName, ListColor, ListAccountName, ListContentType,
	)
)

// Event is a calendar event as exchanged with a plugin.
type Event struct {
	ID           string
	Title        string
	Description  string
	CalendarName string
	Location     string
	Color        *ARGB
	Start        *time.Time
	End          time.Time
	AllDay       bool
	Attendees    []string
	URI          string
	IsCompleted  *bool
}

// List is a calendar or task list offered by a plugin.
type List struct {
	ID          string
	Name        string
	Color       ARGB
	AccountName string
	Types       []ListType
}

// EncodeEvents is the provider side of the event query.
func EncodeEvents(events []Event) *rowskema.Table {
	return rowskema.BuildRows(EventColumns, events, writeEvent)
}

func writeEvent(w *rowskema.RowWriter, e Event) {
	ID.Set(w, e.ID)
	Title.Set(w, e.Title)
	setText(w, Description, e.Description)
	setText(w, CalendarName, e.CalendarName)
	setText(w, Location, e.Location)
	Color.SetPtr(w, e.Color)
	StartTime.SetPtr(w, e.Start)
	EndTime.Set(w, e.End)
	IncludeTime.Set(w, !e.AllDay)
	Attendees.Set(w, e.Attendees)
	URI.Set(w, e.URI)
	IsCompleted.SetPtr(w, e.IsCompleted)
}

// EncodeEventRecord encodes a single event as the payload sent along with a
// refresh query.
func EncodeEventRecord(e Event) rowskema.Record {
	return rowskema.BuildRecord(EventColumns, func(w *rowskema.RowWriter) { writeEvent(w, e) })
}

// DecodeEvents is the consumer side. Rows without id, title, uri or end time
// are skipped.
func DecodeEvents(rs rowskema.RowSet) ([]Event, error) {
	var out []Event
	err := rowskema.WithColumns(rs, EventColumns, func(sc *rowskema.Scope) error {
		for sc.Next() {
			id, ok := ID.Get(sc)
			if !ok {
				continue
			}
			title, ok := Title.Get(sc)
			if !ok {
				continue
			}
			uri, ok := URI.Get(sc)
			if !ok {
				continue
			}
			end, ok := EndTime.Get(sc)
			if !ok {
				continue
			}
			includeTime, known := IncludeTime.Get(sc)
			out = append(out, Event{
				ID:           id,
				Title:        title,
				Description:  Description.Or(sc, ""),
				CalendarName: CalendarName.Or(sc, ""),
				Location:     Location.Or(sc, ""),
				Color:        Color.Ptr(sc),
				Start:        StartTime.Ptr(sc),
				End:          end,
				AllDay:       known && !includeTime,
				Attendees:    Attendees.Or(sc, nil),
				URI:          uri,
				IsCompleted:  IsCompleted.Ptr(sc),
			})
		}
		return nil
	})
	return out, err
}

// EncodeLists is the provider side of the calendar_lists query.
func EncodeLists(lists []List) *rowskema.Table {
	return rowskema.BuildRows(CalendarListColumns, lists, func(w *rowskema.RowWriter, l List) {
		ListID.Set(w, l.ID)
		ListName.Set(w, l.Name)
		ListColor.Set(w, l.Color)
		setText(w, ListAccountName, l.AccountName)
		ListContentType.Set(w, l.Types)
	})
}

// DecodeLists skips rows without id, name or content types.
func DecodeLists(rs rowskema.RowSet) ([]List, error) {
	var out []List
	err := rowskema.WithColumns(rs, CalendarListColumns, func(sc *rowskema.Scope) error {
		for sc.Next() {
			id, ok := ListID.Get(sc)
			if !ok {
				continue
			}
			name, ok := ListName.Get(sc)
			if !ok {
				continue
			}
			types, ok := ListContentType.Get(sc)
			if !ok {
				continue
			}
			out = append(out, List{
				ID:          id,
				Name:        name,
				Color:       ListColor.Or(sc, 0),
				AccountName: ListAccountName.Or(sc, ""),
				Types:       types,
			})
		}
		return nil
	})
	return out, err
}

// Query is the event search argument set. Start and End bound the time
// range in epoch milliseconds on the wire; Excluded lists calendar ids.
type Query struct {
	Text     string
	Start    *time.Time
	End      *time.Time
	Excluded []string
}

func (q Query) Values() map[string]string {
	out := map[string]string{}
	if q.Text != "" {
		out[ParamQuery] = q.Text
	}
	if q.Start != nil {
		out[ParamStartTime] = strconv.FormatInt(q.Start.UnixMilli(), 10)
	}
	if q.End != nil {
		out[ParamEndTime] = strconv.FormatInt(q.End.UnixMilli(), 10)
	}
	if len(q.Excluded) > 0 {
		out[ParamExclude] = search.JoinList(q.Excluded)
	}
	return out
}

// ParseQuery is lenient: unparsable bounds are treated as unset.
func ParseQuery(params map[string]string) Query {
	q := Query{Text: params[ParamQuery], Excluded: search.SplitList(params[ParamExclude])}
	q.Start = parseMillis(params[ParamStartTime])
	q.End = parseMillis(params[ParamEndTime])
	return q
}

func parseMillis(s string) *time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}

func setText(w *rowskema.RowWriter, c *rowskema.Column[string], s string) {
	if s != "" {
		c.Set(w, s)
	}
}
