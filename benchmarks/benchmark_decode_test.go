package rowskema_test

import (
	"fmt"
	"testing"
	"time"

	rowskema "github.com/reoring/rowskema"
	"github.com/reoring/rowskema/contract/calendar"
	"github.com/reoring/rowskema/contract/weather"
	"github.com/reoring/rowskema/wirejson"
)

// --- Fixtures ---

func eventTable(n int) *rowskema.Table {
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	events := make([]calendar.Event, n)
	for i := range events {
		start := at.Add(time.Duration(i) * time.Hour)
		events[i] = calendar.Event{
			ID:        fmt.Sprint(i),
			Title:     "Event",
			Start:     &start,
			End:       start.Add(time.Hour),
			Attendees: []string{"a@example.com", "b@example.com"},
			URI:       "content://events/" + fmt.Sprint(i),
		}
	}
	return calendar.EncodeEvents(events)
}

// --- Scoped decode ---

func Benchmark_DecodeEvents_1k(b *testing.B) {
	t := eventTable(1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := calendar.DecodeEvents(t)
		if err != nil || len(out) != 1000 {
			b.Fatalf("decode: %d events, %v", len(out), err)
		}
	}
}

// Name lookup per cell, the access pattern the scope avoids.
func Benchmark_LookupByName_1k(b *testing.B) {
	t := eventTable(1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for r := 0; r < t.Len(); r++ {
			for _, name := range []string{"id", "title", "uri", "end_time", "start_time"} {
				for c, col := range t.Columns() {
					if col == name {
						_ = t.Cell(r, c)
						break
					}
				}
			}
		}
	}
}

func Benchmark_DecodeForecastRecord(b *testing.B) {
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rec := rowskema.BuildRecord(weather.ForecastColumns, func(w *rowskema.RowWriter) {
		weather.Timestamp.Set(w, at)
		weather.CreatedAt.Set(w, at)
		weather.Temperature.Set(w, 290)
		weather.Location.Set(w, "Berlin")
		weather.Provider.Set(w, "bench")
		weather.IconColumn.Set(w, weather.IconClear)
		weather.Condition.Set(w, "Clear")
	})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := weather.DecodeForecasts(rec)
		if err != nil || len(out) != 1 {
			b.Fatalf("decode: %v", err)
		}
	}
}

// --- Fixture codec ---

func Benchmark_WireJSON_Unmarshal_1k(b *testing.B) {
	data, err := wirejson.Marshal(eventTable(1000))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := wirejson.Unmarshal(data, calendar.EventColumns); err != nil {
			b.Fatal(err)
		}
	}
}
