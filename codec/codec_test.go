package codec_test

import (
	"errors"
	"slices"
	"strconv"
	"testing"
	"time"

	rowskema "github.com/reoring/rowskema"
	"github.com/reoring/rowskema/codec"
)

type level int

const (
	low level = iota
	high
)

func (l level) String() string {
	switch l {
	case low:
		return "Low"
	case high:
		return "High"
	}
	return "level(" + strconv.Itoa(int(l)) + ")"
}

func TestEnum_RoundTripAndCaseSensitivity(t *testing.T) {
	c := codec.Enum(low, high)
	v, err := c.Encode(high)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, _ := v.AsText(); s != "High" {
		t.Fatalf("want case name High, got %q", s)
	}
	got, err := c.Decode(v)
	if err != nil || got != high {
		t.Fatalf("want high, got %v (%v)", got, err)
	}
	_, err = c.Decode(rowskema.TextValue("high"))
	iss, ok := rowskema.AsIssues(err)
	if !ok || iss[0].Code != rowskema.CodeInvalidEnum {
		t.Fatalf("lowercase name must be rejected with invalid_enum, got %v", err)
	}
	if _, err := c.Decode(rowskema.Int32Value(1)); err == nil {
		t.Fatalf("integer cell must not decode as enum")
	}
	if cs := c.(rowskema.Enumerated).Cases(); !slices.Equal(cs, []string{"Low", "High"}) {
		t.Fatalf("unexpected cases %v", cs)
	}
}

func TestEnum_DuplicateCasePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("duplicate case names must panic")
		}
	}()
	codec.Enum(low, low)
}

type address struct {
	City string `json:"city"`
	Zip  string `json:"zip,omitempty"`
}

func TestJSON_Lenient(t *testing.T) {
	c := codec.JSON[address]()
	got, err := c.Decode(rowskema.TextValue(`{"city":"Berlin","planet":"earth"}`))
	if err != nil {
		t.Fatalf("unknown keys must be ignored: %v", err)
	}
	if got.City != "Berlin" || got.Zip != "" {
		t.Fatalf("unexpected decode %+v", got)
	}
	v, err := c.Encode(address{City: "Oslo", Zip: "0150"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := c.Decode(v)
	if err != nil || back != (address{City: "Oslo", Zip: "0150"}) {
		t.Fatalf("round trip mismatch %+v (%v)", back, err)
	}
}

func TestJSON_Malformed(t *testing.T) {
	c := codec.List[string]()
	for _, in := range []string{"", "null", "[1,", `{"a":1}`} {
		_, err := c.Decode(rowskema.TextValue(in))
		iss, ok := rowskema.AsIssues(err)
		if !ok || iss[0].Code != rowskema.CodeInvalidJSON {
			t.Fatalf("%q: want invalid_json, got %v", in, err)
		}
	}
	if v, err := c.Encode(nil); err != nil || !v.IsNull() {
		t.Fatalf("nil list must encode as NULL, got %s (%v)", v, err)
	}
	if v, _ := c.Encode([]string{}); !v.Equal(rowskema.TextValue("[]")) {
		t.Fatalf("empty list must encode as [], got %s", v)
	}
}

func TestUnixMillis(t *testing.T) {
	c := codec.UnixMillis()
	at := time.Date(2024, 5, 1, 12, 30, 0, 123_000_000, time.UTC)
	v, _ := c.Encode(at)
	if n, _ := v.AsInt64(); n != at.UnixMilli() {
		t.Fatalf("want %d, got %d", at.UnixMilli(), n)
	}
	back, err := c.Decode(v)
	if err != nil || !back.Equal(at) {
		t.Fatalf("round trip mismatch %v (%v)", back, err)
	}
}

func TestTimeRFC3339(t *testing.T) {
	c := codec.TimeRFC3339()
	got, err := c.Decode(rowskema.TextValue("2024-05-01T14:30:00+02:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := c.Encode(got)
	if s, _ := v.AsText(); s != "2024-05-01T12:30:00Z" {
		t.Fatalf("encode must normalize to UTC, got %q", s)
	}
	_, err = c.Decode(rowskema.TextValue("yesterday"))
	iss, ok := rowskema.AsIssues(err)
	if !ok || iss[0].Code != rowskema.CodeInvalidFormat {
		t.Fatalf("want invalid_format, got %v", err)
	}
}

func TestLocalTime(t *testing.T) {
	c := codec.LocalTime()
	for in, want := range map[string]string{
		"08:05":              "08:05:00",
		"23:59:59":           "23:59:59",
		"07:00:00.250000000": "07:00:00.25",
		"12:30:15.000000001": "12:30:15.000000001",
	} {
		got, err := c.Decode(rowskema.TextValue(in))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", in, err)
		}
		v, _ := c.Encode(got)
		if s, _ := v.AsText(); s != want {
			t.Fatalf("%s: want %s, got %s", in, want, s)
		}
	}
	at := time.Date(0, 1, 1, 6, 15, 30, 125_000_000, time.UTC)
	v, _ := c.Encode(at)
	if back, err := c.Decode(v); err != nil || !back.Equal(at) {
		t.Fatalf("sub-second precision must survive a round trip, got %v (%v)", back, err)
	}
	if _, err := c.Decode(rowskema.TextValue("8 o'clock")); err == nil {
		t.Fatalf("malformed time must fail")
	}
}

var errNegative = errors.New("negative")

func TestConvert(t *testing.T) {
	type meters int64
	c := codec.Convert(rowskema.Int64(), "meters",
		func(n int64) (meters, error) {
			if n < 0 {
				return 0, errNegative
			}
			return meters(n), nil
		},
		func(m meters) (int64, error) { return int64(m), nil },
	)
	v, _ := c.Encode(12)
	if got, err := c.Decode(v); err != nil || got != 12 {
		t.Fatalf("round trip mismatch %d (%v)", got, err)
	}
	if _, err := c.Decode(rowskema.Int64Value(-1)); !errors.Is(err, errNegative) {
		t.Fatalf("converter error must surface, got %v", err)
	}
	if d, ok := c.(rowskema.Described); !ok || d.TypeName() != "meters" {
		t.Fatalf("converted codec must describe itself")
	}
}
