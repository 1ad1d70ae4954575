// Package search holds the query protocol shared by every searchable plugin
// domain: operation paths, query parameters and result extras.
package search

import (
	"strconv"
	"strings"
	"time"
)

// Paths select the operation a query targets.
const (
	PathSearch  = "search"  // free-text search
	PathRoot    = "root"    // lookup by id: root/<id>
	PathRefresh = "refresh" // re-fetch a stored item, sent together with its Record
)

// Params are the query argument names.
const (
	ParamQuery        = "query"
	ParamAllowNetwork = "network"
	ParamLang         = "lang"
	ParamUpdatedAt    = "updated"
)

// ExtraNotUpdated marks a refresh result whose item did not change since
// ParamUpdatedAt.
const ExtraNotUpdated = "not_updated"

// StorageStrategy tells the host how a search result may be persisted.
type StorageStrategy int

const (
	StoreReference StorageStrategy = iota
	StoreCopy
	Deferred
)

func (s StorageStrategy) String() string {
	switch s {
	case StoreReference:
		return "StoreReference"
	case StoreCopy:
		return "StoreCopy"
	case Deferred:
		return "Deferred"
	default:
		return "StorageStrategy(" + strconv.Itoa(int(s)) + ")"
	}
}

// Query is the decoded form of the shared search arguments.
type Query struct {
	Text         string
	AllowNetwork bool
	Lang         string
	UpdatedAt    time.Time
}

// Values renders q as query parameters. Empty fields are omitted.
func (q Query) Values() map[string]string {
	out := map[string]string{ParamAllowNetwork: strconv.FormatBool(q.AllowNetwork)}
	if q.Text != "" {
		out[ParamQuery] = q.Text
	}
	if q.Lang != "" {
		out[ParamLang] = q.Lang
	}
	if !q.UpdatedAt.IsZero() {
		out[ParamUpdatedAt] = strconv.FormatInt(q.UpdatedAt.UnixMilli(), 10)
	}
	return out
}

// ParseQuery reads the shared arguments leniently: malformed values fall back
// to their zero value, as a provider would treat a missing argument.
func ParseQuery(params map[string]string) Query {
	q := Query{Text: params[ParamQuery], Lang: params[ParamLang]}
	if b, err := strconv.ParseBool(params[ParamAllowNetwork]); err == nil {
		q.AllowNetwork = b
	}
	if ms, err := strconv.ParseInt(params[ParamUpdatedAt], 10, 64); err == nil {
		q.UpdatedAt = time.UnixMilli(ms).UTC()
	}
	return q
}

// JoinList renders a list argument (for example excluded calendar ids).
func JoinList(items []string) string { return strings.Join(items, ",") }

// SplitList is the inverse of JoinList; empty entries are dropped.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
