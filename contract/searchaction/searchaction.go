// Package searchaction is the search action plugin contract: actions the host
// offers for the current query (open a url, start a call, web search, ...).
package searchaction

import (
	"strconv"

	rowskema "github.com/reoring/rowskema"
	"github.com/reoring/rowskema/codec"
	"github.com/reoring/rowskema/contract/search"
)

const PathActions = "actions"

const (
	ParamQuery = search.ParamQuery
	ParamLang  = search.ParamLang
)

// ActionType selects how the host executes an action.
type ActionType int

const (
	TypeURL ActionType = iota
	TypeApp
	TypeIntent
	TypeCall
	TypeMessage
	TypeEmail
	TypeContact
	TypeAlarm
	TypeTimer
	TypeCalendar
	TypeWebsite
	TypeWebSearch
	TypeShare
)

var typeNames = [...]string{
	TypeURL:       "url",
	TypeApp:       "app",
	TypeIntent:    "intent",
	TypeCall:      "call",
	TypeMessage:   "message",
	TypeEmail:     "email",
	TypeContact:   "contact",
	TypeAlarm:     "alarm",
	TypeTimer:     "timer",
	TypeCalendar:  "calendar",
	TypeWebsite:   "website",
	TypeWebSearch: "websearch",
	TypeShare:     "share",
}

func (t ActionType) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "ActionType(" + strconv.Itoa(int(t)) + ")"
}

// ActionTypes lists every action type in declaration order.
var ActionTypes = []ActionType{
	TypeURL, TypeApp, TypeIntent, TypeCall, TypeMessage, TypeEmail, TypeContact,
	TypeAlarm, TypeTimer, TypeCalendar, TypeWebsite, TypeWebSearch, TypeShare,
}

var (
	Key        = rowskema.NewColumn("key", rowskema.Text())
	Label      = rowskema.NewColumn("label", rowskema.Text())
	Type       = rowskema.NewColumn("type", codec.Enum(ActionTypes...))
	Data       = rowskema.NewColumn("data", rowskema.Text())
	Options    = rowskema.NewColumn("options", codec.JSON[map[string]string]())
	Icon       = rowskema.NewColumn("icon", rowskema.Int32())
	IconColor  = rowskema.NewColumn("icon_color", rowskema.Int32())
	CustomIcon = rowskema.NewColumn("custom_icon", rowskema.Text())

	ActionColumns = rowskema.NewSchema("searchaction.actions",
		Key, Label, Type, Data, Options, Icon, IconColor, CustomIcon,
	)
)

// Action is one search action. Data is interpreted per Type: a url
// template for TypeURL and TypeWebSearch, a phone number for TypeCall, ...
type Action struct {
	Key        string
	Label      string
	Type       ActionType
	Data       string
	Options    map[string]string
	Icon       int32
	IconColor  int32
	CustomIcon string
}

func EncodeActions(as []Action) *rowskema.Table {
	return rowskema.BuildRows(ActionColumns, as, func(w *rowskema.RowWriter, a Action) {
		Key.Set(w, a.Key)
		Label.Set(w, a.Label)
		Type.Set(w, a.Type)
		Data.Set(w, a.Data)
		Options.Set(w, a.Options)
		Icon.Set(w, a.Icon)
		IconColor.Set(w, a.IconColor)
		if a.CustomIcon != "" {
			CustomIcon.Set(w, a.CustomIcon)
		}
	})
}

// DecodeActions skips rows without key, label, type or data.
func DecodeActions(rs rowskema.RowSet) ([]Action, error) {
	var out []Action
	err := rowskema.WithColumns(rs, ActionColumns, func(sc *rowskema.Scope) error {
		for sc.Next() {
			key, ok := Key.Get(sc)
			if !ok {
				continue
			}
			label, ok := Label.Get(sc)
			if !ok {
				continue
			}
			typ, ok := Type.Get(sc)
			if !ok {
				continue
			}
			data, ok := Data.Get(sc)
			if !ok {
				continue
			}
			out = append(out, Action{
				Key:        key,
				Label:      label,
				Type:       typ,
				Data:       data,
				Options:    Options.Or(sc, nil),
				Icon:       Icon.Or(sc, 0),
				IconColor:  IconColor.Or(sc, 0),
				CustomIcon: CustomIcon.Or(sc, ""),
			})
		}
		return nil
	})
	return out, err
}
