package notification

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ganot/nirapod/internal/viewstate"
)

// Schema searches title and message.
var Schema = viewstate.Schema[Notification]{
	Searchable: func(n Notification) []string { return []string{n.Title, n.Message} },
	Fields: map[string]func(Notification) string{
		"type": func(n Notification) string { return string(n.Type) },
		"read": func(n Notification) string { return strconv.FormatBool(n.Read) },
	},
	Sorts: map[string]func(a, b Notification) int{
		"timestamp": func(a, b Notification) int { return a.Timestamp.Compare(b.Timestamp) },
	},
}

// TypePalette maps types to their icon and highlight.
var TypePalette = viewstate.NewPalette(
	viewstate.Presentation{Label: "Notice", Icon: "bell", Color: "gray"},
	map[Type]viewstate.Presentation{
		TypeAlert:   {Label: "Alert", Icon: "alert-triangle", Color: "red"},
		TypeInfo:    {Label: "Info", Icon: "bell", Color: "blue"},
		TypeSuccess: {Label: "Success", Icon: "check", Color: "green"},
		TypeWarning: {Label: "Warning", Icon: "alert-triangle", Color: "yellow"},
	},
)

func checkType(v string) error {
	if !Type(v).Valid() {
		return errors.New("must be one of alert, info, success, warning")
	}
	return nil
}

// PushFields is the new-notification form. Title and message are required.
func PushFields() []viewstate.Field[Notification] {
	return []viewstate.Field[Notification]{
		viewstate.TextField("title", "Title",
			func(n Notification) string { return n.Title },
			func(n *Notification, v string) { n.Title = strings.TrimSpace(v) }).Require(),
		viewstate.TextField("message", "Message",
			func(n Notification) string { return n.Message },
			func(n *Notification, v string) { n.Message = strings.TrimSpace(v) }).Require(),
		viewstate.TextField("type", "Type",
			func(n Notification) string { return string(n.Type) },
			func(n *Notification, v string) { n.Type = Type(strings.ToLower(strings.TrimSpace(v))) }).Checked(checkType),
	}
}

// Age renders how long ago ts was, relative to now.
func Age(now, ts time.Time) string {
	d := now.Sub(ts)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}
