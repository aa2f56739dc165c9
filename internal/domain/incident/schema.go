package incident

import (
	"cmp"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ganot/nirapod/internal/viewstate"
)

// Schema searches description, reporter and type.
var Schema = viewstate.Schema[Incident]{
	Searchable: func(i Incident) []string { return []string{i.Description, i.ReportedBy, string(i.Type)} },
	Fields: map[string]func(Incident) string{
		"type":   func(i Incident) string { return string(i.Type) },
		"status": func(i Incident) string { return string(i.Status) },
	},
	Sorts: map[string]func(a, b Incident) int{
		"reported": func(a, b Incident) int {
			if c := cmp.Compare(a.Date+" "+a.Time, b.Date+" "+b.Time); c != 0 {
				return c
			}
			return a.ReportedAt.Compare(b.ReportedAt)
		},
	},
}

// TypePalette maps incident types to their map marker.
var TypePalette = viewstate.NewPalette(
	viewstate.Presentation{Label: "Other", Icon: "help-circle", Color: "gray"},
	map[Type]viewstate.Presentation{
		TypeTheft:      {Label: "Theft", Icon: "briefcase", Color: "orange"},
		TypeAssault:    {Label: "Assault", Icon: "alert-octagon", Color: "red"},
		TypeVandalism:  {Label: "Vandalism", Icon: "hammer", Color: "purple"},
		TypeSuspicious: {Label: "Suspicious activity", Icon: "eye", Color: "yellow"},
	},
)

// StatusPalette maps statuses to their badge.
var StatusPalette = viewstate.NewPalette(
	viewstate.Presentation{Label: "Unknown", Color: "gray"},
	map[Status]viewstate.Presentation{
		StatusActive:        {Label: "Active", Color: "red"},
		StatusInvestigating: {Label: "Investigating", Color: "yellow"},
		StatusResolved:      {Label: "Resolved", Color: "green"},
	},
)

func checkType(v string) error {
	if !Type(v).Valid() {
		return errors.New("must be one of theft, assault, vandalism, suspicious, other")
	}
	return nil
}

func checkDate(v string) error {
	if _, err := time.Parse(time.DateOnly, v); err != nil {
		return errors.New("must be YYYY-MM-DD")
	}
	return nil
}

func checkTime(v string) error {
	if _, err := time.Parse("15:04", v); err != nil {
		return errors.New("must be HH:MM")
	}
	return nil
}

func checkCoordinate(limit float64) func(string) error {
	return func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || f < -limit || f > limit {
			return errors.New("out of range")
		}
		return nil
	}
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseFloat keeps unparseable input as NaN so validation can reject it.
func parseFloat(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ReportFields is the report form. Type and description are required.
func ReportFields() []viewstate.Field[Incident] {
	return []viewstate.Field[Incident]{
		viewstate.TextField("type", "Type",
			func(i Incident) string { return string(i.Type) },
			func(i *Incident, v string) { i.Type = Type(strings.ToLower(strings.TrimSpace(v))) }).Require().Checked(checkType),
		viewstate.TextField("description", "Description",
			func(i Incident) string { return i.Description },
			func(i *Incident, v string) { i.Description = v }).Require(),
		viewstate.TextField("date", "Date",
			func(i Incident) string { return i.Date },
			func(i *Incident, v string) { i.Date = strings.TrimSpace(v) }).Checked(checkDate),
		viewstate.TextField("time", "Time",
			func(i Incident) string { return i.Time },
			func(i *Incident, v string) { i.Time = strings.TrimSpace(v) }).Checked(checkTime),
		viewstate.TextField("latitude", "Latitude",
			func(i Incident) string { return formatFloat(i.Latitude) },
			func(i *Incident, v string) { i.Latitude = parseFloat(v) }).Checked(checkCoordinate(90)),
		viewstate.TextField("longitude", "Longitude",
			func(i Incident) string { return formatFloat(i.Longitude) },
			func(i *Incident, v string) { i.Longitude = parseFloat(v) }).Checked(checkCoordinate(180)),
		viewstate.TextField("reported_by", "Reported by",
			func(i Incident) string { return i.ReportedBy },
			func(i *Incident, v string) { i.ReportedBy = v }),
	}
}
