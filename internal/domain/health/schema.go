package health

import (
	"cmp"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ganot/nirapod/internal/viewstate"
)

// DoseLayout is the clock format of a scheduled dose.
const DoseLayout = "3:04 PM"

// ProviderSchema searches name, type and address.
var ProviderSchema = viewstate.Schema[Provider]{
	Searchable: func(p Provider) []string { return []string{p.Name, string(p.Type), p.Address} },
	Fields: map[string]func(Provider) string{
		"type": func(p Provider) string { return string(p.Type) },
	},
	Sorts: map[string]func(a, b Provider) int{
		"name":     func(a, b Provider) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
		"distance": func(a, b Provider) int { return cmp.Compare(Miles(a.Distance), Miles(b.Distance)) },
		"rating":   func(a, b Provider) int { return cmp.Compare(a.Rating, b.Rating) },
	},
}

// MedicationSchema orders the schedule by time of day.
var MedicationSchema = viewstate.Schema[Medication]{
	Searchable: func(m Medication) []string { return []string{m.Name, m.Instructions} },
	Fields: map[string]func(Medication) string{
		"status": func(m Medication) string { return string(m.Status) },
	},
	Sorts: map[string]func(a, b Medication) int{
		"time": func(a, b Medication) int { return cmp.Compare(minuteOfDay(a.Time), minuteOfDay(b.Time)) },
	},
}

// TypePalette maps provider types to their directory chip.
var TypePalette = viewstate.NewPalette(
	viewstate.Presentation{Label: "All Providers", Color: "gray"},
	map[ProviderType]viewstate.Presentation{
		TypeEmergencyCare:  {Label: "Hospitals", Icon: "building", Color: "red"},
		TypeUrgentCare:     {Label: "Urgent Care", Icon: "activity", Color: "orange"},
		TypeFamilyMedicine: {Label: "Family Medicine", Icon: "stethoscope", Color: "blue"},
		TypeMentalHealth:   {Label: "Mental Health", Icon: "heart", Color: "purple"},
	},
)

// StatusPalette maps dose statuses to their badge.
var StatusPalette = viewstate.NewPalette(
	viewstate.Presentation{Label: "Unknown", Color: "gray"},
	map[DoseStatus]viewstate.Presentation{
		DoseUpcoming: {Label: "Upcoming", Color: "blue"},
		DoseTaken:    {Label: "Taken", Color: "green"},
		DoseMissed:   {Label: "Missed", Color: "red"},
	},
)

// Miles reads the leading number of a distance such as "0.5 miles".
// Unreadable distances sort last.
func Miles(distance string) float64 {
	fields := strings.Fields(distance)
	if len(fields) == 0 {
		return math.Inf(1)
	}
	f, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return math.Inf(1)
	}
	return f
}

func minuteOfDay(v string) int {
	t, err := time.Parse(DoseLayout, strings.ToUpper(strings.TrimSpace(v)))
	if err != nil {
		return 24 * 60
	}
	return t.Hour()*60 + t.Minute()
}

func checkDoseTime(v string) error {
	if _, err := time.Parse(DoseLayout, strings.ToUpper(v)); err != nil {
		return errors.New("must look like 8:00 AM")
	}
	return nil
}

// MedicationFields is the add-medication form. Name, time and dosage are required.
func MedicationFields() []viewstate.Field[Medication] {
	return []viewstate.Field[Medication]{
		viewstate.TextField("name", "Name",
			func(m Medication) string { return m.Name },
			func(m *Medication, v string) { m.Name = strings.TrimSpace(v) }).Require(),
		viewstate.TextField("time", "Time",
			func(m Medication) string { return m.Time },
			func(m *Medication, v string) { m.Time = strings.ToUpper(strings.TrimSpace(v)) }).Require().Checked(checkDoseTime),
		viewstate.TextField("dosage", "Dosage",
			func(m Medication) string { return m.Dosage },
			func(m *Medication, v string) { m.Dosage = strings.TrimSpace(v) }).Require(),
		viewstate.TextField("instructions", "Instructions",
			func(m Medication) string { return m.Instructions },
			func(m *Medication, v string) { m.Instructions = strings.TrimSpace(v) }),
	}
}
