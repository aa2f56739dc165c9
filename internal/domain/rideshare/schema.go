package rideshare

import (
	"cmp"
	"errors"
	"strings"
	"time"

	"github.com/ganot/nirapod/internal/viewstate"
)

// TripSchema searches driver, vehicle and locations.
var TripSchema = viewstate.Schema[Trip]{
	Searchable: func(t Trip) []string {
		return []string{t.DriverName, t.VehicleNumber, t.VehicleModel, t.PickupLocation, t.Destination}
	},
	Fields: map[string]func(Trip) string{
		"company": func(t Trip) string { return string(t.Company) },
		"status":  func(t Trip) string { return string(t.Status) },
	},
	Sorts: map[string]func(a, b Trip) int{
		"started":  func(a, b Trip) int { return a.started().Compare(b.started()) },
		"duration": func(a, b Trip) int { return cmp.Compare(a.DurationMinutes, b.DurationMinutes) },
	},
}

// CompanyPalette maps companies to their badge.
var CompanyPalette = viewstate.NewPalette(
	viewstate.Presentation{Label: "Other", Icon: "🚘", Color: "gray"},
	map[Company]viewstate.Presentation{
		CompanyUber: {Label: "Uber", Icon: "🚗", Color: "black"},
		CompanyLyft: {Label: "Lyft", Icon: "🚙", Color: "pink"},
		CompanyDidi: {Label: "DiDi", Icon: "🚕", Color: "orange"},
		CompanyBolt: {Label: "Bolt", Icon: "🚖", Color: "green"},
	},
)

// started is the full start time. Trips stored without one fall back to
// their minute-precision date and time.
func (t Trip) started() time.Time {
	if !t.StartedAt.IsZero() {
		return t.StartedAt
	}
	at, err := time.ParseInLocation(time.DateOnly+" 15:04", t.Date+" "+t.Time, time.Local)
	if err != nil {
		return time.Time{}
	}
	return at
}

func checkCompany(v string) error {
	if !Company(v).Valid() {
		return errors.New("must be one of uber, lyft, didi, bolt, other")
	}
	return nil
}

// RideFields is the new-ride form. Everything but the driver's age is required.
func RideFields() []viewstate.Field[Ride] {
	return []viewstate.Field[Ride]{
		viewstate.TextField("driver_name", "Driver name",
			func(r Ride) string { return r.DriverName },
			func(r *Ride, v string) { r.DriverName = v }).Require(),
		viewstate.TextField("driver_age", "Driver age",
			func(r Ride) string { return r.DriverAge },
			func(r *Ride, v string) { r.DriverAge = v }),
		viewstate.TextField("vehicle_number", "Vehicle number",
			func(r Ride) string { return r.VehicleNumber },
			func(r *Ride, v string) { r.VehicleNumber = v }).Require(),
		viewstate.TextField("vehicle_model", "Vehicle model",
			func(r Ride) string { return r.VehicleModel },
			func(r *Ride, v string) { r.VehicleModel = v }).Require(),
		viewstate.TextField("pickup_location", "Pickup location",
			func(r Ride) string { return r.PickupLocation },
			func(r *Ride, v string) { r.PickupLocation = v }).Require(),
		viewstate.TextField("destination", "Destination",
			func(r Ride) string { return r.Destination },
			func(r *Ride, v string) { r.Destination = v }).Require(),
		viewstate.TextField("estimated_arrival", "Estimated arrival",
			func(r Ride) string { return r.EstimatedArrival },
			func(r *Ride, v string) { r.EstimatedArrival = v }).Require(),
		viewstate.TextField("estimated_duration", "Estimated duration",
			func(r Ride) string { return r.EstimatedDuration },
			func(r *Ride, v string) { r.EstimatedDuration = v }).Require(),
		viewstate.TextField("company", "Company",
			func(r Ride) string { return string(r.Company) },
			func(r *Ride, v string) { r.Company = Company(strings.ToLower(strings.TrimSpace(v))) }).Require().Checked(checkCompany),
	}
}

func newRide() Ride { return Ride{Company: CompanyUber} }
