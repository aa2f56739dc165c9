package rideshare

import "time"

// Company is a rideshare provider.
type Company string

const (
	CompanyUber  Company = "uber"
	CompanyLyft  Company = "lyft"
	CompanyDidi  Company = "didi"
	CompanyBolt  Company = "bolt"
	CompanyOther Company = "other"
)

// Valid reports whether c is a known company.
func (c Company) Valid() bool {
	switch c {
	case CompanyUber, CompanyLyft, CompanyDidi, CompanyBolt, CompanyOther:
		return true
	}
	return false
}

// TripStatus is how a tracked ride ended.
type TripStatus string

const (
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

// Ride is the ride currently being tracked.
type Ride struct {
	DriverName        string    `json:"driver_name"`
	DriverAge         string    `json:"driver_age,omitempty"`
	VehicleNumber     string    `json:"vehicle_number"`
	VehicleModel      string    `json:"vehicle_model"`
	PickupLocation    string    `json:"pickup_location"`
	Destination       string    `json:"destination"`
	EstimatedArrival  string    `json:"estimated_arrival"`
	EstimatedDuration string    `json:"estimated_duration"`
	Company           Company   `json:"company"`
	StartedAt         time.Time `json:"started_at,omitzero"`
	SharingLocation   bool      `json:"sharing_location"`
}

// Trip is a ride in the history.
type Trip struct {
	ID              string     `json:"id"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	DriverName      string     `json:"driver_name"`
	VehicleNumber   string     `json:"vehicle_number"`
	VehicleModel    string     `json:"vehicle_model"`
	PickupLocation  string     `json:"pickup_location"`
	Destination     string     `json:"destination"`
	DurationMinutes int        `json:"duration_minutes"`
	Status          TripStatus `json:"status"`
	Company         Company    `json:"company"`
	StartedAt       time.Time  `json:"started_at,omitzero"`
}

func (t Trip) EntityID() string { return t.ID }

func (t Trip) WithEntityID(id string) Trip {
	t.ID = id
	return t
}

// Tab is the top-level tab of the rideshare panel.
type Tab string

const (
	TabNewRide     Tab = "new_ride"
	TabCurrentRide Tab = "current_ride"
	TabHistory     Tab = "history"
)

// HistoryFilter narrows the trip history.
type HistoryFilter struct {
	Query   string
	Company Company
	Status  TripStatus
}
