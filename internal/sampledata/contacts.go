// Package sampledata holds the demo records used to populate empty panels.
package sampledata

import (
	"github.com/ganot/nirapod/internal/domain/contact"
	"github.com/ganot/nirapod/internal/domain/incident"
	"github.com/ganot/nirapod/internal/domain/rideshare"
)

func Contacts() []contact.Contact {
	return []contact.Contact{
		{
			ID:            "1",
			Name:          "John Smith",
			Phone:         "(555) 123-4567",
			Email:         "john@example.com",
			Address:       "123 Main St, Anytown, USA",
			Relationship:  "Spouse",
			Type:          contact.TypePersonal,
			Notes:         "Primary emergency contact",
			IsSharing:     true,
			IsFavorite:    true,
			LastContacted: "2025-04-01",
		},
		{
			ID:            "2",
			Name:          "Dr. Sarah Williams",
			Phone:         "(555) 987-6543",
			Email:         "dr.williams@medcenter.com",
			Address:       "456 Health Ave, Anytown, USA",
			Relationship:  "Primary Physician",
			Type:          contact.TypeMedical,
			Notes:         "Office hours: Mon-Fri 9am-5pm",
			IsFavorite:    true,
			LastContacted: "2025-03-15",
		},
		{
			ID:      "3",
			Name:    "Anytown Police Department",
			Phone:   "(555) 911-0000",
			Address: "789 Justice Blvd, Anytown, USA",
			Type:    contact.TypeEmergency,
			Notes:   "Non-emergency number, for emergencies dial 911",
		},
		{
			ID:            "4",
			Name:          "Mary Johnson",
			Phone:         "(555) 234-5678",
			Email:         "mary@example.com",
			Relationship:  "Neighbor",
			Type:          contact.TypePersonal,
			Notes:         "Has spare key to house",
			IsSharing:     true,
			LastContacted: "2025-03-25",
		},
		{
			ID:      "5",
			Name:    "Anytown General Hospital",
			Phone:   "(555) 867-5309",
			Address: "101 Medical Center Drive, Anytown, USA",
			Type:    contact.TypeMedical,
			Notes:   "Emergency room open 24/7",
		},
		{
			ID:            "6",
			Name:          "Robert Wilson",
			Phone:         "(555) 345-6789",
			Email:         "robert@company.com",
			Relationship:  "Manager",
			Type:          contact.TypeWork,
			LastContacted: "2025-03-10",
		},
	}
}

func Groups() []contact.Group {
	return []contact.Group{
		{
			ID:          "1",
			Name:        "Emergency Contacts",
			Description: "People to contact in case of emergency",
			Color:       "red",
			Emergency:   true,
			ContactIDs:  []string{"1", "3", "5"},
		},
		{
			ID:          "2",
			Name:        "Family",
			Description: "Close family members",
			Color:       "blue",
			ContactIDs:  []string{"1"},
		},
		{
			ID:          "3",
			Name:        "Medical",
			Description: "Healthcare providers",
			Color:       "green",
			ContactIDs:  []string{"2", "5"},
		},
		{
			ID:          "4",
			Name:        "Neighbors",
			Description: "People living nearby",
			Color:       "purple",
			ContactIDs:  []string{"4"},
		},
	}
}

func Trips() []rideshare.Trip {
	return []rideshare.Trip{
		{
			ID:              "1",
			Date:            "2023-04-10",
			Time:            "14:30",
			DriverName:      "Michael Johnson",
			VehicleNumber:   "ABC 1234",
			VehicleModel:    "Toyota Camry",
			PickupLocation:  "123 Main St",
			Destination:     "456 Oak Ave",
			DurationMinutes: 25,
			Status:          rideshare.TripCompleted,
			Company:         rideshare.CompanyUber,
		},
		{
			ID:              "2",
			Date:            "2023-04-05",
			Time:            "09:15",
			DriverName:      "Sarah Williams",
			VehicleNumber:   "XYZ 5678",
			VehicleModel:    "Honda Civic",
			PickupLocation:  "789 Pine Rd",
			Destination:     "321 Maple St",
			DurationMinutes: 15,
			Status:          rideshare.TripCompleted,
			Company:         rideshare.CompanyLyft,
		},
		{
			ID:              "3",
			Date:            "2023-04-01",
			Time:            "19:45",
			DriverName:      "Robert Davis",
			VehicleNumber:   "DEF 9012",
			VehicleModel:    "Ford Escape",
			PickupLocation:  "555 Cedar Ln",
			Destination:     "777 Elm Blvd",
			DurationMinutes: 35,
			Status:          rideshare.TripCancelled,
			Company:         rideshare.CompanyDidi,
		},
	}
}

func Incidents() []incident.Incident {
	return []incident.Incident{
		{
			ID:          "1",
			Type:        incident.TypeTheft,
			Latitude:    40.7128,
			Longitude:   -74.0060,
			Date:        "2025-04-08",
			Time:        "21:40",
			Description: "Bike stolen from the rack outside the library",
			Status:      incident.StatusInvestigating,
			ReportedBy:  "Mary Johnson",
		},
		{
			ID:          "2",
			Type:        incident.TypeSuspicious,
			Latitude:    40.7141,
			Longitude:   -74.0032,
			Date:        "2025-04-10",
			Time:        "23:15",
			Description: "Person checking car door handles along Oak Ave",
			Status:      incident.StatusActive,
			ReportedBy:  incident.AnonymousUser,
		},
		{
			ID:             "3",
			Type:           incident.TypeVandalism,
			Latitude:       40.7106,
			Longitude:      -74.0087,
			Date:           "2025-03-30",
			Time:           "07:05",
			Description:    "Graffiti on the bus shelter at Main St",
			Status:         incident.StatusResolved,
			ReportedBy:     "John Smith",
			ResolutionNote: "Cleaned by the city maintenance crew",
		},
	}
}
