package health_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/ganot/nirapod/internal/domain/activity"
	"github.com/ganot/nirapod/internal/domain/health"
	"github.com/ganot/nirapod/internal/repository/mocks"
	"github.com/ganot/nirapod/internal/viewstate"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recorded struct{ types []activity.ActivityType }

func (r *recorded) Record(_ context.Context, _ string, _ string, typ activity.ActivityType, _ string) {
	r.types = append(r.types, typ)
}

func newService(t *testing.T, opts health.Options, meds viewstate.Gateway[health.Medication]) *health.Service {
	t.Helper()
	n := 0
	opts.IDFunc = func() string {
		n++
		return fmt.Sprintf("med-%d", n)
	}
	svc := health.NewService(nil, meds, opts)
	require.NoError(t, svc.Seed(context.Background(),
		[]health.Provider{
			{ID: "1", Name: "Dr. Sarah Williams", Type: health.TypeFamilyMedicine, Distance: "0.5 miles", Rating: 5, Address: "123 Health St, Medical Center", Phone: "(555) 123-4567"},
			{ID: "2", Name: "City Hospital", Type: health.TypeEmergencyCare, Distance: "1.2 miles", Rating: 4, Address: "456 Hospital Ave, Medical District", Phone: "(555) 987-6543"},
			{ID: "3", Name: "Dr. Michael Chen", Type: health.TypeUrgentCare, Distance: "0.8 miles", Rating: 4, Address: "789 Urgent Ln, Health Plaza", Phone: "(555) 234-5678"},
		},
		[]health.Medication{
			{ID: "1", Name: "Vitamin D", Time: "8:00 AM", Dosage: "1000 IU", Instructions: "Take with food", Status: health.DoseTaken},
			{ID: "2", Name: "Allergy Medication", Time: "12:00 PM", Dosage: "10mg", Instructions: "Take with water", Status: health.DoseUpcoming},
			{ID: "3", Name: "Pain Reliever", Time: "6:00 PM", Dosage: "500mg", Instructions: "Take as needed for pain", Status: health.DoseUpcoming},
		},
	))
	return svc
}

func providerIDs(list []health.Provider) []string {
	out := []string{}
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func medIDs(list []health.Medication) []string {
	out := []string{}
	for _, m := range list {
		out = append(out, m.ID)
	}
	return out
}

func TestHealthService_ProviderDirectory(t *testing.T) {
	svc := newService(t, health.Options{}, nil)

	require.Equal(t, []string{"1", "2", "3"}, providerIDs(svc.ListProviders(health.ProviderFilter{})))
	require.Equal(t, []string{"2"}, providerIDs(svc.ListProviders(health.ProviderFilter{Query: "hospital"})))
	require.Equal(t, []string{"3"}, providerIDs(svc.ListProviders(health.ProviderFilter{Type: health.TypeUrgentCare})))
	require.Empty(t, svc.ListProviders(health.ProviderFilter{Type: health.TypeMentalHealth}))
	require.Equal(t, []string{"1", "3", "2"}, providerIDs(svc.ListProviders(health.ProviderFilter{SortBy: "distance"})))
	require.Equal(t, []string{"1", "2", "3"}, providerIDs(svc.ListProviders(health.ProviderFilter{SortBy: "rating", Descending: true})))

	require.Equal(t, map[health.ProviderType]int{
		health.TypeFamilyMedicine: 1,
		health.TypeEmergencyCare:  1,
		health.TypeUrgentCare:     1,
	}, svc.ProviderCounts())

	_, err := svc.GetProvider("9")
	require.ErrorIs(t, err, health.ErrProviderNotFound)
}

func TestHealthService_ScheduleInTimeOrder(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, health.Options{}, nil)

	m, err := svc.AddMedication(ctx, health.MedicationRequest{Name: "Iron", Time: "9:30 am", Dosage: "65mg"})
	require.NoError(t, err)
	require.Equal(t, "med-1", m.ID)
	require.Equal(t, "9:30 AM", m.Time)
	require.Equal(t, health.DoseUpcoming, m.Status)

	sched := svc.Schedule()
	require.Equal(t, []string{"1", "med-1", "2", "3"}, medIDs(sched.Medications))
	require.Equal(t, 3, sched.Due)
	require.Equal(t, 1, sched.Taken)
}

func TestHealthService_AddMedicationValidation(t *testing.T) {
	svc := newService(t, health.Options{}, nil)

	_, err := svc.AddMedication(context.Background(), health.MedicationRequest{Name: "Iron", Time: "25:00"})
	var verr *viewstate.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"dosage"}, verr.Missing)
	require.Contains(t, verr.Invalid, "time")
	require.Len(t, svc.Schedule().Medications, 3)
}

func TestHealthService_DoseTransitions(t *testing.T) {
	ctx := context.Background()
	rec := &recorded{}
	svc := newService(t, health.Options{Activity: rec}, nil)

	m, err := svc.MarkTaken(ctx, "2")
	require.NoError(t, err)
	require.Equal(t, health.DoseTaken, m.Status)

	_, err = svc.Skip(ctx, "2")
	require.ErrorIs(t, err, health.ErrInvalidTransition)
	_, err = svc.MarkTaken(ctx, "1")
	require.ErrorIs(t, err, health.ErrInvalidTransition)

	m, err = svc.Skip(ctx, "3")
	require.NoError(t, err)
	require.Equal(t, health.DoseMissed, m.Status)

	_, err = svc.MarkTaken(ctx, "ghost")
	require.ErrorIs(t, err, health.ErrMedicationNotFound)

	require.Equal(t, []activity.ActivityType{activity.TypeMedicationTaken, activity.TypeMedicationMissed}, rec.types)
	sched := svc.Schedule()
	require.Equal(t, health.Schedule{Medications: sched.Medications, Due: 0, Taken: 2, Missed: 1}, sched)

	sched, err = svc.ResetSchedule(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, sched.Due)
}

func TestHealthService_DoseRollsBackWhenGatewayFails(t *testing.T) {
	gw := &mocks.Gateway[health.Medication]{}
	gw.On("Create", mock.Anything, mock.Anything).Return(nil, nil)
	gw.On("Patch", mock.Anything, "2", mock.Anything).Return(nil, errors.New("offline"))
	svc := newService(t, health.Options{}, gw)

	_, err := svc.MarkTaken(context.Background(), "2")
	require.Error(t, err)
	m, err := svc.GetMedication("2")
	require.NoError(t, err)
	require.Equal(t, health.DoseUpcoming, m.Status)
}

func TestHealthService_DeleteMedication(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, health.Options{}, nil)
	require.NoError(t, svc.DeleteMedication(ctx, "1"))
	require.ErrorIs(t, svc.DeleteMedication(ctx, "1"), health.ErrMedicationNotFound)
	require.Equal(t, []string{"2", "3"}, medIDs(svc.Schedule().Medications))
}

func TestMiles(t *testing.T) {
	require.Equal(t, 0.5, health.Miles("0.5 miles"))
	require.True(t, math.IsInf(health.Miles("nearby"), 1))
	require.True(t, math.IsInf(health.Miles(""), 1))
}
