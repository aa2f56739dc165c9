package contact_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ganot/nirapod/internal/domain/contact"
	"github.com/ganot/nirapod/internal/repository/mocks"
	"github.com/ganot/nirapod/internal/viewstate"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) *contact.Service {
	t.Helper()
	n := 0
	svc := contact.NewService(nil, nil, contact.Options{IDFunc: func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}})
	require.NoError(t, svc.Seed(context.Background(),
		[]contact.Contact{
			{ID: "1", Name: "John Smith", Phone: "(555) 123-4567", Relationship: "Spouse", Type: contact.TypePersonal, IsFavorite: true},
			{ID: "2", Name: "Dr. Sarah Williams", Phone: "(555) 987-6543", Type: contact.TypeMedical, Notes: "Primary care physician"},
			{ID: "3", Name: "Anytown Police Department", Phone: "911", Type: contact.TypeEmergency},
			{ID: "4", Name: "Mary Johnson", Phone: "(555) 234-5678", Relationship: "Neighbor", Type: contact.TypePersonal},
		},
		[]contact.Group{
			{ID: "g1", Name: "Emergency Contacts", Emergency: true, ContactIDs: []string{"1", "3"}},
			{ID: "g2", Name: "Family", ContactIDs: []string{"1"}},
			{ID: "g3", Name: "Neighbors", ContactIDs: []string{"4"}},
		},
	))
	return svc
}

func contactIDs(cs []contact.Contact) []string {
	out := []string{}
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestContactService_SearchAcrossFields(t *testing.T) {
	svc := seeded(t)

	require.Equal(t, []string{"1", "4"}, contactIDs(svc.ListContacts(contact.ContactFilter{Query: "john"})))
	require.Equal(t, []string{"2"}, contactIDs(svc.ListContacts(contact.ContactFilter{Query: "PHYSICIAN"})))
	require.Equal(t, []string{"4"}, contactIDs(svc.ListContacts(contact.ContactFilter{Query: "neighbor"})))
	require.Equal(t, []string{"3"}, contactIDs(svc.ListContacts(contact.ContactFilter{Query: "911"})))
	require.Equal(t, []string{"1"}, contactIDs(svc.ListContacts(contact.ContactFilter{FavoritesOnly: true})))
	require.Equal(t, []string{"1", "4"}, contactIDs(svc.ListContacts(contact.ContactFilter{Type: contact.TypePersonal})))
	require.Equal(t, []string{"3", "2", "1", "4"}, contactIDs(svc.ListContacts(contact.ContactFilter{SortBy: "name"})))
}

func TestContactService_CreateRequiresNameAndPhone(t *testing.T) {
	ctx := context.Background()
	svc := seeded(t)

	_, err := svc.CreateContact(ctx, contact.CreateContactRequest{Name: "Bob"})
	var verr *viewstate.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"phone"}, verr.Missing)
	require.Len(t, svc.ListContacts(contact.ContactFilter{}), 4)

	_, err = svc.CreateContact(ctx, contact.CreateContactRequest{Name: "Bob", Phone: "555-0100", Type: "stranger"})
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Invalid, "type")

	c, err := svc.CreateContact(ctx, contact.CreateContactRequest{Name: "Bob", Phone: "555-0100"})
	require.NoError(t, err)
	require.Equal(t, "new-1", c.ID)
	require.Equal(t, contact.TypePersonal, c.Type)
}

func TestContactService_UpdateKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	svc := seeded(t)

	phone := "(555) 000-1111"
	c, err := svc.UpdateContact(ctx, contact.UpdateContactRequest{ID: "2", Phone: &phone})
	require.NoError(t, err)
	require.Equal(t, phone, c.Phone)
	require.Equal(t, "Dr. Sarah Williams", c.Name)
	require.Equal(t, "Primary care physician", c.Notes)

	_, err = svc.UpdateContact(ctx, contact.UpdateContactRequest{ID: "missing", Phone: &phone})
	require.ErrorIs(t, err, contact.ErrContactNotFound)
}

func TestContactService_DeleteStripsGroupMembership(t *testing.T) {
	ctx := context.Background()
	svc := seeded(t)

	require.NoError(t, svc.DeleteContact(ctx, "1"))
	require.ErrorIs(t, svc.DeleteContact(ctx, "1"), contact.ErrContactNotFound)

	for _, g := range svc.ListGroups("", false) {
		require.NotContains(t, g.ContactIDs, "1", "group %s", g.Name)
	}
	detail, err := svc.GetGroup("g1")
	require.NoError(t, err)
	require.Equal(t, []string{"3"}, detail.ContactIDs)
	require.Equal(t, []string{"3"}, contactIDs(detail.Members))
}

func TestContactService_GroupMembership(t *testing.T) {
	ctx := context.Background()
	svc := seeded(t)

	g, err := svc.AddToGroup(ctx, "g3", "2")
	require.NoError(t, err)
	require.Equal(t, []string{"4", "2"}, g.ContactIDs)

	g, err = svc.AddToGroup(ctx, "g3", "2")
	require.NoError(t, err)
	require.Equal(t, []string{"4", "2"}, g.ContactIDs)

	_, err = svc.AddToGroup(ctx, "g3", "ghost")
	require.ErrorIs(t, err, contact.ErrContactNotFound)
	_, err = svc.AddToGroup(ctx, "ghost", "2")
	require.ErrorIs(t, err, contact.ErrGroupNotFound)

	g, err = svc.RemoveFromGroup(ctx, "g3", "4")
	require.NoError(t, err)
	require.Equal(t, []string{"2"}, g.ContactIDs)

	require.Len(t, svc.GroupsOf("1"), 2)
}

func TestContactService_CreateGroupSkipsUnknownMembers(t *testing.T) {
	ctx := context.Background()
	svc := seeded(t)

	_, err := svc.CreateGroup(ctx, contact.CreateGroupRequest{})
	require.ErrorIs(t, err, viewstate.ErrValidation)

	g, err := svc.CreateGroup(ctx, contact.CreateGroupRequest{Name: "Work", ContactIDs: []string{"2", "ghost", "4"}})
	require.NoError(t, err)
	require.Equal(t, []string{"2", "4"}, g.ContactIDs)
	require.Equal(t, "blue", g.Color)

	require.NoError(t, svc.DeleteGroup(ctx, g.ID))
	require.Len(t, svc.ListContacts(contact.ContactFilter{}), 4)
}

func TestContactService_CreateGroupRemovedWhenLinkFails(t *testing.T) {
	ctx := context.Background()
	contactsGW := &mocks.Gateway[contact.Contact]{}
	groupsGW := &mocks.Gateway[contact.Group]{}
	contactsGW.On("FetchAll", mock.Anything).Return([]contact.Contact{{ID: "1", Name: "John", Phone: "555"}}, nil)
	groupsGW.On("FetchAll", mock.Anything).Return([]contact.Group{}, nil)
	groupsGW.On("Create", mock.Anything, mock.Anything).Return(nil, nil)
	groupsGW.On("Patch", mock.Anything, "g-1", mock.Anything).Return(nil, errors.New("offline"))
	groupsGW.On("Delete", mock.Anything, "g-1").Return(nil)

	svc := contact.NewService(contactsGW, groupsGW, contact.Options{IDFunc: func() string { return "g-1" }})
	require.NoError(t, svc.Load(ctx))

	_, err := svc.CreateGroup(ctx, contact.CreateGroupRequest{Name: "Family", ContactIDs: []string{"1"}})
	require.Error(t, err)
	require.Empty(t, svc.ListGroups("", false))
	_, err = svc.GetGroup("g-1")
	require.ErrorIs(t, err, contact.ErrGroupNotFound)
	groupsGW.AssertExpectations(t)
}

func TestContactService_EmergencyRecipients(t *testing.T) {
	ctx := context.Background()
	svc := seeded(t)
	require.Equal(t, []string{"1", "3"}, contactIDs(svc.EmergencyRecipients()))

	_, err := svc.AddToGroup(ctx, "g1", "4")
	require.NoError(t, err)
	emergency := true
	_, err = svc.UpdateGroup(ctx, contact.UpdateGroupRequest{ID: "g3", Emergency: &emergency})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteContact(ctx, "3"))

	require.Equal(t, []string{"1", "4"}, contactIDs(svc.EmergencyRecipients()))
}

func TestContactService_TogglesAndMarkContacted(t *testing.T) {
	ctx := context.Background()
	svc := seeded(t)

	c, err := svc.ToggleFavorite(ctx, "1")
	require.NoError(t, err)
	require.False(t, c.IsFavorite)
	c, err = svc.ToggleSharing(ctx, "1")
	require.NoError(t, err)
	require.True(t, c.IsSharing)

	c, err = svc.MarkContacted(ctx, "4", time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, "2024-03-09", c.LastContacted)

	_, err = svc.ToggleFavorite(ctx, "ghost")
	require.ErrorIs(t, err, contact.ErrContactNotFound)
}

func TestContactService_LoadPrunesDanglingMembers(t *testing.T) {
	ctx := context.Background()
	contactsGW := &mocks.Gateway[contact.Contact]{}
	groupsGW := &mocks.Gateway[contact.Group]{}

	contactsGW.On("FetchAll", mock.Anything).Return([]contact.Contact{{ID: "1", Name: "John", Phone: "555"}}, nil)
	groupsGW.On("FetchAll", mock.Anything).Return([]contact.Group{{ID: "g1", Name: "Family", ContactIDs: []string{"1", "gone"}}}, nil)
	groupsGW.On("Patch", mock.Anything, "g1", mock.MatchedBy(func(g contact.Group) bool {
		return len(g.ContactIDs) == 1 && g.ContactIDs[0] == "1"
	})).Return(nil, nil)

	svc := contact.NewService(contactsGW, groupsGW, contact.Options{})
	require.NoError(t, svc.Load(ctx))

	detail, err := svc.GetGroup("g1")
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, detail.ContactIDs)
	groupsGW.AssertExpectations(t)
}

func TestContactService_DeleteRollsBackWhenGatewayFails(t *testing.T) {
	ctx := context.Background()
	contactsGW := &mocks.Gateway[contact.Contact]{}
	contactsGW.On("FetchAll", mock.Anything).Return([]contact.Contact{{ID: "1", Name: "John", Phone: "555"}}, nil)
	contactsGW.On("Delete", mock.Anything, "1").Return(errors.New("offline"))

	svc := contact.NewService(contactsGW, nil, contact.Options{})
	require.NoError(t, svc.Load(ctx))

	require.Error(t, svc.DeleteContact(ctx, "1"))
	_, err := svc.GetContact("1")
	require.NoError(t, err)
}

func TestContactService_ActivityObserver(t *testing.T) {
	ctx := context.Background()
	var changes []viewstate.Change
	svc := contact.NewService(nil, nil, contact.Options{Activity: func(_ context.Context, c viewstate.Change) {
		changes = append(changes, c)
	}})

	c, err := svc.CreateContact(ctx, contact.CreateContactRequest{Name: "Bob", Phone: "555-0100"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteContact(ctx, c.ID))

	require.Len(t, changes, 2)
	require.Equal(t, viewstate.ChangeCreated, changes[0].Kind)
	require.Equal(t, "Bob", changes[0].Summary)
	require.Equal(t, viewstate.ChangeDeleted, changes[1].Kind)
}

func TestContactService_Views(t *testing.T) {
	svc := seeded(t)
	require.Equal(t, contact.ViewContacts, svc.View())
	require.NoError(t, svc.SetView(contact.ViewEmergency))
	require.Equal(t, contact.ViewEmergency, svc.View())
	require.ErrorIs(t, svc.SetView("settings"), viewstate.ErrUnknownTab)
	require.Equal(t, contact.ViewEmergency, svc.View())
}

func TestContactService_ShowingFollowsView(t *testing.T) {
	svc := seeded(t)

	shown := svc.Showing()
	require.Equal(t, contact.ViewContacts, shown.View)
	require.Len(t, shown.Contacts, 4)
	require.Empty(t, shown.Groups)

	require.NoError(t, svc.SetView(contact.ViewGroups))
	shown = svc.Showing()
	require.Equal(t, contact.ViewGroups, shown.View)
	require.Len(t, shown.Groups, 3)
	require.Empty(t, shown.Contacts)

	require.NoError(t, svc.SetView(contact.ViewEmergency))
	shown = svc.Showing()
	require.Equal(t, []string{"1", "3"}, contactIDs(shown.Contacts))
	require.Empty(t, shown.Groups)
}

func TestTypePalette(t *testing.T) {
	require.Equal(t, "red", contact.TypePalette.Lookup(contact.TypeEmergency).Color)
	require.Equal(t, "Other", contact.TypePalette.Lookup("alien").Label)
}
