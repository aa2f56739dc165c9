package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/ganot/nirapod/internal/viewstate"
)

const (
	PanelContacts = "contacts"
	PanelGroups   = "groups"
)

// Service handles the contacts panel: contacts, groups and their membership.
type Service struct {
	mu       sync.Mutex
	contacts *viewstate.Controller[Contact]
	groups   *viewstate.Controller[Group]
	members  viewstate.Relation[Group]
	views    *viewstate.Tabs[View]
	logger   *slog.Logger
}

// NewService creates the contacts panel. Either gateway may be nil.
func NewService(contactGW viewstate.Gateway[Contact], groupGW viewstate.Gateway[Group], opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	contacts := viewstate.NewController(viewstate.Config[Contact]{
		Panel:    PanelContacts,
		Schema:   ContactSchema,
		Fields:   ContactFields(),
		Template: newContact,
		Gateway:  contactGW,
		Retry:    opts.Retry,
		Metrics:  opts.Metrics,
		Logger:   logger,
		Describe: func(c Contact) string { return c.Name },
		IDFunc:   opts.IDFunc,
	})
	groups := viewstate.NewController(viewstate.Config[Group]{
		Panel:    PanelGroups,
		Schema:   GroupSchema,
		Fields:   GroupFields(),
		Template: newGroup,
		Gateway:  groupGW,
		Retry:    opts.Retry,
		Metrics:  opts.Metrics,
		Logger:   logger,
		Describe: func(g Group) string { return g.Name },
		IDFunc:   opts.IDFunc,
	})
	members := viewstate.Relation[Group]{
		Groups:  groups,
		Members: func(g Group) []string { return g.ContactIDs },
		SetMembers: func(g Group, ids []string) Group {
			g.ContactIDs = ids
			return g
		},
	}
	contacts.OnRemove(members.Strip)
	if opts.Activity != nil {
		contacts.Observe(opts.Activity)
		groups.Observe(opts.Activity)
	}

	return &Service{
		contacts: contacts,
		groups:   groups,
		members:  members,
		views:    viewstate.NewTabs(ViewContacts, ViewGroups, ViewEmergency),
		logger:   logger,
	}
}

// Load fetches contacts and groups and drops group members that no longer exist.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.contacts.Load(ctx); err != nil {
		return err
	}
	if err := s.groups.Load(ctx); err != nil {
		return err
	}
	if err := s.members.Prune(ctx, func(id string) bool {
		_, ok := s.contacts.Get(id)
		return ok
	}); err != nil {
		return fmt.Errorf("pruning group members: %w", err)
	}
	return nil
}

// Seed fills empty stores with the given records.
func (s *Service) Seed(ctx context.Context, contacts []Contact, groups []Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.contacts.Seed(ctx, contacts); err != nil {
		return err
	}
	if _, err := s.groups.Seed(ctx, groups); err != nil {
		return err
	}
	return nil
}

// ListContacts returns contacts matching filter.
func (s *Service) ListContacts(filter ContactFilter) []Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contacts.Filter(filter.criteria())
}

// GetContact returns one contact.
func (s *Service) GetContact(id string) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts.Get(id)
	if !ok {
		return Contact{}, ErrContactNotFound
	}
	return c, nil
}

// CreateContact validates and stores a new contact.
func (s *Service) CreateContact(ctx context.Context, req CreateContactRequest) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.contacts.Create(ctx, req.values())
	if err != nil {
		return Contact{}, fmt.Errorf("creating contact: %w", err)
	}
	s.logger.Debug("contact created", "id", c.ID)
	return c, nil
}

// UpdateContact applies the non-nil fields of req.
func (s *Service) UpdateContact(ctx context.Context, req UpdateContactRequest) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.contacts.Edit(ctx, req.ID, req.values())
	if errors.Is(err, viewstate.ErrNotFound) {
		return Contact{}, ErrContactNotFound
	}
	if err != nil {
		return Contact{}, fmt.Errorf("updating contact: %w", err)
	}
	return c, nil
}

// DeleteContact removes a contact and strips it from every group.
func (s *Service) DeleteContact(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed, err := s.contacts.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrContactNotFound
	}
	return nil
}

// ToggleFavorite flips the favorite flag.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (Contact, error) {
	return s.patchContact(ctx, id, func(c Contact) Contact {
		c.IsFavorite = !c.IsFavorite
		return c
	})
}

// ToggleSharing flips location sharing with the contact.
func (s *Service) ToggleSharing(ctx context.Context, id string) (Contact, error) {
	return s.patchContact(ctx, id, func(c Contact) Contact {
		c.IsSharing = !c.IsSharing
		return c
	})
}

// MarkContacted records the date the contact was last reached.
func (s *Service) MarkContacted(ctx context.Context, id string, at time.Time) (Contact, error) {
	return s.patchContact(ctx, id, func(c Contact) Contact {
		c.LastContacted = at.Format(time.DateOnly)
		return c
	})
}

// ListGroups returns groups matching query, with an optional emergency-only filter.
func (s *Service) ListGroups(query string, emergencyOnly bool) []Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := viewstate.Criteria{Query: query}
	if emergencyOnly {
		c = c.With("emergency", "true")
	}
	return s.groups.Filter(c)
}

// GetGroup returns a group with its members resolved.
func (s *Service) GetGroup(id string) (GroupDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups.Get(id)
	if !ok {
		return GroupDetail{}, ErrGroupNotFound
	}
	return GroupDetail{Group: g, Members: s.resolve(g.ContactIDs)}, nil
}

// CreateGroup validates and stores a new group. Unknown member ids are skipped.
// When a member cannot be linked the group is removed again.
func (s *Service) CreateGroup(ctx context.Context, req CreateGroupRequest) (Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.groups.Create(ctx, req.values())
	if err != nil {
		return Group{}, fmt.Errorf("creating group: %w", err)
	}
	for _, id := range req.ContactIDs {
		if _, ok := s.contacts.Get(id); !ok {
			continue
		}
		linked, err := s.members.Link(ctx, g.ID, id)
		if err != nil {
			if _, rerr := s.groups.Remove(ctx, g.ID); rerr != nil {
				s.logger.Warn("group left without its members", "id", g.ID, "error", rerr)
			}
			return Group{}, fmt.Errorf("adding group member: %w", err)
		}
		g = linked
	}
	return g, nil
}

// UpdateGroup applies the non-nil fields of req.
func (s *Service) UpdateGroup(ctx context.Context, req UpdateGroupRequest) (Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.groups.Edit(ctx, req.ID, req.values())
	if errors.Is(err, viewstate.ErrNotFound) {
		return Group{}, ErrGroupNotFound
	}
	if err != nil {
		return Group{}, fmt.Errorf("updating group: %w", err)
	}
	return g, nil
}

// DeleteGroup removes a group. Its contacts are kept.
func (s *Service) DeleteGroup(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed, err := s.groups.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrGroupNotFound
	}
	return nil
}

// AddToGroup adds a contact to a group. Adding an existing member is a no-op.
func (s *Service) AddToGroup(ctx context.Context, groupID, contactID string) (Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts.Get(contactID); !ok {
		return Group{}, ErrContactNotFound
	}
	g, err := s.members.Link(ctx, groupID, contactID)
	if errors.Is(err, viewstate.ErrNotFound) {
		return Group{}, ErrGroupNotFound
	}
	return g, err
}

// RemoveFromGroup removes a contact from a group.
func (s *Service) RemoveFromGroup(ctx context.Context, groupID, contactID string) (Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.members.Unlink(ctx, groupID, contactID)
	if errors.Is(err, viewstate.ErrNotFound) {
		return Group{}, ErrGroupNotFound
	}
	return g, err
}

// GroupsOf lists the groups a contact belongs to.
func (s *Service) GroupsOf(contactID string) []Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members.GroupsOf(contactID)
}

// EmergencyRecipients returns the contacts an SOS alert goes to: members of
// emergency groups and contacts typed as emergency, in contact order.
func (s *Service) EmergencyRecipients() []Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emergencyRecipients()
}

func (s *Service) emergencyRecipients() []Contact {
	wanted := map[string]bool{}
	for _, g := range s.groups.List() {
		if !g.Emergency {
			continue
		}
		for _, id := range g.ContactIDs {
			wanted[id] = true
		}
	}
	var out []Contact
	for _, c := range s.contacts.List() {
		if wanted[c.ID] || c.Type == TypeEmergency {
			out = append(out, c)
		}
	}
	return out
}

// View returns the active panel tab.
func (s *Service) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views.Current()
}

// SetView switches the panel tab.
func (s *Service) SetView(v View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views.Go(v)
}

// NextView cycles to the following tab.
func (s *Service) NextView() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views.Next()
}

// Showing returns the active tab with the records it lists. The contacts
// and groups tabs honor the panel's current filter state.
func (s *Service) Showing() ViewContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := ViewContent{View: s.views.Current()}
	switch out.View {
	case ViewGroups:
		out.Groups = s.groups.Visible()
	case ViewEmergency:
		out.Contacts = s.emergencyRecipients()
	default:
		out.Contacts = s.contacts.Visible()
	}
	return out
}

func (s *Service) patchContact(ctx context.Context, id string, patch func(Contact) Contact) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok, err := s.contacts.Update(ctx, id, patch)
	if err != nil {
		return Contact{}, err
	}
	if !ok {
		return Contact{}, ErrContactNotFound
	}
	return c, nil
}

func (s *Service) resolve(ids []string) []Contact {
	out := make([]Contact, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.contacts.Get(id); ok {
			out = append(out, c)
		}
	}
	return out
}

// CreateContactRequest describes a new contact.
type CreateContactRequest struct {
	Name         string
	Phone        string
	Email        string
	Address      string
	Relationship string
	Type         ContactType
	Notes        string
	IsFavorite   bool
	IsSharing    bool
}

func (r CreateContactRequest) values() map[string]string {
	v := map[string]string{
		"name":         r.Name,
		"phone":        r.Phone,
		"email":        r.Email,
		"address":      r.Address,
		"relationship": r.Relationship,
		"notes":        r.Notes,
		"favorite":     strconv.FormatBool(r.IsFavorite),
		"sharing":      strconv.FormatBool(r.IsSharing),
	}
	if r.Type != "" {
		v["type"] = string(r.Type)
	}
	return v
}

// UpdateContactRequest describes a partial contact update.
type UpdateContactRequest struct {
	ID           string
	Name         *string
	Phone        *string
	Email        *string
	Address      *string
	Relationship *string
	Type         *ContactType
	Notes        *string
}

func (r UpdateContactRequest) values() map[string]string {
	v := map[string]string{}
	set := func(key string, val *string) {
		if val != nil {
			v[key] = *val
		}
	}
	set("name", r.Name)
	set("phone", r.Phone)
	set("email", r.Email)
	set("address", r.Address)
	set("relationship", r.Relationship)
	set("notes", r.Notes)
	if r.Type != nil {
		v["type"] = string(*r.Type)
	}
	return v
}

// CreateGroupRequest describes a new group.
type CreateGroupRequest struct {
	Name        string
	Description string
	Color       string
	Emergency   bool
	ContactIDs  []string
}

func (r CreateGroupRequest) values() map[string]string {
	v := map[string]string{
		"name":        r.Name,
		"description": r.Description,
		"emergency":   strconv.FormatBool(r.Emergency),
	}
	if r.Color != "" {
		v["color"] = r.Color
	}
	return v
}

// UpdateGroupRequest describes a partial group update.
type UpdateGroupRequest struct {
	ID          string
	Name        *string
	Description *string
	Color       *string
	Emergency   *bool
}

func (r UpdateGroupRequest) values() map[string]string {
	v := map[string]string{}
	if r.Name != nil {
		v["name"] = *r.Name
	}
	if r.Description != nil {
		v["description"] = *r.Description
	}
	if r.Color != nil {
		v["color"] = *r.Color
	}
	if r.Emergency != nil {
		v["emergency"] = strconv.FormatBool(*r.Emergency)
	}
	return v
}
