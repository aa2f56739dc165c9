package viewstate

import (
	"context"
	"errors"
	"slices"
)

// Relation links member ids to groups held by another controller.
type Relation[G Entity[G]] struct {
	Groups     *Controller[G]
	Members    func(G) []string
	SetMembers func(G, []string) G
}

// Link adds memberID to the group. Linking an existing member is a no-op.
func (r Relation[G]) Link(ctx context.Context, groupID, memberID string) (G, error) {
	saved, ok, err := r.Groups.Update(ctx, groupID, func(g G) G {
		members := r.Members(g)
		if slices.Contains(members, memberID) {
			return g
		}
		return r.SetMembers(g, append(slices.Clone(members), memberID))
	})
	if err == nil && !ok {
		err = ErrNotFound
	}
	return saved, err
}

// Unlink removes memberID from the group.
func (r Relation[G]) Unlink(ctx context.Context, groupID, memberID string) (G, error) {
	saved, ok, err := r.Groups.Update(ctx, groupID, func(g G) G {
		return r.SetMembers(g, without(r.Members(g), memberID))
	})
	if err == nil && !ok {
		err = ErrNotFound
	}
	return saved, err
}

// Strip removes memberID from every group that holds it. It has the
// signature of a Controller.OnRemove cascade.
func (r Relation[G]) Strip(ctx context.Context, memberID string) error {
	var errs []error
	for _, g := range r.GroupsOf(memberID) {
		if _, err := r.Unlink(ctx, g.EntityID(), memberID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Prune drops member ids for which exists reports false.
func (r Relation[G]) Prune(ctx context.Context, exists func(id string) bool) error {
	var errs []error
	for _, g := range r.Groups.List() {
		members := r.Members(g)
		kept := slices.DeleteFunc(slices.Clone(members), func(id string) bool { return !exists(id) })
		if len(kept) == len(members) {
			continue
		}
		if _, _, err := r.Groups.Update(ctx, g.EntityID(), func(g G) G { return r.SetMembers(g, kept) }); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// GroupsOf returns the groups holding memberID.
func (r Relation[G]) GroupsOf(memberID string) []G {
	var out []G
	for _, g := range r.Groups.List() {
		if slices.Contains(r.Members(g), memberID) {
			out = append(out, g)
		}
	}
	return out
}

func without(ids []string, id string) []string {
	return slices.DeleteFunc(slices.Clone(ids), func(v string) bool { return v == id })
}
