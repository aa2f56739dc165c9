package viewstate

import "slices"

// Tabs is a flat tab selection. Every declared tab is reachable; guards only
// report whether a tab currently has content to show.
type Tabs[K comparable] struct {
	order   []K
	current K
	guards  map[K]func() bool
}

// NewTabs declares the tabs in display order and starts on the first one.
func NewTabs[K comparable](tabs ...K) *Tabs[K] {
	t := &Tabs[K]{order: slices.Clone(tabs), guards: make(map[K]func() bool)}
	if len(tabs) > 0 {
		t.current = tabs[0]
	}
	return t
}

// Guard registers an availability check for tab.
func (t *Tabs[K]) Guard(tab K, enabled func() bool) {
	t.guards[tab] = enabled
}

// Go switches to tab.
func (t *Tabs[K]) Go(tab K) error {
	if !slices.Contains(t.order, tab) {
		return ErrUnknownTab
	}
	t.current = tab
	return nil
}

// Current returns the active tab.
func (t *Tabs[K]) Current() K {
	return t.current
}

// Enabled reports whether tab has content. Unguarded tabs are always enabled.
func (t *Tabs[K]) Enabled(tab K) bool {
	if !slices.Contains(t.order, tab) {
		return false
	}
	guard, ok := t.guards[tab]
	if !ok {
		return true
	}
	return guard()
}

// All returns the tabs in display order.
func (t *Tabs[K]) All() []K {
	return slices.Clone(t.order)
}

// Next cycles to the following tab, wrapping around.
func (t *Tabs[K]) Next() K {
	if len(t.order) == 0 {
		return t.current
	}
	i := slices.Index(t.order, t.current)
	t.current = t.order[(i+1)%len(t.order)]
	return t.current
}
