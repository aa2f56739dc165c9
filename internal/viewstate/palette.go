package viewstate

// Presentation is how a tagged variant is shown.
type Presentation struct {
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// Palette maps variants to presentation, falling back for unknown variants.
type Palette[K comparable] struct {
	entries  map[K]Presentation
	fallback Presentation
}

// NewPalette builds a palette from an explicit table.
func NewPalette[K comparable](fallback Presentation, entries map[K]Presentation) Palette[K] {
	return Palette[K]{entries: entries, fallback: fallback}
}

// Lookup returns the presentation of k.
func (p Palette[K]) Lookup(k K) Presentation {
	if pr, ok := p.entries[k]; ok {
		return pr
	}
	return p.fallback
}
