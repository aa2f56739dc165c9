package guide

// Difficulty is how demanding a guide is.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Section is one step of a guide.
type Section struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tips     []string `json:"tips,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	VideoURL string   `json:"video_url,omitempty"`
}

// Attachment is a downloadable companion to a guide.
type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
	Size string `json:"size,omitempty"`
}

// Guide is a self-defense or safety guide.
type Guide struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	Difficulty    Difficulty   `json:"difficulty"`
	EstimatedTime string       `json:"estimated_time,omitempty"`
	Author        string       `json:"author"`
	LastUpdated   string       `json:"last_updated"`
	Views         int          `json:"views"`
	Likes         int          `json:"likes"`
	Sections      []Section    `json:"sections,omitempty"`
	Attachments   []Attachment `json:"attachments,omitempty"`
}

func (g Guide) EntityID() string { return g.ID }

func (g Guide) WithEntityID(id string) Guide {
	g.ID = id
	return g
}

// Reading is the open guide and the section being read.
type Reading struct {
	Guide   Guide   `json:"guide"`
	Index   int     `json:"index"`
	Total   int     `json:"total"`
	Section Section `json:"section"`
	First   bool    `json:"first"`
	Last    bool    `json:"last"`
	Liked   bool    `json:"liked"`
}

// Filter narrows a guide listing.
type Filter struct {
	Query      string
	Category   string
	Difficulty Difficulty
	SortBy     string
	Descending bool
}
