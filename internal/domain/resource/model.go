package resource

// FileType is the format of a downloadable resource.
type FileType string

const (
	FilePDF FileType = "pdf"
	FileDoc FileType = "doc"
	FileJPG FileType = "jpg"
	FileMP3 FileType = "mp3"
	FileMP4 FileType = "mp4"
	FilePPT FileType = "ppt"
)

// Resource is an item in the safety resource library.
type Resource struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	FileType    FileType `json:"file_type"`
	Category    string   `json:"category"`
	Downloads   int      `json:"downloads"`
	Size        string   `json:"size"`
	LastUpdated string   `json:"last_updated"`
	Featured    bool     `json:"featured"`
	DownloadURL string   `json:"download_url"`
}

func (r Resource) EntityID() string { return r.ID }

func (r Resource) WithEntityID(id string) Resource {
	r.ID = id
	return r
}

// Category is a resource category with its current item count.
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

// Filter narrows a resource listing.
type Filter struct {
	Query        string
	Category     string
	FileType     FileType
	FeaturedOnly bool
	SortBy       string
	Descending   bool
}
