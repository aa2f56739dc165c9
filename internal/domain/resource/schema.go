package resource

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/ganot/nirapod/internal/viewstate"
)

// Schema searches title, description and category.
var Schema = viewstate.Schema[Resource]{
	Searchable: func(r Resource) []string { return []string{r.Title, r.Description, r.Category} },
	Fields: map[string]func(Resource) string{
		"category":  func(r Resource) string { return r.Category },
		"file_type": func(r Resource) string { return string(r.FileType) },
		"featured":  func(r Resource) string { return strconv.FormatBool(r.Featured) },
	},
	Sorts: map[string]func(a, b Resource) int{
		"downloads": func(a, b Resource) int { return cmp.Compare(a.Downloads, b.Downloads) },
		"title":     func(a, b Resource) int { return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) },
	},
}

// Categories lists the library sections in display order.
var Categories = []string{
	"Emergency Contact Cards",
	"Safety Checklists",
	"Home Security",
	"Travel Safety",
	"Emergency Preparedness",
	"Quick Reference",
}

// CategoryPalette maps categories to their tile.
var CategoryPalette = viewstate.NewPalette(
	viewstate.Presentation{Label: "Other", Icon: "file", Color: "gray"},
	map[string]viewstate.Presentation{
		"Emergency Contact Cards": {Label: "Emergency Contact Cards", Icon: "phone", Color: "red"},
		"Safety Checklists":       {Label: "Safety Checklists", Icon: "check-circle", Color: "green"},
		"Home Security":           {Label: "Home Security", Icon: "home", Color: "blue"},
		"Travel Safety":           {Label: "Travel Safety", Icon: "globe", Color: "purple"},
		"Emergency Preparedness":  {Label: "Emergency Preparedness", Icon: "alert-triangle", Color: "orange"},
		"Quick Reference":         {Label: "Quick Reference", Icon: "file-text", Color: "indigo"},
	},
)
