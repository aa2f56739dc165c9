package resource

import (
	"math"
	"slices"

	"github.com/ganot/nirapod/internal/viewstate"
)

// Question is one home security check.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Section groups assessment questions.
type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Result scores a finished assessment. Only "Yes" answers score.
type Result struct {
	Score      int      `json:"score"`
	Total      int      `json:"total"`
	Percentage int      `json:"percentage"`
	Rating     string   `json:"rating"`
	Concerns   []string `json:"concerns"`
}

// HomeSecuritySections is the home security self-assessment.
var HomeSecuritySections = []Section{
	{ID: "exterior", Title: "Exterior Security", Questions: []Question{
		{ID: "ext1", Text: "Are all entry doors solid core or metal?", Options: []string{"Yes", "No", "Unsure"}},
		{ID: "ext2", Text: "Do all exterior doors have deadbolt locks?", Options: []string{"Yes", "No", "Unsure"}},
		{ID: "ext3", Text: "Are door frames reinforced with strike plates and 3-inch screws?", Options: []string{"Yes", "No", "Unsure"}},
		{ID: "ext4", Text: "Are sliding doors secured with secondary locks or bars?", Options: []string{"Yes", "No", "Not Applicable"}},
		{ID: "ext5", Text: "Is exterior lighting adequate around all entry points?", Options: []string{"Yes", "No", "Partial"}},
	}},
	{ID: "windows", Title: "Windows & Visibility", Questions: []Question{
		{ID: "win1", Text: "Do all windows have functioning locks?", Options: []string{"Yes", "No", "Some"}},
		{ID: "win2", Text: "Are ground-floor windows reinforced with security film or bars?", Options: []string{"Yes", "No", "Some"}},
		{ID: "win3", Text: "Is landscaping maintained to eliminate hiding spots?", Options: []string{"Yes", "No", "Partially"}},
		{ID: "win4", Text: "Do you have window break sensors or alarms?", Options: []string{"Yes", "No", "Some windows"}},
	}},
	{ID: "interior", Title: "Interior Security", Questions: []Question{
		{ID: "int1", Text: "Do you have a security system installed?", Options: []string{"Yes", "No", "Partial system"}},
		{ID: "int2", Text: "Do you have smoke detectors on every level and in sleeping areas?", Options: []string{"Yes", "No", "Some areas"}},
		{ID: "int3", Text: "Do you have carbon monoxide detectors installed?", Options: []string{"Yes", "No", "Some areas"}},
		{ID: "int4", Text: "Do you have a safe for valuables and important documents?", Options: []string{"Yes", "No", "Use alternative storage"}},
	}},
}

var concernAnswers = []string{"No", "Unsure", "Some"}

// Assessment walks the user through the sections one at a time.
type Assessment struct {
	sections []Section
	cursor   *viewstate.Cursor
	answers  map[string]string
}

// NewAssessment starts an assessment on its first section.
func NewAssessment(sections []Section) *Assessment {
	return &Assessment{
		sections: sections,
		cursor:   viewstate.NewCursor(len(sections)),
		answers:  map[string]string{},
	}
}

// Section returns the current section.
func (a *Assessment) Section() (Section, int) {
	if len(a.sections) == 0 {
		return Section{}, 0
	}
	return a.sections[a.cursor.Pos()], a.cursor.Pos()
}

// Answer records the answer to a question in any section.
func (a *Assessment) Answer(questionID, answer string) error {
	q, ok := a.question(questionID)
	if !ok {
		return ErrUnknownQuestion
	}
	if !slices.Contains(q.Options, answer) {
		return ErrUnknownAnswer
	}
	a.answers[questionID] = answer
	return nil
}

// SectionComplete reports whether every question of the current section is answered.
func (a *Assessment) SectionComplete() bool {
	s, _ := a.Section()
	for _, q := range s.Questions {
		if a.answers[q.ID] == "" {
			return false
		}
	}
	return true
}

// Next moves to the following section and reports whether it moved.
func (a *Assessment) Next() bool { return a.cursor.Next() }

// Prev moves to the previous section and reports whether it moved.
func (a *Assessment) Prev() bool { return a.cursor.Prev() }

// Finished reports whether the last section is shown and complete.
func (a *Assessment) Finished() bool {
	return a.cursor.Last() && a.SectionComplete()
}

// Result scores the answers given so far.
func (a *Assessment) Result() Result {
	return Score(a.sections, a.answers)
}

// Score rates answers against sections. Unanswered questions are not counted.
func Score(sections []Section, answers map[string]string) Result {
	r := Result{Concerns: []string{}}
	for _, s := range sections {
		for _, q := range s.Questions {
			ans, ok := answers[q.ID]
			if !ok || ans == "" {
				continue
			}
			r.Total++
			if ans == "Yes" {
				r.Score++
			}
			if slices.Contains(concernAnswers, ans) {
				r.Concerns = append(r.Concerns, q.ID)
			}
		}
	}
	if r.Total > 0 {
		r.Percentage = int(math.Round(float64(r.Score) / float64(r.Total) * 100))
	}
	switch {
	case r.Percentage >= 80:
		r.Rating = "Excellent"
	case r.Percentage >= 60:
		r.Rating = "Good"
	case r.Percentage >= 40:
		r.Rating = "Fair"
	default:
		r.Rating = "Needs Improvement"
	}
	return r
}

func (a *Assessment) question(id string) (Question, bool) {
	for _, s := range a.sections {
		for _, q := range s.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Question{}, false
}
