package tutorial

// Question is a multiple-choice quiz question shown at a point in the video.
type Question struct {
	ID          string   `json:"id"`
	TimeStamp   string   `json:"timestamp"`
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct_answer"`
	Explanation string   `json:"explanation"`
}

// Scenario is a practice drill that accompanies a tutorial.
type Scenario struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Objectives  []string `json:"objectives,omitempty"`
	Setup       string   `json:"setup,omitempty"`
	Steps       []string `json:"steps,omitempty"`
	Tips        []string `json:"tips,omitempty"`
}

// Tutorial is a self-defense video lesson.
type Tutorial struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	VideoURL    string     `json:"video_url"`
	Duration    string     `json:"duration"`
	Instructor  string     `json:"instructor"`
	Level       string     `json:"level"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags,omitempty"`
	Published   string     `json:"published"`
	Views       int        `json:"views"`
	Rating      float64    `json:"rating"`
	Quiz        []Question `json:"quiz,omitempty"`
	Scenarios   []Scenario `json:"scenarios,omitempty"`
}

func (t Tutorial) EntityID() string { return t.ID }

func (t Tutorial) WithEntityID(id string) Tutorial {
	t.ID = id
	return t
}

// Feedback is the grading of one question.
type Feedback struct {
	QuestionID  string `json:"question_id"`
	Selected    int    `json:"selected"`
	Correct     int    `json:"correct_answer"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

// Grade is the result of a graded quiz.
type Grade struct {
	Score      int        `json:"score"`
	Total      int        `json:"total"`
	Percentage int        `json:"percentage"`
	Feedback   []Feedback `json:"feedback"`
}

// Marker places a quiz question on the video timeline.
type Marker struct {
	QuestionID string  `json:"question_id"`
	TimeStamp  string  `json:"timestamp"`
	Percent    float64 `json:"percent"`
}

// Tab is a section of the tutorial detail view.
type Tab string

const (
	TabOverview  Tab = "overview"
	TabQuizzes   Tab = "quizzes"
	TabPractice  Tab = "practice"
	TabMaterials Tab = "materials"
)

// Unanswered marks a question with no selected option.
const Unanswered = -1

// Filter narrows a tutorial listing.
type Filter struct {
	Query    string
	Level    string
	Category string
}
