package tutorial

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GradeQuiz scores answers, keyed by question id, against questions.
// Unanswered questions count as wrong.
func GradeQuiz(questions []Question, answers map[string]int) (Grade, error) {
	known := make(map[string]Question, len(questions))
	for _, q := range questions {
		known[q.ID] = q
	}
	for id, ans := range answers {
		q, ok := known[id]
		if !ok {
			return Grade{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
		}
		if ans != Unanswered && (ans < 0 || ans >= len(q.Options)) {
			return Grade{}, fmt.Errorf("%w: question %s, option %d", ErrInvalidAnswer, id, ans)
		}
	}

	g := Grade{Total: len(questions), Feedback: make([]Feedback, 0, len(questions))}
	for _, q := range questions {
		selected, ok := answers[q.ID]
		if !ok {
			selected = Unanswered
		}
		fb := Feedback{
			QuestionID:  q.ID,
			Selected:    selected,
			Correct:     q.Correct,
			IsCorrect:   selected == q.Correct,
			Explanation: q.Explanation,
		}
		if fb.IsCorrect {
			g.Score++
		}
		g.Feedback = append(g.Feedback, fb)
	}
	if g.Total > 0 {
		g.Percentage = int(math.Round(float64(g.Score) / float64(g.Total) * 100))
	}
	return g, nil
}

// Markers positions each question on a video of the given duration.
func Markers(questions []Question, duration string) ([]Marker, error) {
	total, err := ParseTimestamp(duration)
	if err != nil {
		return nil, err
	}
	out := make([]Marker, 0, len(questions))
	for _, q := range questions {
		at, err := ParseTimestamp(q.TimeStamp)
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", q.ID, err)
		}
		pct := 0.0
		if total > 0 {
			pct = math.Min(float64(at)/float64(total)*100, 100)
		}
		out = append(out, Marker{QuestionID: q.ID, TimeStamp: q.TimeStamp, Percent: pct})
	}
	return out, nil
}

// ParseTimestamp converts MM:SS or HH:MM:SS to seconds.
func ParseTimestamp(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, ErrBadTimestamp
	}
	secs := 0
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || (i > 0 && n > 59) {
			return 0, ErrBadTimestamp
		}
		secs = secs*60 + n
	}
	return secs, nil
}
