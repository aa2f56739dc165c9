package tutorial_test

import (
	"testing"

	"github.com/ganot/nirapod/internal/domain/tutorial"
	"github.com/stretchr/testify/require"
)

var quiz = []tutorial.Question{
	{ID: "1", TimeStamp: "04:30", Text: "What is the primary purpose of the basic stance?", Options: []string{"Intimidate", "Strike", "Balance", "Signal"}, Correct: 2, Explanation: "Balance and stability."},
	{ID: "2", TimeStamp: "09:15", Text: "Which part of the hand makes contact in a palm strike?", Options: []string{"Fingers", "Heel of the palm", "Side", "Knuckles"}, Correct: 1},
	{ID: "3", TimeStamp: "15:20", Text: "What should you do after breaking free?", Options: []string{"Counterattack", "Call for help", "Create distance", "Wait"}, Correct: 2},
}

func TestGradeQuiz(t *testing.T) {
	g, err := tutorial.GradeQuiz(quiz, map[string]int{"1": 2, "2": 3})
	require.NoError(t, err)
	require.Equal(t, 1, g.Score)
	require.Equal(t, 3, g.Total)
	require.Equal(t, 33, g.Percentage)
	require.Len(t, g.Feedback, 3)

	require.True(t, g.Feedback[0].IsCorrect)
	require.Equal(t, "Balance and stability.", g.Feedback[0].Explanation)
	require.False(t, g.Feedback[1].IsCorrect)
	require.Equal(t, 1, g.Feedback[1].Correct)
	require.Equal(t, tutorial.Unanswered, g.Feedback[2].Selected)
	require.False(t, g.Feedback[2].IsCorrect)
}

func TestGradeQuiz_AllCorrect(t *testing.T) {
	g, err := tutorial.GradeQuiz(quiz, map[string]int{"1": 2, "2": 1, "3": 2})
	require.NoError(t, err)
	require.Equal(t, 100, g.Percentage)

	g, err = tutorial.GradeQuiz(nil, nil)
	require.NoError(t, err)
	require.Zero(t, g.Percentage)
}

func TestGradeQuiz_RejectsBadAnswers(t *testing.T) {
	_, err := tutorial.GradeQuiz(quiz, map[string]int{"9": 0})
	require.ErrorIs(t, err, tutorial.ErrUnknownQuestion)
	_, err = tutorial.GradeQuiz(quiz, map[string]int{"1": 4})
	require.ErrorIs(t, err, tutorial.ErrInvalidAnswer)

	g, err := tutorial.GradeQuiz(quiz, map[string]int{"1": tutorial.Unanswered})
	require.NoError(t, err)
	require.Zero(t, g.Score)
}

func TestMarkers(t *testing.T) {
	m, err := tutorial.Markers(quiz, "18:45")
	require.NoError(t, err)
	require.Len(t, m, 3)
	require.InDelta(t, 24.0, m[0].Percent, 0.01)
	require.InDelta(t, 81.78, m[2].Percent, 0.01)

	_, err = tutorial.Markers(quiz, "long")
	require.ErrorIs(t, err, tutorial.ErrBadTimestamp)
}

func TestParseTimestamp(t *testing.T) {
	n, err := tutorial.ParseTimestamp("1:02:03")
	require.NoError(t, err)
	require.Equal(t, 3723, n)
	for _, bad := range []string{"", "12", "04:75", "a:b"} {
		_, err := tutorial.ParseTimestamp(bad)
		require.ErrorIs(t, err, tutorial.ErrBadTimestamp, bad)
	}
}
