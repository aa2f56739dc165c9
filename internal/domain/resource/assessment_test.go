package resource_test

import (
	"testing"

	"github.com/ganot/nirapod/internal/domain/resource"
	"github.com/stretchr/testify/require"
)

func TestAssessment_Walkthrough(t *testing.T) {
	a := resource.NewAssessment(resource.HomeSecuritySections)

	s, idx := a.Section()
	require.Equal(t, "exterior", s.ID)
	require.Zero(t, idx)
	require.False(t, a.Prev())
	require.False(t, a.SectionComplete())

	require.ErrorIs(t, a.Answer("ext1", "Maybe"), resource.ErrUnknownAnswer)
	require.ErrorIs(t, a.Answer("zzz", "Yes"), resource.ErrUnknownQuestion)

	for _, id := range []string{"ext1", "ext2", "ext3", "ext4"} {
		require.NoError(t, a.Answer(id, "Yes"))
	}
	require.NoError(t, a.Answer("ext5", "No"))
	require.True(t, a.SectionComplete())

	require.True(t, a.Next())
	require.True(t, a.Next())
	require.False(t, a.Next())
	s, idx = a.Section()
	require.Equal(t, "interior", s.ID)
	require.Equal(t, 2, idx)
	require.False(t, a.Finished())

	r := a.Result()
	require.Equal(t, 4, r.Score)
	require.Equal(t, 5, r.Total)
	require.Equal(t, 80, r.Percentage)
	require.Equal(t, "Excellent", r.Rating)
	require.Equal(t, []string{"ext5"}, r.Concerns)
}

func TestScore_Ratings(t *testing.T) {
	sections := resource.HomeSecuritySections
	require.Equal(t, "Needs Improvement", resource.Score(sections, nil).Rating)
	require.Equal(t, 0, resource.Score(sections, nil).Percentage)

	r := resource.Score(sections, map[string]string{"ext1": "Yes", "ext2": "Unsure", "win1": "Some"})
	require.Equal(t, 33, r.Percentage)
	require.Equal(t, "Needs Improvement", r.Rating)
	require.Equal(t, []string{"ext2", "win1"}, r.Concerns)

	r = resource.Score(sections, map[string]string{"ext1": "Yes", "ext2": "Yes", "ext3": "No"})
	require.Equal(t, 67, r.Percentage)
	require.Equal(t, "Good", r.Rating)

	r = resource.Score(sections, map[string]string{"ext1": "Yes", "ext4": "Not Applicable"})
	require.Equal(t, "Fair", r.Rating)
}
