package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pandaschool/internal/models"
)

func TestSubjectText(t *testing.T) {
	for _, s := range models.Subjects {
		b, err := s.MarshalText()
		require.NoError(t, err)
		parsed, err := models.ParseSubject(string(b))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := models.Subject(3).MarshalText()
	assert.Error(t, err)
	_, err = models.ParseSubject("Shapes")
	assert.Error(t, err, "text form is lower case")
	assert.Equal(t, "Counting", models.Counting.DisplayName())
}

func TestDifficultyOrder(t *testing.T) {
	assert.Less(t, models.Easy, models.Medium)
	assert.Less(t, models.Medium, models.Hard)
	assert.Equal(t, models.Easy, models.Difficulty(0))
	assert.Equal(t, "Hard", models.Hard.Label())

	d, err := models.ParseDifficulty("medium")
	require.NoError(t, err)
	assert.Equal(t, models.Medium, d)
}

func TestPerSubjectAccess(t *testing.T) {
	var p models.PerSubject[int]
	for i, s := range models.Subjects {
		p.Set(s, i+1)
	}
	assert.Equal(t, models.PerSubject[int]{Shapes: 1, Numbers: 2, Counting: 3}, p)
	assert.Equal(t, 2, p.At(models.Numbers))
	assert.Zero(t, p.At(models.Subject(42)))

	p.Set(models.Subject(42), 9)
	assert.Equal(t, models.PerSubject[int]{Shapes: 1, Numbers: 2, Counting: 3}, p)
}

func TestPerSubjectJSON(t *testing.T) {
	p := models.PerSubject[models.Difficulty]{Shapes: models.Hard, Numbers: models.Easy, Counting: models.Medium}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"shapes":"hard","numbers":"easy","counting":"medium"}`, string(b))
}

func TestNewProgress(t *testing.T) {
	p := models.NewProgress()
	assert.Zero(t, p.LessonsCompleted)
	assert.NotNil(t, p.Activities)
	require.Len(t, p.ScreenTime, 7)
	assert.Equal(t, "Sun", p.ScreenTime[0].Day)
	assert.Equal(t, "Sat", p.ScreenTime[6].Day)
	for _, s := range models.Subjects {
		assert.Equal(t, models.Easy, p.CurrentDifficulty.At(s))
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := models.NewProgress()
	p.Activities = append(p.Activities, models.ActivityEntry{Score: 10})

	c := p.Clone()
	c.Activities[0].Score = 99
	c.ScreenTime[0].Time = 5

	assert.Equal(t, 10, p.Activities[0].Score)
	assert.Zero(t, p.ScreenTime[0].Time)
}

func TestScorePercent(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{8, 10, 80},
		{0, 5, 0},
		{5, 5, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{3, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, models.ScorePercent(tt.correct, tt.total), "%d/%d", tt.correct, tt.total)
	}
}

func TestAvatarIcon(t *testing.T) {
	assert.Equal(t, "🐼", models.ChildProfile{Avatar: 1}.AvatarIcon())
	assert.Equal(t, "", models.ChildProfile{Avatar: 6}.AvatarIcon())
}
