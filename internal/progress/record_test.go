package progress_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pandaschool/internal/errors"
	"github.com/vytor/pandaschool/internal/models"
	"github.com/vytor/pandaschool/internal/progress"
)

func TestRecordRoundTrip(t *testing.T) {
	p := models.NewProgress()
	results := []models.LessonResult{
		{Subject: models.Numbers, ScorePercent: 80, CorrectAnswers: 8, WrongAnswers: 2, Difficulty: models.Easy},
		{Subject: models.Shapes, ScorePercent: 55, CorrectAnswers: 5, WrongAnswers: 4, Difficulty: models.Medium},
		{Subject: models.Counting, ScorePercent: 100, CorrectAnswers: 10, Difficulty: models.Hard},
	}
	for i, r := range results {
		var err error
		p, err = progress.Update(p, r, wednesday.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}
	record := models.ProgressRecord{Progress: p}

	b, err := progress.EncodeRecord(record)
	require.NoError(t, err)
	decoded, err := progress.DecodeRecord(b)
	require.NoError(t, err)

	assert.Equal(t, record, decoded)
	assert.True(t, decoded.Activities[0].Timestamp.Equal(p.Activities[0].Timestamp))
}

func TestRecordWireFormat(t *testing.T) {
	p, err := progress.Update(models.NewProgress(), models.LessonResult{Subject: models.Numbers, ScorePercent: 80, Difficulty: models.Easy}, wednesday)
	require.NoError(t, err)

	b, err := progress.EncodeRecord(models.ProgressRecord{Progress: p})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.EqualValues(t, 1, raw["lessonsCompleted"])
	assert.Equal(t, map[string]any{"shapes": "easy", "numbers": "medium", "counting": "easy"}, raw["currentDifficulty"])
	assert.NotContains(t, raw, "updatedAt")

	activities := raw["activities"].([]any)
	require.Len(t, activities, 1)
	entry := activities[0].(map[string]any)
	assert.Equal(t, "numbers", entry["lessonId"])
	assert.Equal(t, "Easy", entry["difficulty"])
	assert.Equal(t, "2024-03-06T10:30:00.123Z", entry["timestamp"])
}

func TestDecodeRecordNormalizes(t *testing.T) {
	payload := `{
		"lessonsCompleted": 12,
		"currentDifficulty": {"shapes": "hard", "numbers": "easy", "counting": "medium"},
		"screenTime": [{"day": "Mon", "time": 5}, {"day": "Fri", "time": 8}, {"day": "Someday", "time": 3}],
		"activities": [
			{"lessonId": "shapes", "score": 1}, {"lessonId": "shapes", "score": 2},
			{"lessonId": "shapes", "score": 3}, {"lessonId": "shapes", "score": 4},
			{"lessonId": "shapes", "score": 5}, {"lessonId": "shapes", "score": 6},
			{"lessonId": "shapes", "score": 7}, {"lessonId": "shapes", "score": 8},
			{"lessonId": "shapes", "score": 9}, {"lessonId": "shapes", "score": 10},
			{"lessonId": "shapes", "score": 11}, {"lessonId": "shapes", "score": 12}
		],
		"updatedAt": "2024-03-06T10:30:00Z"
	}`

	r, err := progress.DecodeRecord([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, 12, r.LessonsCompleted)
	assert.Equal(t, models.Hard, r.CurrentDifficulty.Shapes)
	require.Len(t, r.ScreenTime, 7)
	for i, day := range models.WeekDays {
		assert.Equal(t, day, r.ScreenTime[i].Day)
	}
	assert.Equal(t, 5, r.ScreenTime[1].Time)
	assert.Equal(t, 8, r.ScreenTime[5].Time)
	assert.Len(t, r.Activities, models.MaxActivities)
	assert.Equal(t, 1, r.Activities[0].Score)
	require.NotNil(t, r.UpdatedAt)
}

func TestDecodeRecordEmptyObject(t *testing.T) {
	r, err := progress.DecodeRecord([]byte(`{}`))
	require.NoError(t, err)

	assert.NotNil(t, r.Activities)
	assert.Len(t, r.ScreenTime, 7)
	assert.Equal(t, models.Easy, r.CurrentDifficulty.Numbers)
}

func TestDecodeRecordRejectsUnknownSubject(t *testing.T) {
	_, err := progress.DecodeRecord([]byte(`{"activities":[{"lessonId":"geometry"}]}`))
	assert.Error(t, err)

	_, err = progress.DecodeRecord([]byte(`not json`))
	assert.Error(t, err)
}

func TestValidateModel(t *testing.T) {
	p, err := progress.Update(models.NewProgress(), models.LessonResult{Subject: models.Shapes, ScorePercent: 90}, wednesday)
	require.NoError(t, err)
	assert.NoError(t, progress.ValidateModel(p))

	bad := []func(*models.Progress){
		func(p *models.Progress) { p.LessonsCompleted = -1 },
		func(p *models.Progress) { p.AverageScore = 101 },
		func(p *models.Progress) { p.AnswerStats.Counting.Wrong = -2 },
		func(p *models.Progress) { p.LessonProgress.Numbers = 110 },
		func(p *models.Progress) { p.DifficultyProgress.Shapes.Hard = 200 },
		func(p *models.Progress) { p.Activities[0].Score = -5 },
		func(p *models.Progress) { p.ScreenTime[2].Time = -1 },
	}
	for i, mutate := range bad {
		c := p.Clone()
		mutate(&c)
		err := progress.ValidateModel(c)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput), "case %d", i)
	}
}
