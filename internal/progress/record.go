package progress

import (
	"encoding/json"
	"fmt"

	"github.com/vytor/pandaschool/internal/errors"
	"github.com/vytor/pandaschool/internal/models"
)

// EncodeRecord serializes a record in the persisted JSON form.
func EncodeRecord(r models.ProgressRecord) ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode progress record: %w", err)
	}
	return b, nil
}

// DecodeRecord parses a persisted record and normalizes it.
func DecodeRecord(b []byte) (models.ProgressRecord, error) {
	var r models.ProgressRecord
	if err := json.Unmarshal(b, &r); err != nil {
		return models.ProgressRecord{}, fmt.Errorf("decode progress record: %w", err)
	}
	r.Progress = Normalize(r.Progress)
	return r, nil
}

// Normalize repairs the shape of a model read from outside: the seven
// screen-time buckets in Sun..Sat order, at most MaxActivities entries and
// non-nil slices. Unknown screen-time days are dropped.
func Normalize(p models.Progress) models.Progress {
	out := p.Clone()

	minutes := make(map[string]int, len(p.ScreenTime))
	for _, b := range p.ScreenTime {
		minutes[b.Day] += b.Time
	}
	out.ScreenTime = make([]models.ScreenTimeBucket, len(models.WeekDays))
	for i, day := range models.WeekDays {
		out.ScreenTime[i] = models.ScreenTimeBucket{Day: day, Time: minutes[day]}
	}

	if len(out.Activities) > models.MaxActivities {
		out.Activities = out.Activities[:models.MaxActivities]
	}
	return out
}

// ValidateModel rejects a model whose counters or scores fall outside their
// domain. Errors match errors.ErrInvalidInput.
func ValidateModel(p models.Progress) error {
	if p.LessonsCompleted < 0 || p.Streak < 0 || p.TotalCorrectAnswers < 0 || p.TotalWrongAnswers < 0 {
		return errors.NewInvalidInputError("progress", "counters cannot be negative")
	}
	if !isPercent(p.AverageScore) {
		return errors.NewInvalidInputError("averageScore", "must be within [0,100]")
	}
	for _, s := range models.Subjects {
		stats := p.AnswerStats.At(s)
		if stats.Correct < 0 || stats.Wrong < 0 {
			return errors.NewInvalidInputError("answerStats."+s.String(), "counters cannot be negative")
		}
		if !isPercent(p.LessonProgress.At(s)) {
			return errors.NewInvalidInputError("lessonProgress."+s.String(), "must be within [0,100]")
		}
		scores := p.DifficultyProgress.At(s)
		for _, d := range models.Difficulties {
			if !isPercent(scores.At(d)) {
				return errors.NewInvalidInputError("difficultyProgress."+s.String()+"."+d.String(), "must be within [0,100]")
			}
		}
	}
	for _, a := range p.Activities {
		if !isPercent(a.Score) || a.CorrectAnswers < 0 || a.WrongAnswers < 0 {
			return errors.NewInvalidInputError("activities", "entry outside its domain")
		}
	}
	for _, b := range p.ScreenTime {
		if b.Time < 0 {
			return errors.NewInvalidInputError("screenTime."+b.Day, "cannot be negative")
		}
	}
	return nil
}

func isPercent(v int) bool {
	return v >= 0 && v <= 100
}
