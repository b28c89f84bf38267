// Package progress holds the lesson-result engine, the difficulty gate and the
// dashboard statistics derived from a learner's progress.
package progress

import (
	"fmt"
	"math"
	"time"

	"github.com/vytor/pandaschool/internal/errors"
	"github.com/vytor/pandaschool/internal/models"
)

const (
	lessonProgressStep = 10
	lessonProgressMax  = 100
)

// Validate rejects a result outside its domain. Errors match errors.ErrInvalidInput.
func Validate(r models.LessonResult) error {
	switch {
	case !r.Subject.Valid():
		return errors.NewInvalidInputError("subject", fmt.Sprintf("unknown subject %d", int(r.Subject)))
	case !r.Difficulty.Valid():
		return errors.NewInvalidInputError("difficultyAttempted", fmt.Sprintf("unknown difficulty %d", int(r.Difficulty)))
	case r.ScorePercent < 0 || r.ScorePercent > 100:
		return errors.NewInvalidInputError("scorePercent", fmt.Sprintf("%d is outside [0,100]", r.ScorePercent))
	case r.CorrectAnswers < 0:
		return errors.NewInvalidInputError("correctAnswers", "cannot be negative")
	case r.WrongAnswers < 0:
		return errors.NewInvalidInputError("wrongAnswers", "cannot be negative")
	}
	return nil
}

// MinutesFor is the screen time credited for one lesson at d.
func MinutesFor(d models.Difficulty) int {
	switch d {
	case models.Medium:
		return 5
	case models.Hard:
		return 8
	default:
		return 3
	}
}

// Update folds one lesson result into p and returns the new model. p is never
// modified. On invalid input the returned model is p's copy and err is set.
func Update(p models.Progress, r models.LessonResult, now time.Time) (models.Progress, error) {
	next := p.Clone()
	if err := Validate(r); err != nil {
		return next, err
	}

	// The mean is rebuilt from the rounded average, not a running sum.
	next.LessonsCompleted = p.LessonsCompleted + 1
	total := float64(p.AverageScore*p.LessonsCompleted + r.ScorePercent)
	next.AverageScore = roundHalfUp(total / float64(next.LessonsCompleted))

	next.LessonProgress.Set(r.Subject, min(p.LessonProgress.At(r.Subject)+lessonProgressStep, lessonProgressMax))

	entry := models.ActivityEntry{
		LessonID:       r.Subject,
		LessonName:     r.Subject.DisplayName(),
		Score:          r.ScorePercent,
		CorrectAnswers: r.CorrectAnswers,
		WrongAnswers:   r.WrongAnswers,
		Difficulty:     r.Difficulty.Label(),
		Timestamp:      now.UTC().Truncate(time.Millisecond),
	}
	keep := min(len(p.Activities), models.MaxActivities-1)
	next.Activities = make([]models.ActivityEntry, 0, keep+1)
	next.Activities = append(next.Activities, entry)
	next.Activities = append(next.Activities, p.Activities[:keep]...)

	today := models.WeekDays[now.Weekday()]
	for i := range next.ScreenTime {
		if next.ScreenTime[i].Day == today {
			next.ScreenTime[i].Time += MinutesFor(r.Difficulty)
		}
	}

	next.Streak = p.Streak + 1

	stats := p.AnswerStats.At(r.Subject)
	stats.Correct += r.CorrectAnswers
	stats.Wrong += r.WrongAnswers
	next.AnswerStats.Set(r.Subject, stats)
	next.TotalCorrectAnswers = p.TotalCorrectAnswers + r.CorrectAnswers
	next.TotalWrongAnswers = p.TotalWrongAnswers + r.WrongAnswers

	scores := p.DifficultyProgress.At(r.Subject)
	scores.Set(r.Difficulty, max(scores.At(r.Difficulty), r.ScorePercent))
	next.DifficultyProgress.Set(r.Subject, scores)

	next.CurrentDifficulty.Set(r.Subject, NextDifficulty(p.CurrentDifficulty.At(r.Subject), r.Difficulty, r.ScorePercent))

	return next, nil
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
