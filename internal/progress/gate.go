package progress

import "github.com/vytor/pandaschool/internal/models"

// PassThreshold is the score a tier must exceed to count as passed.
const PassThreshold = 50

// Passed reports whether score clears the mastery threshold.
func Passed(score int) bool {
	return score > PassThreshold
}

// NextDifficulty picks the default tier after a lesson. Only the tier just
// attempted matters: passing Easy offers Medium, passing Medium offers Hard,
// anything else keeps current. Replaying Easy from Hard and passing therefore
// moves current back to Medium.
func NextDifficulty(current, attempted models.Difficulty, score int) models.Difficulty {
	if !Passed(score) {
		return current
	}
	switch attempted {
	case models.Easy:
		return models.Medium
	case models.Medium:
		return models.Hard
	}
	return current
}

// TierUnlocked reports whether level is selectable given the best scores.
// It reads best-ever scores, so an unlocked tier never locks again.
func TierUnlocked(scores models.DifficultyScoreMap, level models.Difficulty) bool {
	switch level {
	case models.Easy:
		return true
	case models.Medium:
		return Passed(scores.Easy)
	case models.Hard:
		return Passed(scores.Medium)
	}
	return false
}

// Status is the adventure path state of one tier.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

// TierStatus classifies a best score.
func TierStatus(score int) Status {
	switch {
	case Passed(score):
		return StatusComplete
	case score > 0:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}
