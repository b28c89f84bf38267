package progress

import (
	"slices"

	"github.com/vytor/pandaschool/internal/models"
)

// Tier weights in tenths of a percent; they sum to exactly 1000.
var tierWeights = models.PerDifficulty[int]{Easy: 333, Medium: 333, Hard: 334}

// OverallSubjectProgress is the 0..100 mastery of one subject. Each passed
// tier contributes its weight regardless of how far above the threshold it is.
func OverallSubjectProgress(scores models.DifficultyScoreMap) int {
	tenths := 0
	for _, d := range models.Difficulties {
		if Passed(scores.At(d)) {
			tenths += tierWeights.At(d)
		}
	}
	return (tenths + 5) / 10
}

// focusOrder is the tie-break order of the parent view.
var focusOrder = [...]models.Subject{models.Counting, models.Shapes, models.Numbers}

// AreasNeedingFocus returns every subject, weakest first.
func AreasNeedingFocus(p models.Progress) []models.Subject {
	out := slices.Clone(focusOrder[:])
	slices.SortStableFunc(out, func(a, b models.Subject) int {
		return OverallSubjectProgress(p.DifficultyProgress.At(a)) - OverallSubjectProgress(p.DifficultyProgress.At(b))
	})
	return out
}

// Achievement identifiers shown on the dashboard.
const (
	AchievementFirstLesson = "first_lesson"
	AchievementPerfect     = "perfect_score"
	AchievementStreak5     = "streak_5"
	AchievementFastLearner = "fast_learner"
	AchievementMaster      = "master"
)

// Achievements lists the badges p has earned, in display order.
func Achievements(p models.Progress) []string {
	out := []string{}
	if p.LessonsCompleted >= 1 {
		out = append(out, AchievementFirstLesson)
	}
	perfect, master := false, false
	for _, s := range models.Subjects {
		scores := p.DifficultyProgress.At(s)
		for _, d := range models.Difficulties {
			if scores.At(d) >= 100 {
				perfect = true
			}
		}
		if OverallSubjectProgress(scores) == 100 {
			master = true
		}
	}
	if perfect {
		out = append(out, AchievementPerfect)
	}
	if p.Streak >= 5 {
		out = append(out, AchievementStreak5)
	}
	if p.LessonsCompleted >= 10 {
		out = append(out, AchievementFastLearner)
	}
	if master {
		out = append(out, AchievementMaster)
	}
	return out
}

// TierView is one step of a subject's adventure path.
type TierView struct {
	Difficulty models.Difficulty `json:"difficulty"`
	BestScore  int               `json:"bestScore"`
	Unlocked   bool              `json:"unlocked"`
	Status     Status            `json:"status"`
}

// SubjectSummary is the dashboard card of one subject.
type SubjectSummary struct {
	Subject           models.Subject     `json:"subject"`
	Overall           int                `json:"overallProgress"`
	LessonProgress    int                `json:"lessonProgress"`
	CurrentDifficulty models.Difficulty  `json:"currentDifficulty"`
	Tiers             []TierView         `json:"tiers"`
	Answers           models.AnswerStats `json:"answers"`
}

// Summary aggregates everything the dashboards render.
type Summary struct {
	LessonsCompleted    int                       `json:"lessonsCompleted"`
	Streak              int                       `json:"streak"`
	AverageScore        int                       `json:"averageScore"`
	TotalCorrectAnswers int                       `json:"totalCorrectAnswers"`
	TotalWrongAnswers   int                       `json:"totalWrongAnswers"`
	ScreenTimeMinutes   int                       `json:"screenTimeMinutes"`
	Subjects            []SubjectSummary          `json:"subjects"`
	Focus               []models.Subject          `json:"areasNeedingFocus"`
	Achievements        []string                  `json:"achievements"`
	ScreenTime          []models.ScreenTimeBucket `json:"screenTime"`
	RecentActivities    []models.ActivityEntry    `json:"recentActivities"`
}

// Summarize derives the dashboard view of p.
func Summarize(p models.Progress) Summary {
	s := Summary{
		LessonsCompleted:    p.LessonsCompleted,
		Streak:              p.Streak,
		AverageScore:        p.AverageScore,
		TotalCorrectAnswers: p.TotalCorrectAnswers,
		TotalWrongAnswers:   p.TotalWrongAnswers,
		Focus:               AreasNeedingFocus(p),
		Achievements:        Achievements(p),
		ScreenTime:          slices.Clone(p.ScreenTime),
		RecentActivities:    slices.Clone(p.Activities),
	}
	for _, b := range p.ScreenTime {
		s.ScreenTimeMinutes += b.Time
	}
	for _, subj := range models.Subjects {
		scores := p.DifficultyProgress.At(subj)
		card := SubjectSummary{
			Subject:           subj,
			Overall:           OverallSubjectProgress(scores),
			LessonProgress:    p.LessonProgress.At(subj),
			CurrentDifficulty: p.CurrentDifficulty.At(subj),
			Answers:           p.AnswerStats.At(subj),
		}
		for _, d := range models.Difficulties {
			card.Tiers = append(card.Tiers, TierView{
				Difficulty: d,
				BestScore:  scores.At(d),
				Unlocked:   TierUnlocked(scores, d),
				Status:     TierStatus(scores.At(d)),
			})
		}
		s.Subjects = append(s.Subjects, card)
	}
	if s.ScreenTime == nil {
		s.ScreenTime = []models.ScreenTimeBucket{}
	}
	if s.RecentActivities == nil {
		s.RecentActivities = []models.ActivityEntry{}
	}
	return s
}
