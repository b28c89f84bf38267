package models

import (
	"math"
	"time"
)

// MaxActivities caps the recent activity log.
const MaxActivities = 10

// WeekDays is the fixed order of screen time buckets.
var WeekDays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// AnswerStats are lifetime answer counters for one subject.
type AnswerStats struct {
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

// ActivityEntry records one completed lesson attempt.
type ActivityEntry struct {
	LessonID       Subject   `json:"lessonId"`
	LessonName     string    `json:"lessonName"`
	Score          int       `json:"score"`
	CorrectAnswers int       `json:"correctAnswers"`
	WrongAnswers   int       `json:"wrongAnswers"`
	Difficulty     string    `json:"difficulty"`
	Timestamp      time.Time `json:"timestamp"`
}

// ScreenTimeBucket accumulates minutes for one weekday, across all weeks.
type ScreenTimeBucket struct {
	Day  string `json:"day"`
	Time int    `json:"time"`
}

// Progress is the cumulative learner state for one child profile.
type Progress struct {
	LessonsCompleted    int                            `json:"lessonsCompleted"`
	Streak              int                            `json:"streak"`
	AverageScore        int                            `json:"averageScore"`
	TotalCorrectAnswers int                            `json:"totalCorrectAnswers"`
	TotalWrongAnswers   int                            `json:"totalWrongAnswers"`
	AnswerStats         PerSubject[AnswerStats]        `json:"answerStats"`
	LessonProgress      PerSubject[int]                `json:"lessonProgress"`
	DifficultyProgress  PerSubject[DifficultyScoreMap] `json:"difficultyProgress"`
	CurrentDifficulty   PerSubject[Difficulty]         `json:"currentDifficulty"`
	Activities          []ActivityEntry                `json:"activities"`
	ScreenTime          []ScreenTimeBucket             `json:"screenTime"`
}

// NewProgress returns the zero model for a fresh child profile.
func NewProgress() Progress {
	screen := make([]ScreenTimeBucket, len(WeekDays))
	for i, day := range WeekDays {
		screen[i] = ScreenTimeBucket{Day: day}
	}
	return Progress{
		CurrentDifficulty: PerSubject[Difficulty]{Shapes: Easy, Numbers: Easy, Counting: Easy},
		Activities:        []ActivityEntry{},
		ScreenTime:        screen,
	}
}

// Clone returns a deep copy; the slices are not shared with p.
func (p Progress) Clone() Progress {
	c := p
	c.Activities = append(make([]ActivityEntry, 0, len(p.Activities)), p.Activities...)
	c.ScreenTime = append(make([]ScreenTimeBucket, 0, len(p.ScreenTime)), p.ScreenTime...)
	return c
}

// ProgressRecord is the persisted form of Progress. UpdatedAt is stamped by the store.
type ProgressRecord struct {
	Progress
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// LessonResult is what a completed quiz hands to the engine.
type LessonResult struct {
	Subject        Subject    `json:"subject"`
	ScorePercent   int        `json:"scorePercent"`
	CorrectAnswers int        `json:"correctAnswers"`
	WrongAnswers   int        `json:"wrongAnswers"`
	Difficulty     Difficulty `json:"difficultyAttempted"`
}

// ScorePercent is the lesson score: correct answers over questions asked,
// rounded to a whole percent. No questions scores 0.
func ScorePercent(correct, total int) int {
	if total <= 0 || correct <= 0 {
		return 0
	}
	if correct >= total {
		return 100
	}
	return int(math.Floor(float64(correct)/float64(total)*100 + 0.5))
}
