package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/pandaschool/internal/models"
	"github.com/vytor/pandaschool/internal/progress"
)

func newStatsCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show learning statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			remote, _ := cmd.Flags().GetBool("remote")

			return withEnv(cmd, open, func(env *Env) error {
				if err := requireReady(env.Session); err != nil {
					return err
				}
				summary := progress.Summarize(env.Session.Progress())
				if remote {
					s, err := env.Session.RemoteSummary(cmd.Context())
					if err != nil {
						return err
					}
					summary = *s
				}
				renderSummary(cmd.OutOrStdout(), env.Session.Child(), summary)
				return nil
			})
		},
	}
	cmd.Flags().Bool("remote", false, "Use the summary computed by the progress store")
	return cmd
}

var statusMarks = map[progress.Status]string{
	progress.StatusNotStarted: "○",
	progress.StatusInProgress: "◐",
	progress.StatusComplete:   "●",
}

func renderLesson(w io.Writer, r models.LessonResult, before, after models.Progress) {
	fmt.Fprintf(w, "%s (%s): %d correct, %d wrong, score %d%%\n",
		r.Subject.DisplayName(), r.Difficulty, r.CorrectAnswers, r.WrongAnswers, r.ScorePercent)
	if progress.Passed(r.ScorePercent) {
		fmt.Fprintln(w, "Great job, lesson passed!")
	} else {
		fmt.Fprintln(w, "Keep practicing, you need more than 50% to pass.")
	}

	prev, next := before.CurrentDifficulty.At(r.Subject), after.CurrentDifficulty.At(r.Subject)
	if next != prev {
		fmt.Fprintf(w, "Difficulty is now %s.\n", next)
	}
	for _, d := range models.Difficulties {
		wasOpen := progress.TierUnlocked(before.DifficultyProgress.At(r.Subject), d)
		if !wasOpen && progress.TierUnlocked(after.DifficultyProgress.At(r.Subject), d) {
			fmt.Fprintf(w, "Unlocked %s %s!\n", r.Subject.DisplayName(), d)
		}
	}
}

func renderSummary(w io.Writer, child *models.ChildProfile, s progress.Summary) {
	if child != nil {
		fmt.Fprintf(w, "%s %s\n", child.AvatarIcon(), child.ChildName)
	}
	fmt.Fprintf(w, "Lessons completed: %d   Streak: %d   Average score: %d%%\n",
		s.LessonsCompleted, s.Streak, s.AverageScore)
	fmt.Fprintf(w, "Answers: %d correct, %d wrong   Screen time: %d min\n\n",
		s.TotalCorrectAnswers, s.TotalWrongAnswers, s.ScreenTimeMinutes)

	for _, sub := range s.Subjects {
		tiers := make([]string, 0, len(sub.Tiers))
		for _, t := range sub.Tiers {
			mark := "🔒"
			if t.Unlocked {
				mark = statusMarks[t.Status]
			}
			tiers = append(tiers, fmt.Sprintf("%s %s %d%%", mark, t.Difficulty, t.BestScore))
		}
		fmt.Fprintf(w, "%-9s %3d%%  now %-6s  %s\n",
			sub.Subject.DisplayName(), sub.Overall, sub.CurrentDifficulty, strings.Join(tiers, "  "))
	}

	focus := make([]string, len(s.Focus))
	for i, sub := range s.Focus {
		focus[i] = sub.DisplayName()
	}
	fmt.Fprintf(w, "\nNeeds focus: %s\n", strings.Join(focus, ", "))

	if len(s.Achievements) == 0 {
		fmt.Fprintln(w, "Achievements: none yet")
	} else {
		fmt.Fprintf(w, "Achievements: %s\n", strings.Join(s.Achievements, ", "))
	}

	fmt.Fprint(w, "Screen time:")
	for _, b := range s.ScreenTime {
		fmt.Fprintf(w, " %s %d", b.Day, b.Time)
	}
	fmt.Fprintln(w)
}
