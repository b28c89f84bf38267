package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/pandaschool/internal/models"
	"github.com/vytor/pandaschool/internal/progress"
)

func newPlayCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Record a finished lesson",
		Long:  "Record a finished lesson. The score is the share of correct answers. Without --difficulty the lesson is played at the subject's current difficulty.",
		RunE: func(cmd *cobra.Command, args []string) error {
			subjectFlag, _ := cmd.Flags().GetString("subject")
			difficultyFlag, _ := cmd.Flags().GetString("difficulty")
			correct, _ := cmd.Flags().GetInt("correct")
			wrong, _ := cmd.Flags().GetInt("wrong")

			subject, err := models.ParseSubject(strings.ToLower(subjectFlag))
			if err != nil {
				return err
			}

			return withEnv(cmd, open, func(env *Env) error {
				if err := requireReady(env.Session); err != nil {
					return err
				}
				current := env.Session.Progress()

				level := current.CurrentDifficulty.At(subject)
				if difficultyFlag != "" {
					if level, err = models.ParseDifficulty(strings.ToLower(difficultyFlag)); err != nil {
						return err
					}
				}
				if !progress.TierUnlocked(current.DifficultyProgress.At(subject), level) {
					return fmt.Errorf("%s %s is still locked, pass the previous level first", subject.DisplayName(), level)
				}

				result := models.LessonResult{
					Subject:        subject,
					ScorePercent:   models.ScorePercent(correct, correct+wrong),
					CorrectAnswers: correct,
					WrongAnswers:   wrong,
					Difficulty:     level,
				}
				next, err := env.Session.SubmitLesson(result)
				if err != nil {
					return err
				}
				renderLesson(cmd.OutOrStdout(), result, current, next)
				return nil
			})
		},
	}
	cmd.Flags().String("subject", "", "Subject: shapes, numbers or counting")
	cmd.Flags().String("difficulty", "", "Difficulty: easy, medium or hard")
	cmd.Flags().Int("correct", 0, "Correct answers")
	cmd.Flags().Int("wrong", 0, "Wrong answers")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
