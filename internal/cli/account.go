package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/pandaschool/internal/models"
	"github.com/vytor/pandaschool/internal/session"
)

func newSignupCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a parent account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")

			return withEnv(cmd, open, func(env *Env) error {
				if err := env.Session.Signup(cmd.Context(), email, password, name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Now add your child with `panda child`.\n", name)
				return nil
			})
		},
	}
	cmd.Flags().String("email", "", "Parent email")
	cmd.Flags().String("password", "", "Password (at least 6 characters)")
	cmd.Flags().String("name", "", "Parent name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLoginCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an existing parent account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			return withEnv(cmd, open, func(env *Env) error {
				state, err := env.Session.Login(cmd.Context(), email, password)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				switch state {
				case session.Ready:
					fmt.Fprintf(out, "Welcome back! %s is ready to learn.\n", env.Session.Child().ChildName)
				case session.NeedsChildProfile:
					fmt.Fprintln(out, "Logged in. Add your child with `panda child`.")
				default:
					return errLoggedOut
				}
				return nil
			})
		},
	}
	cmd.Flags().String("email", "", "Parent email")
	cmd.Flags().String("password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newChildCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "child",
		Short: "Set the child profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			age, _ := cmd.Flags().GetInt("age")
			avatar, _ := cmd.Flags().GetInt("avatar")

			return withEnv(cmd, open, func(env *Env) error {
				child := models.ChildProfile{ChildName: name, ChildAge: age, Avatar: avatar}
				if err := env.Session.SaveChildProfile(cmd.Context(), child); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is all set. Start a lesson with `panda play`.\n", child.AvatarIcon(), name)
				return nil
			})
		},
	}
	cmd.Flags().String("name", "", "Child name")
	cmd.Flags().Int("age", models.MinChildAge, "Child age")
	cmd.Flags().Int("avatar", 0, fmt.Sprintf("Avatar index 0-%d", len(models.Avatars)-1))
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newStatusCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show who is logged in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(env *Env) error {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "state: %s\n", env.Session.State())
				if p := env.Session.Profile(); p != nil {
					fmt.Fprintf(out, "parent: %s\n", p.ParentName)
				}
				if c := env.Session.Child(); c != nil {
					fmt.Fprintf(out, "child: %s %s (%d)\n", c.AvatarIcon(), c.ChildName, c.ChildAge)
				}
				return nil
			})
		},
	}
}

func newLogoutCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored login",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(env *Env) error {
				if err := env.Session.Logout(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out. See you soon!")
				return nil
			})
		},
	}
}
