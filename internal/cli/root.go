// Package cli implements the panda learner command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/pandaschool/internal/client"
	"github.com/vytor/pandaschool/internal/config"
	"github.com/vytor/pandaschool/internal/session"
	"github.com/vytor/pandaschool/internal/worker"
)

// Env is the session a single command runs against.
type Env struct {
	Session *session.Coordinator
	pool    *worker.Pool
}

// Close flushes any pending save and stops the save worker.
func (e *Env) Close(ctx context.Context) error {
	err := e.Session.Close(ctx)
	e.pool.Stop()
	return err
}

// Opener builds and loads the session for a command.
type Opener func(ctx context.Context) (*Env, error)

// NewOpener wires the store client, the save worker and the coordinator.
func NewOpener(cfg config.ClientConfig, creds session.CredentialStore) Opener {
	return func(ctx context.Context) (*Env, error) {
		store := client.New(cfg.APIURL, cfg.RequestTimeout)

		// One worker so saves never overlap.
		pool := worker.NewPool(1, 16)
		pool.Start(context.Background())

		coord := session.NewCoordinator(store, creds, pool,
			session.WithSaveDelay(cfg.SaveDebounce),
			session.WithSaveTimeout(cfg.RequestTimeout),
		)
		coord.Load(ctx)
		return &Env{Session: coord, pool: pool}, nil
	}
}

var (
	errLoggedOut    = errors.New("not logged in, run `panda login` or `panda signup` first")
	errNeedsChild   = errors.New("no child profile yet, run `panda child` first")
	errUnknownState = errors.New("session is not ready")
)

// NewRootCommand builds the panda command tree.
func NewRootCommand(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "panda",
		Short:         "Panda School learning progress",
		Long:          "Panda School tracks a child's lessons in shapes, numbers and counting and keeps their progress in sync with the progress store.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSignupCmd(open),
		newLoginCmd(open),
		newChildCmd(open),
		newPlayCmd(open),
		newStatsCmd(open),
		newStatusCmd(open),
		newLogoutCmd(open),
	)
	return root
}

// withEnv opens the session, runs fn and always closes the session.
func withEnv(cmd *cobra.Command, open Opener, fn func(env *Env) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := open(ctx)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer func() {
		if cerr := env.Close(ctx); cerr != nil && err == nil {
			err = fmt.Errorf("save progress: %w", cerr)
		}
	}()
	return fn(env)
}

func requireReady(s *session.Coordinator) error {
	switch s.State() {
	case session.Ready:
		return nil
	case session.LoggedOut:
		return errLoggedOut
	case session.NeedsChildProfile:
		return errNeedsChild
	}
	return errUnknownState
}
