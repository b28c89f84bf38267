package client

import (
	"context"

	"github.com/vytor/pandaschool/internal/models"
	"github.com/vytor/pandaschool/internal/progress"
)

// ProgressStore is the remote progress store as seen by a learner session.
type ProgressStore interface {
	Signup(ctx context.Context, email, password, parentName string) (string, error)
	Login(ctx context.Context, email, password string) (*Credential, error)
	SaveChild(ctx context.Context, token string, child models.ChildProfile) error
	SaveProgress(ctx context.Context, token string, record models.ProgressRecord) error
	UserData(ctx context.Context, token string) (*models.UserData, error)
	Summary(ctx context.Context, token string) (*progress.Summary, error)
}

// Ensure Client implements the interface
var _ ProgressStore = (*Client)(nil)
