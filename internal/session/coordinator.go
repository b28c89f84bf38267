// Package session owns the in-memory progress of a signed-in learner and
// keeps it in sync with the progress store.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vytor/pandaschool/internal/client"
	"github.com/vytor/pandaschool/internal/errors"
	"github.com/vytor/pandaschool/internal/logger"
	"github.com/vytor/pandaschool/internal/models"
	"github.com/vytor/pandaschool/internal/progress"
	"github.com/vytor/pandaschool/internal/worker"
)

type State int

const (
	LoggedOut State = iota
	NeedsChildProfile
	Ready
)

func (s State) String() string {
	switch s {
	case NeedsChildProfile:
		return "needs_child_profile"
	case Ready:
		return "ready"
	default:
		return "logged_out"
	}
}

// Submitter queues background jobs. *worker.Pool satisfies it.
type Submitter interface {
	Submit(job worker.Job) error
}

type Coordinator struct {
	mu      sync.Mutex
	store   client.ProgressStore
	creds   CredentialStore
	jobs    Submitter
	saves   *Debouncer
	now     func() time.Time
	timeout time.Duration
	log     *logger.Logger

	state   State
	cred    *client.Credential
	profile *models.ParentProfile
	child   *models.ChildProfile
	model   models.Progress
}

type Option func(*options)

type options struct {
	delay   time.Duration
	after   AfterFunc
	now     func() time.Time
	timeout time.Duration
}

// WithSaveDelay sets the quiet period before a change is persisted.
func WithSaveDelay(d time.Duration) Option {
	return func(o *options) { o.delay = d }
}

// WithScheduler replaces time.AfterFunc for the save timer.
func WithScheduler(after AfterFunc) Option {
	return func(o *options) { o.after = after }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithSaveTimeout bounds a single background save.
func WithSaveTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func NewCoordinator(store client.ProgressStore, creds CredentialStore, jobs Submitter, opts ...Option) *Coordinator {
	o := options{delay: 2 * time.Second, now: time.Now, timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	c := &Coordinator{
		store:   store,
		creds:   creds,
		jobs:    jobs,
		now:     o.now,
		timeout: o.timeout,
		log:     logger.Default().WithPrefix("session"),
		model:   models.NewProgress(),
	}
	c.saves = NewDebouncer(o.delay, o.after, c.enqueueSave)
	return c
}

// Load restores the session from the stored credential. It never fails: any
// problem leaves the coordinator LoggedOut.
func (c *Coordinator) Load(ctx context.Context) State {
	c.saves.Cancel()

	cred, err := c.creds.Load()
	if err != nil {
		c.log.Warn("failed to read stored credential: %v", err)
	}
	if err != nil || cred == nil {
		c.reset()
		return LoggedOut
	}

	data, err := c.store.UserData(ctx, cred.AccessToken)
	if err != nil {
		c.log.Warn("failed to load user data: %v", err)
		c.dropSession()
		return LoggedOut
	}
	if data.Profile == nil {
		c.log.Warn("stored credential has no parent profile")
		c.dropSession()
		return LoggedOut
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cred = cred
	c.profile = data.Profile
	c.child = data.Child
	c.model = models.NewProgress()
	if data.Progress != nil {
		c.model = data.Progress.Progress.Clone()
	}
	c.state = Ready
	if c.child == nil {
		c.state = NeedsChildProfile
	}
	c.log.Info("session loaded for user %s (%s)", cred.UserID, c.state)
	return c.state
}

// Signup registers a parent account and signs it in with a fresh model.
func (c *Coordinator) Signup(ctx context.Context, email, password, parentName string) error {
	if _, err := c.store.Signup(ctx, email, password, parentName); err != nil {
		return err
	}
	cred, err := c.store.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := c.creds.Save(*cred); err != nil {
		return err
	}

	c.saves.Cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cred = cred
	c.profile = &models.ParentProfile{Email: strings.ToLower(strings.TrimSpace(email)), ParentName: parentName}
	c.child = nil
	c.model = models.NewProgress()
	c.state = NeedsChildProfile
	return nil
}

// Login stores a new credential and loads the account behind it.
func (c *Coordinator) Login(ctx context.Context, email, password string) (State, error) {
	cred, err := c.store.Login(ctx, email, password)
	if err != nil {
		return LoggedOut, err
	}
	if err := c.creds.Save(*cred); err != nil {
		return LoggedOut, err
	}
	return c.Load(ctx), nil
}

// SaveChildProfile writes the child profile and completes the session.
func (c *Coordinator) SaveChildProfile(ctx context.Context, child models.ChildProfile) error {
	c.mu.Lock()
	cred := c.cred
	c.mu.Unlock()
	if cred == nil {
		return errors.NewUnauthorizedError("log in first")
	}

	if err := c.store.SaveChild(ctx, cred.AccessToken, child); err != nil {
		if errors.Is(err, errors.ErrSessionInvalid) {
			c.dropSession()
		}
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.child = &child
	c.state = Ready
	return nil
}

// SubmitLesson applies a finished lesson to the model and schedules a save.
// Invalid results leave both the model and the schedule untouched.
func (c *Coordinator) SubmitLesson(result models.LessonResult) (models.Progress, error) {
	c.mu.Lock()
	next, err := progress.Update(c.model, result, c.now())
	if err != nil {
		c.mu.Unlock()
		return models.Progress{}, err
	}
	c.model = next
	signedIn := c.cred != nil
	c.mu.Unlock()

	if signedIn {
		c.saves.Trigger()
	}
	return next.Clone(), nil
}

// Logout drops any pending save, clears the credential and resets the model.
func (c *Coordinator) Logout() error {
	c.saves.Cancel()
	c.reset()
	return c.creds.Clear()
}

// Flush writes the current model now if a save is pending.
func (c *Coordinator) Flush(ctx context.Context) error {
	if !c.saves.Cancel() {
		return nil
	}
	return c.save(ctx)
}

// Close flushes a pending save. The caller stops the pool afterwards.
func (c *Coordinator) Close(ctx context.Context) error {
	return c.Flush(ctx)
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Progress returns a copy of the current model.
func (c *Coordinator) Progress() models.Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model.Clone()
}

func (c *Coordinator) Profile() *models.ParentProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

func (c *Coordinator) Child() *models.ChildProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.child
}

// RemoteSummary asks the store for the dashboard view of the saved progress.
func (c *Coordinator) RemoteSummary(ctx context.Context) (*progress.Summary, error) {
	c.mu.Lock()
	cred := c.cred
	c.mu.Unlock()
	if cred == nil {
		return nil, errors.NewUnauthorizedError("log in first")
	}
	return c.store.Summary(ctx, cred.AccessToken)
}

// SavePending reports whether a debounced save is scheduled.
func (c *Coordinator) SavePending() bool {
	return c.saves.Pending()
}

func (c *Coordinator) enqueueSave() {
	if err := c.jobs.Submit(saveJob{c: c}); err != nil {
		c.log.Warn("failed to queue progress save: %v", err)
	}
}

// save writes the model as it is now, not as it was when the save was scheduled.
func (c *Coordinator) save(ctx context.Context) error {
	c.mu.Lock()
	cred := c.cred
	snapshot := c.model.Clone()
	c.mu.Unlock()
	if cred == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	log := logger.FromContext(ctx).WithField("user_id", cred.UserID)
	if err := c.store.SaveProgress(ctx, cred.AccessToken, models.ProgressRecord{Progress: snapshot}); err != nil {
		log.Warn("failed to save progress: %v", err)
		if errors.Is(err, errors.ErrSessionInvalid) {
			c.dropRejected(cred)
		}
		return err
	}
	log.Debug("progress saved (%d lessons)", snapshot.LessonsCompleted)
	return nil
}

func (c *Coordinator) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = LoggedOut
	c.cred = nil
	c.profile = nil
	c.child = nil
	c.model = models.NewProgress()
}

func (c *Coordinator) dropSession() {
	c.reset()
	if err := c.creds.Clear(); err != nil {
		c.log.Warn("failed to clear credential: %v", err)
	}
}

// dropRejected ends the session when the store rejected cred, forcing a new
// login. A credential replaced since the save started is left alone.
func (c *Coordinator) dropRejected(cred *client.Credential) {
	c.mu.Lock()
	live := c.cred == cred
	c.mu.Unlock()
	if !live {
		return
	}
	c.saves.Cancel()
	c.dropSession()
}

type saveJob struct {
	c *Coordinator
}

func (j saveJob) Name() string { return "save-progress" }

func (j saveJob) Run(ctx context.Context) error {
	return j.c.save(ctx)
}
