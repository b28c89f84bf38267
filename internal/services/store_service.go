package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/vytor/pandaschool/internal/errors"
	"github.com/vytor/pandaschool/internal/logger"
	"github.com/vytor/pandaschool/internal/models"
	"github.com/vytor/pandaschool/internal/progress"
	"github.com/vytor/pandaschool/internal/repository"
)

// StoreService is the server side of the progress store
type StoreService interface {
	SaveChild(ctx context.Context, userID string, child models.ChildProfile) error
	SaveProgress(ctx context.Context, userID string, record models.ProgressRecord) error
	UserData(ctx context.Context, userID string) (*models.UserData, error)
	Summary(ctx context.Context, userID string) (*progress.Summary, error)
}

type storeService struct {
	kvRepo repository.KVRepository
	now    func() time.Time
}

// NewStoreService creates a new StoreService
func NewStoreService(kvRepo repository.KVRepository) StoreService {
	return &storeService{kvRepo: kvRepo, now: time.Now}
}

func (s *storeService) SaveChild(ctx context.Context, userID string, child models.ChildProfile) error {
	log := logger.FromContext(ctx).WithPrefix("store")
	log.Debug("saving child profile: user=%s", userID)

	child.ChildName = strings.TrimSpace(child.ChildName)
	if child.ChildName == "" {
		return errors.NewValidationError("childName", "cannot be empty")
	}
	if child.ChildAge < models.MinChildAge {
		return errors.NewValidationError("childAge", "must be at least 5")
	}
	if child.AvatarIcon() == "" {
		return errors.NewValidationError("avatar", "unknown avatar")
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	child.UpdatedAt = &now
	return s.put(ctx, storeKey(userID, kindChild), child, now)
}

func (s *storeService) SaveProgress(ctx context.Context, userID string, record models.ProgressRecord) error {
	log := logger.FromContext(ctx).WithPrefix("store")
	log.Debug("saving progress: user=%s lessons=%d", userID, record.LessonsCompleted)

	if err := progress.ValidateModel(record.Progress); err != nil {
		return err
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	record.Progress = progress.Normalize(record.Progress)
	record.UpdatedAt = &now

	b, err := progress.EncodeRecord(record)
	if err != nil {
		return errors.NewInvalidInputError("progress", err.Error())
	}
	if err := s.kvRepo.Set(ctx, storeKey(userID, kindProgress), b, now); err != nil {
		log.Error("failed to store progress: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *storeService) UserData(ctx context.Context, userID string) (*models.UserData, error) {
	log := logger.FromContext(ctx).WithPrefix("store")
	log.Debug("loading user data: user=%s", userID)

	var data models.UserData

	var profile models.ParentProfile
	found, err := s.get(ctx, storeKey(userID, kindProfile), &profile)
	if err != nil {
		return nil, err
	}
	if found {
		data.Profile = &profile
	}

	var child models.ChildProfile
	found, err = s.get(ctx, storeKey(userID, kindChild), &child)
	if err != nil {
		return nil, err
	}
	if found {
		data.Child = &child
	}

	record, err := s.loadProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	data.Progress = record

	return &data, nil
}

func (s *storeService) Summary(ctx context.Context, userID string) (*progress.Summary, error) {
	record, err := s.loadProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := models.NewProgress()
	if record != nil {
		p = record.Progress
	}
	summary := progress.Summarize(p)
	return &summary, nil
}

func (s *storeService) loadProgress(ctx context.Context, userID string) (*models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("store")

	b, err := s.kvRepo.Get(ctx, storeKey(userID, kindProgress))
	if err != nil {
		log.Error("failed to read progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if b == nil {
		return nil, nil
	}
	record, err := progress.DecodeRecord(b)
	if err != nil {
		log.Error("stored progress for %s is corrupt: %v", userID, err)
		return nil, errors.NewInternalError(err)
	}
	return &record, nil
}

func (s *storeService) get(ctx context.Context, key string, v any) (bool, error) {
	b, err := s.kvRepo.Get(ctx, key)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("store").Error("failed to read %s: %v", key, err)
		return false, errors.NewInternalError(err)
	}
	if b == nil {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, errors.NewInternalError(err)
	}
	return true, nil
}

func (s *storeService) put(ctx context.Context, key string, v any, at time.Time) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if err := s.kvRepo.Set(ctx, key, b, at); err != nil {
		logger.FromContext(ctx).WithPrefix("store").Error("failed to write %s: %v", key, err)
		return errors.NewInternalError(err)
	}
	return nil
}
