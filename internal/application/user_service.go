package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-accounts/internal/application/apperrors"
	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/internal/domain/repository"
	"github.com/oksasatya/go-user-accounts/pkg/events"
)

// UserService owns registration and the profile mutations of an already
// authenticated user. All validations run before any write; a failed check
// leaves the stored user untouched.
type UserService struct {
	Repo         repository.UserRepository
	Hasher       PasswordHasher
	IDs          IDGenerator
	Events       EventPublisher
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewUserService(repo repository.UserRepository, hasher PasswordHasher, ids IDGenerator, pub EventPublisher, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string) *UserService {
	return &UserService{
		Repo:         repo,
		Hasher:       hasher,
		IDs:          ids,
		Events:       pub,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
	}
}

type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	BirthDate  time.Time
	ColorTheme entity.ColorTheme
	Language   entity.Language
}

// Register creates a new active user. The id is generated here, never by
// storage.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	existing, err := s.Repo.GetByEmail(in.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.UserAlreadyExists(in.Email)
	}

	if entity.IsUnderage(in.BirthDate, time.Now()) {
		return nil, apperrors.UserIsUnderage()
	}

	hashed, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := entity.NewUser(s.IDs.NewID(), in.Username, in.Email, hashed, in.BirthDate, in.ColorTheme, in.Language)

	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewAccountEvent(events.TypeUserRegistered, u.ID, u.Email, u.Username))
	_ = s.indexUser(ctx, u)
	return u, nil
}

// GetActiveUser resolves a token subject to a stored, active user. It is the
// read-and-gate half of request authorization and never mutates state.
func (s *UserService) GetActiveUser(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.UserNotFound(userID)
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, apperrors.UserIsDeactivated(u.Email)
	}
	return u, nil
}

// Deactivate turns the account off. Running it on an already inactive user
// is harmless; is_active stays false.
func (s *UserService) Deactivate(ctx context.Context, u *entity.User) (*entity.User, error) {
	u.Deactivate()
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewAccountEvent(events.TypeUserDeactivated, u.ID, u.Email, u.Username))
	return u, nil
}

type PersonalDataInput struct {
	Username  string
	Email     string
	BirthDate time.Time
}

// UpdatePersonalData overwrites username, email and birth date after
// re-running the age rule against today.
func (s *UserService) UpdatePersonalData(ctx context.Context, u *entity.User, in PersonalDataInput) (*entity.User, error) {
	if entity.IsUnderage(in.BirthDate, time.Now()) {
		return nil, apperrors.UserIsUnderage()
	}
	u.UpdatePersonalData(in.Username, in.Email, in.BirthDate)
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	_ = s.indexUser(ctx, u)
	return u, nil
}

type PreferencesInput struct {
	ColorTheme entity.ColorTheme
	Language   entity.Language
}

// UpdatePreferences overwrites both preference fields unconditionally.
func (s *UserService) UpdatePreferences(ctx context.Context, u *entity.User, in PreferencesInput) (*entity.User, error) {
	u.UpdatePreferences(in.ColorTheme, in.Language)
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

type PasswordInput struct {
	OldPassword        string
	NewPassword        string
	ConfirmNewPassword string
}

// UpdatePassword replaces the stored hash. The three checks run in a fixed
// order: old-password match, confirmation match, then new-vs-old equality.
// The last check compares plaintexts from the same request on purpose.
func (s *UserService) UpdatePassword(ctx context.Context, u *entity.User, in PasswordInput) (*entity.User, error) {
	if !s.Hasher.Verify(in.OldPassword, u.HashedPassword) {
		return nil, apperrors.OldPasswordDoesntMatch()
	}
	if in.NewPassword != in.ConfirmNewPassword {
		return nil, apperrors.NewPasswordConfirmationMismatch()
	}
	if in.NewPassword == in.OldPassword {
		return nil, apperrors.NewPasswordCantBeSameAsOld(u.Email)
	}

	hashed, err := s.Hasher.Hash(in.NewPassword)
	if err != nil {
		return nil, err
	}
	u.UpdatePassword(hashed)
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewAccountEvent(events.TypePasswordChanged, u.ID, u.Email, u.Username))
	return u, nil
}

func (s *UserService) publish(ctx context.Context, ev events.AccountEvent) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"event":   ev.Type,
			"user_id": ev.UserID,
		}).Warn("publish account event failed")
	}
}

// indexUser mirrors the public profile to Elasticsearch. Failures are logged
// and swallowed; search is not part of the account contract.
func (s *UserService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"is_active":  u.IsActive,
		"language":   string(u.Language),
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}
