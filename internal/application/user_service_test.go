package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-accounts/internal/application/apperrors"
	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/internal/infrastructure/memory"
	"github.com/oksasatya/go-user-accounts/pkg/events"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:   "Marcos Rocha Figueiredo",
		Email:      "marcos@example.com",
		Password:   "ye5s(D!S",
		BirthDate:  time.Date(1993, time.April, 17, 0, 0, 0, 0, time.UTC),
		ColorTheme: entity.ThemeDark,
		Language:   entity.LangPtBR,
	}
}

func TestRegisterSuccess(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	pub := &captureEvents{}
	svc := newTestUserService(repo, pub)

	u, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.True(t, helpers.ValidULID(u.ID), "id must be a generated ULID")
	assert.True(t, u.IsActive)
	assert.Equal(t, "hashed::ye5s(D!S", u.HashedPassword)
	assert.NotEqual(t, "ye5s(D!S", u.HashedPassword)
	assert.WithinDuration(t, time.Now().UTC(), u.CreatedAt, 2*time.Second)

	stored, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, stored.Email)

	require.Len(t, pub.published, 1)
	assert.Equal(t, events.TypeUserRegistered, pub.published[0].Type)
	assert.Equal(t, u.ID, pub.published[0].UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	svc := newTestUserService(repo, nil)

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	// Same email with different everything else still collides.
	in := validRegisterInput()
	in.Username = "Leandro Nogueira Machado"
	in.Password = "TE94U@2T"
	in.BirthDate = time.Date(1980, time.January, 2, 0, 0, 0, 0, time.UTC)

	_, err = svc.Register(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUserAlreadyExists, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "marcos@example.com")
}

func TestRegisterUnderageBoundary(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	svc := newTestUserService(repo, nil)

	today := entity.DateOnly(time.Now())

	in := validRegisterInput()
	in.Email = "underage@example.com"
	in.BirthDate = entity.LegalAgeDate(today).AddDate(0, 0, 1) // 18 years minus one day
	_, err := svc.Register(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUserIsUnderage, apperrors.KindOf(err))

	in.Email = "ofage@example.com"
	in.BirthDate = entity.LegalAgeDate(today) // exactly 18 today
	_, err = svc.Register(context.Background(), in)
	require.NoError(t, err)
}

func TestRegisterUnderageLeavesNothingStored(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	svc := newTestUserService(repo, nil)

	in := validRegisterInput()
	in.BirthDate = time.Now().AddDate(-17, 0, 0)
	_, err := svc.Register(context.Background(), in)
	require.Error(t, err)

	_, err = repo.GetByEmail(in.Email)
	require.Error(t, err, "failed registration must not persist a user")
}

func TestGetActiveUser(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	svc := newTestUserService(repo, nil)
	active := seedUser(repo, "alberto@example.com", "ye5s(D!S", true)
	inactive := seedUser(repo, "leandro@example.com", "ye5s(D!S", false)

	got, err := svc.GetActiveUser(context.Background(), active.ID)
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)

	_, err = svc.GetActiveUser(context.Background(), inactive.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUserIsDeactivated, apperrors.KindOf(err))

	missing := helpers.NewULIDGenerator().NewID()
	_, err = svc.GetActiveUser(context.Background(), missing)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUserNotFound, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), missing)
}

func TestDeactivate(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	pub := &captureEvents{}
	svc := newTestUserService(repo, pub)
	u := seedUser(repo, "alberto@example.com", "ye5s(D!S", true)

	updated, err := svc.Deactivate(context.Background(), u)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	stored, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	// Second deactivation is harmless.
	again, err := svc.Deactivate(context.Background(), updated)
	require.NoError(t, err)
	assert.False(t, again.IsActive)

	require.Len(t, pub.published, 2)
	assert.Equal(t, events.TypeUserDeactivated, pub.published[0].Type)
}

func TestUpdatePersonalData(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	svc := newTestUserService(repo, nil)
	u := seedUser(repo, "alberto@example.com", "ye5s(D!S", true)

	newBirth := time.Date(1990, time.December, 24, 0, 0, 0, 0, time.UTC)
	updated, err := svc.UpdatePersonalData(context.Background(), u, PersonalDataInput{
		Username:  "Leandro Nogueira Machado",
		Email:     "leandro.machado@example.com",
		BirthDate: newBirth,
	})
	require.NoError(t, err)
	assert.Equal(t, "Leandro Nogueira Machado", updated.Username)
	assert.Equal(t, "leandro.machado@example.com", updated.Email)
	assert.Equal(t, newBirth, updated.BirthDate)

	stored, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "leandro.machado@example.com", stored.Email)
}

func TestUpdatePersonalDataUnderage(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	svc := newTestUserService(repo, nil)
	u := seedUser(repo, "alberto@example.com", "ye5s(D!S", true)
	originalEmail := u.Email

	_, err := svc.UpdatePersonalData(context.Background(), u, PersonalDataInput{
		Username:  "Leandro Nogueira Machado",
		Email:     "leandro.machado@example.com",
		BirthDate: time.Now().AddDate(-15, 0, 0),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUserIsUnderage, apperrors.KindOf(err))

	stored, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, originalEmail, stored.Email, "failed validation must leave the stored user untouched")
}

func TestUpdatePreferences(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	svc := newTestUserService(repo, nil)
	u := seedUser(repo, "alberto@example.com", "ye5s(D!S", true)

	updated, err := svc.UpdatePreferences(context.Background(), u, PreferencesInput{
		ColorTheme: entity.ThemeDark,
		Language:   entity.LangJaJP,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ThemeDark, updated.ColorTheme)
	assert.Equal(t, entity.LangJaJP, updated.Language)

	stored, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.LangJaJP, stored.Language)
}

func TestUpdatePasswordChecksRunInOrder(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	svc := newTestUserService(repo, nil)

	tests := []struct {
		name string
		in   PasswordInput
		kind apperrors.Kind
	}{
		{
			name: "wrong old password wins over mismatched confirmation",
			in:   PasswordInput{OldPassword: "Wr0ng!pw", NewPassword: "B2!bbbbb", ConfirmNewPassword: "Other9$x"},
			kind: apperrors.KindOldPasswordDoesntMatch,
		},
		{
			name: "confirmation mismatch wins over same-as-old",
			in:   PasswordInput{OldPassword: "A1!aaaaa", NewPassword: "A1!aaaaa", ConfirmNewPassword: "Other9$x"},
			kind: apperrors.KindNewPasswordConfirmationMismatch,
		},
		{
			name: "same as old even when confirmation matches too",
			in:   PasswordInput{OldPassword: "A1!aaaaa", NewPassword: "A1!aaaaa", ConfirmNewPassword: "A1!aaaaa"},
			kind: apperrors.KindNewPasswordCantBeSameAsOld,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := seedUser(repo, "order-"+string(tt.kind)+"@example.com", "A1!aaaaa", true)
			before := u.HashedPassword

			_, err := svc.UpdatePassword(context.Background(), u, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperrors.KindOf(err))

			stored, err := repo.GetByID(u.ID)
			require.NoError(t, err)
			assert.Equal(t, before, stored.HashedPassword, "failed change must leave the hash untouched")
		})
	}
}

func TestUpdatePasswordSuccess(t *testing.T) {
	t.Parallel()

	repo := memory.NewUserRepository()
	pub := &captureEvents{}
	svc := newTestUserService(repo, pub)
	u := seedUser(repo, "alberto@example.com", "A1!aaaaa", true)

	updated, err := svc.UpdatePassword(context.Background(), u, PasswordInput{
		OldPassword:        "A1!aaaaa",
		NewPassword:        "B2!bbbbb",
		ConfirmNewPassword: "B2!bbbbb",
	})
	require.NoError(t, err)
	assert.Equal(t, "hashed::B2!bbbbb", updated.HashedPassword)

	// Login works with the new password and fails with the old one.
	auth := NewAuthService(repo, stubHasher{}, helpers.NewJWTManager("test-secret", time.Hour), nil)
	_, err = auth.Authenticate(context.Background(), "alberto@example.com", "B2!bbbbb")
	require.NoError(t, err)
	_, err = auth.Authenticate(context.Background(), "alberto@example.com", "A1!aaaaa")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidCredentials, apperrors.KindOf(err))

	require.Len(t, pub.published, 1)
	assert.Equal(t, events.TypePasswordChanged, pub.published[0].Type)
}
