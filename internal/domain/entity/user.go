package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in HashedPassword; the ID is a ULID
// assigned by the registration use case, never by storage.
type User struct {
	ID             string
	Username       string
	Email          string
	BirthDate      time.Time // date only, UTC midnight
	HashedPassword string
	ColorTheme     ColorTheme
	Language       Language
	IsActive       bool
	CreatedAt      time.Time
}

// NewUser builds an active user created now. BirthDate is normalized to a
// UTC date.
func NewUser(id, username, email, hashedPassword string, birthDate time.Time, theme ColorTheme, lang Language) *User {
	return &User{
		ID:             id,
		Username:       username,
		Email:          email,
		BirthDate:      DateOnly(birthDate),
		HashedPassword: hashedPassword,
		ColorTheme:     theme,
		Language:       lang,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
}

// Deactivate flips the account off. There is no reactivation path.
func (u *User) Deactivate() {
	u.IsActive = false
}

func (u *User) UpdatePassword(newHashedPassword string) {
	u.HashedPassword = newHashedPassword
}

func (u *User) UpdatePersonalData(username, email string, birthDate time.Time) {
	u.Username = username
	u.Email = email
	u.BirthDate = DateOnly(birthDate)
}

func (u *User) UpdatePreferences(theme ColorTheme, lang Language) {
	u.ColorTheme = theme
	u.Language = lang
}

// DateOnly truncates a timestamp to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LegalAgeDate returns the latest birth date that still counts as 18 years
// old on the given day. A Feb 29 reference day is clamped to Feb 28 so the
// cutoff exists in non-leap years.
func LegalAgeDate(today time.Time) time.Time {
	y, m, d := today.UTC().Date()
	if m == time.February && d == 29 {
		d = 28
	}
	return time.Date(y-18, m, d, 0, 0, 0, 0, time.UTC)
}

// IsUnderage reports whether someone born on birthDate is younger than 18 on
// the given day. The rule is strict: born exactly 18 years ago is of age.
func IsUnderage(birthDate, today time.Time) bool {
	return DateOnly(birthDate).After(LegalAgeDate(today))
}
