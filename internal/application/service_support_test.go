package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/internal/infrastructure/memory"
	"github.com/oksasatya/go-user-accounts/pkg/events"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
)

// stubHasher is a deterministic PasswordHasher so use-case tests don't pay
// for bcrypt.
type stubHasher struct{}

func (stubHasher) Hash(plain string) (string, error) { return "hashed::" + plain, nil }
func (stubHasher) Verify(plain, hashed string) bool  { return hashed == "hashed::"+plain }

// captureEvents records published account events.
type captureEvents struct {
	published []events.AccountEvent
}

func (c *captureEvents) Publish(_ context.Context, ev events.AccountEvent) error {
	c.published = append(c.published, ev)
	return nil
}

func newTestUserService(repo *memory.UserRepository, pub *captureEvents) *UserService {
	var p EventPublisher
	if pub != nil {
		p = pub
	}
	return NewUserService(repo, stubHasher{}, helpers.NewULIDGenerator(), p, nil, nil, "")
}

func seedUser(repo *memory.UserRepository, email, password string, active bool) *entity.User {
	u := entity.NewUser(
		helpers.NewULIDGenerator().NewID(),
		"Alberto Frigatto de Andrade",
		email,
		"hashed::"+password,
		time.Date(1993, time.April, 17, 0, 0, 0, 0, time.UTC),
		entity.ThemeLight,
		entity.LangEnUK,
	)
	u.IsActive = active
	_ = repo.Create(u)
	return u
}
