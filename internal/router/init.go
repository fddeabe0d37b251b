package router

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-accounts/config"
	"github.com/oksasatya/go-user-accounts/internal/application"
	pginfra "github.com/oksasatya/go-user-accounts/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-user-accounts/internal/interface/http"
	"github.com/oksasatya/go-user-accounts/internal/router/modules"
	"github.com/oksasatya/go-user-accounts/pkg/events"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
)

// Deps are the process-level resources built once in the composition root.
// Modules receive everything they need through here; there is no global
// registry.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Tokens *helpers.JWTManager
	Events *events.Publisher // nil when events are disabled
	ES     *elasticsearch.Client
}

// InitModules constructs the repositories, services and handlers and
// registers every feature module with the router registry.
func InitModules(r *Registry, d Deps) {
	repo := pginfra.NewUserRepository(d.Pool)

	var pub application.EventPublisher
	if d.Events != nil {
		pub = d.Events
	}

	userService := application.NewUserService(repo, helpers.NewBcryptHasher(), helpers.NewULIDGenerator(), pub, d.Logger, d.ES, d.Cfg.ESUsersIndex)
	authService := application.NewAuthService(repo, helpers.NewBcryptHasher(), d.Tokens, d.Logger)

	authHandler := handlers.NewAuthHandler(authService, d.Logger)
	userHandler := handlers.NewUserHandler(userService, d.Logger)

	r.Add(modules.NewAuthModule(authHandler, d.Redis))
	r.Add(modules.NewUserModule(userHandler, userService, d.Tokens, d.Redis))
}
