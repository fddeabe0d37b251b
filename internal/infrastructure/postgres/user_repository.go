package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/internal/domain/repository"
)

// UserRepository persists users in Postgres. The id column holds the ULID
// assigned by the registration use case; the database never generates ids.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, username, email, hashed_password, birth_date, color_theme, language, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, u.ID, u.Username, u.Email, u.HashedPassword, u.BirthDate, string(u.ColorTheme), string(u.Language), u.IsActive, u.CreatedAt)
	return err
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	return r.getBy(`WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	return r.getBy(`WHERE email = $1`, email)
}

func (r *UserRepository) getBy(where string, arg any) (*entity.User, error) {
	ctx := context.Background()
	u := &entity.User{}
	var theme, lang string

	row := r.pool.QueryRow(ctx, `
		SELECT id, username, email, hashed_password, birth_date, color_theme, language, is_active, created_at
		FROM users
	`+where, arg)

	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.BirthDate,
		&theme, &lang, &u.IsActive, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	u.ColorTheme = entity.ColorTheme(theme)
	u.Language = entity.Language(lang)
	u.BirthDate = entity.DateOnly(u.BirthDate)
	return u, nil
}

func (r *UserRepository) Update(u *entity.User) error {
	ctx := context.Background()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, hashed_password = $3, birth_date = $4,
		    color_theme = $5, language = $6, is_active = $7
		WHERE id = $8
	`, u.Username, u.Email, u.HashedPassword, u.BirthDate,
		string(u.ColorTheme), string(u.Language), u.IsActive, u.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
