package postgres

import (
	"context"

	"github.com/baharkarakas/projectify-backend/internal/models"
	"github.com/baharkarakas/projectify-backend/internal/repository"
)

type usersRepo struct{ q querier }

const userColumns = `id, username, password_hash, project_ids, report_ids, created_at`

func scanUser(row scanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Projects, &u.Reports, &u.CreatedAt)
	return u, mapErr(err)
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = models.NewID()
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	err := r.q.QueryRow(ctx,
		`INSERT INTO users(id, username, password_hash, project_ids, report_ids)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING created_at`,
		u.ID, u.Username, u.PasswordHash, u.Projects, u.Reports,
	).Scan(&u.CreatedAt)
	if err != nil {
		return models.User{}, mapErr(err)
	}
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username))
}

func (r *usersRepo) Update(ctx context.Context, u models.User) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET username=$2, project_ids=$3, report_ids=$4 WHERE id=$1`,
		u.ID, u.Username, nonNil(u.Projects), nonNil(u.Reports),
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
