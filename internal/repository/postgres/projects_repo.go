package postgres

import (
	"context"

	"github.com/baharkarakas/projectify-backend/internal/models"
	"github.com/baharkarakas/projectify-backend/internal/repository"
)

type projectsRepo struct{ q querier }

const projectColumns = `id, name, description, user_ids, report_ids, created_at`

func scanProject(row scanner) (models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Users, &p.Reports, &p.CreatedAt)
	return p, mapErr(err)
}

func (r *projectsRepo) Create(ctx context.Context, p models.Project) (models.Project, error) {
	if p.ID == "" {
		p.ID = models.NewID()
	}
	if err := p.Validate(); err != nil {
		return models.Project{}, err
	}
	err := r.q.QueryRow(ctx,
		`INSERT INTO projects(id, name, description, user_ids, report_ids)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING created_at`,
		p.ID, p.Name, p.Description, p.Users, p.Reports,
	).Scan(&p.CreatedAt)
	if err != nil {
		return models.Project{}, mapErr(err)
	}
	return p, nil
}

func (r *projectsRepo) GetByID(ctx context.Context, id string) (models.Project, error) {
	return scanProject(r.q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id=$1`, id))
}

func (r *projectsRepo) List(ctx context.Context) ([]models.Project, error) {
	rows, err := r.q.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *projectsRepo) Update(ctx context.Context, p models.Project) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE projects SET name=$2, description=$3, user_ids=$4, report_ids=$5 WHERE id=$1`,
		p.ID, p.Name, p.Description, nonNil(p.Users), nonNil(p.Reports),
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
