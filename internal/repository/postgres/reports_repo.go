package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/baharkarakas/projectify-backend/internal/models"
	"github.com/baharkarakas/projectify-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

type reportsRepo struct{ q querier }

const reportColumns = `id, user_id, project_id, week_number, hours, year, created_at, updated_at`

func scanReport(row scanner) (models.Report, error) {
	var rp models.Report
	err := row.Scan(&rp.ID, &rp.UserID, &rp.ProjectID, &rp.WeekNumber, &rp.Hours, &rp.Year, &rp.CreatedAt, &rp.UpdatedAt)
	return rp, mapErr(err)
}

func collectReports(rows pgx.Rows) ([]models.Report, error) {
	defer rows.Close()
	out := []models.Report{}
	for rows.Next() {
		rp, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rp)
	}
	return out, rows.Err()
}

// Create relies on reports_user_project_week_year_key for the one-report-per-week rule.
func (r *reportsRepo) Create(ctx context.Context, rp models.Report) (models.Report, error) {
	if rp.ID == "" {
		rp.ID = models.NewID()
	}
	err := r.q.QueryRow(ctx,
		`INSERT INTO reports(id, user_id, project_id, week_number, hours, year)
		 VALUES($1,$2,$3,$4,$5,$6)
		 RETURNING created_at, updated_at`,
		rp.ID, rp.UserID, rp.ProjectID, rp.WeekNumber, rp.Hours, rp.Year,
	).Scan(&rp.CreatedAt, &rp.UpdatedAt)
	if err != nil {
		return models.Report{}, mapErr(err)
	}
	return rp, nil
}

func (r *reportsRepo) GetByID(ctx context.Context, id string) (models.Report, error) {
	return scanReport(r.q.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id=$1`, id))
}

func filterSQL(f repository.ReportFilter) (string, []any) {
	conds := []string{"user_id=$1", "week_number=$2", "year=$3"}
	args := []any{f.UserID, f.WeekNumber, f.Year}
	if f.ProjectID != "" {
		args = append(args, f.ProjectID)
		conds = append(conds, "project_id=$"+strconv.Itoa(len(args)))
	}
	return `SELECT ` + reportColumns + ` FROM reports WHERE ` + strings.Join(conds, " AND "), args
}

func (r *reportsRepo) FindOne(ctx context.Context, f repository.ReportFilter) (models.Report, error) {
	q, args := filterSQL(f)
	return scanReport(r.q.QueryRow(ctx, q+` LIMIT 1`, args...))
}

func (r *reportsRepo) Find(ctx context.Context, f repository.ReportFilter) ([]models.Report, error) {
	q, args := filterSQL(f)
	rows, err := r.q.Query(ctx, q+` ORDER BY created_at`, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	return collectReports(rows)
}

func (r *reportsRepo) ListByIDs(ctx context.Context, ids []string) ([]models.Report, error) {
	if len(ids) == 0 {
		return []models.Report{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+reportColumns+` FROM reports
		  WHERE id = ANY($1::text[])
		  ORDER BY array_position($1::text[], id)`,
		ids,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return collectReports(rows)
}

func (r *reportsRepo) ListByUser(ctx context.Context, userID string) ([]models.Report, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE user_id=$1 ORDER BY year, week_number, created_at`,
		userID,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return collectReports(rows)
}

func (r *reportsRepo) UpdateHours(ctx context.Context, id string, hours float64) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE reports SET hours=$2, updated_at=now() WHERE id=$1`,
		id, hours,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
