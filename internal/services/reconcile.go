package services

import (
	"context"
	"errors"

	"github.com/baharkarakas/projectify-backend/internal/apperr"
	"github.com/baharkarakas/projectify-backend/internal/models"
	repo "github.com/baharkarakas/projectify-backend/internal/repository"
)

// Reconcile rebuilds the user's project and report references, and the
// matching project references, from the reports actually stored for the
// user. Running it twice yields the same state.
func (s *ReportService) Reconcile(ctx context.Context, userID string) (models.User, error) {
	if userID == "" {
		return models.User{}, apperr.BadRequest(msgUserIDRequired)
	}
	if !models.IsID(userID) {
		return models.User{}, apperr.NotFound(msgUserNotFound)
	}

	var user models.User
	err := s.store.WithTx(ctx, func(ctx context.Context, r repo.Repositories) error {
		var err error
		user, err = r.Users.GetByID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound(msgUserNotFound)
		}
		if err != nil {
			return lookupFailed(err)
		}
		reports, err := r.Reports.ListByUser(ctx, userID)
		if err != nil {
			return lookupFailed(err)
		}

		byProject := map[string][]string{}
		reportIDs := make([]string, 0, len(reports))
		projectIDs := []string{}
		for _, rp := range reports {
			reportIDs = append(reportIDs, rp.ID)
			if _, seen := byProject[rp.ProjectID]; !seen {
				projectIDs = append(projectIDs, rp.ProjectID)
			}
			byProject[rp.ProjectID] = append(byProject[rp.ProjectID], rp.ID)
		}

		touched := append([]string{}, projectIDs...)
		for _, id := range user.Projects {
			touched = appendUnique(touched, id)
		}
		for _, pid := range touched {
			p, err := r.Projects.GetByID(ctx, pid)
			if errors.Is(err, repo.ErrNotFound) {
				continue
			}
			if err != nil {
				return lookupFailed(err)
			}
			if err := s.reconcileProject(ctx, r, &p, user.ID, byProject[pid]); err != nil {
				return err
			}
		}

		user.Reports = reportIDs
		user.Projects = projectIDs
		if err := r.Users.Update(ctx, user); err != nil {
			return saveFailed(err)
		}
		return nil
	})
	if err != nil {
		return models.User{}, unitFailed(err)
	}

	s.invalidate(ctx, user.ID)
	s.audit.record(auditEntityUser, user.ID, auditActionReconcile, map[string]any{
		"projects": len(user.Projects),
		"reports":  len(user.Reports),
	})
	return user, nil
}

// reconcileProject links or unlinks userID depending on whether the user has
// reports in p, and drops report references that no longer resolve.
func (s *ReportService) reconcileProject(ctx context.Context, r repo.Repositories, p *models.Project, userID string, reportIDs []string) error {
	existing, err := r.Reports.ListByIDs(ctx, p.Reports)
	if err != nil {
		return lookupFailed(err)
	}
	refs := make([]string, 0, len(existing)+len(reportIDs))
	for _, rp := range existing {
		refs = append(refs, rp.ID)
	}
	for _, id := range reportIDs {
		refs = appendUnique(refs, id)
	}
	p.Reports = refs

	if len(reportIDs) > 0 {
		p.Users = appendUnique(p.Users, userID)
	} else {
		p.Users = removeID(p.Users, userID)
	}
	if err := r.Projects.Update(ctx, *p); err != nil {
		return saveFailed(err)
	}
	return nil
}
