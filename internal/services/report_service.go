package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/baharkarakas/projectify-backend/internal/apperr"
	"github.com/baharkarakas/projectify-backend/internal/cache"
	"github.com/baharkarakas/projectify-backend/internal/metrics"
	"github.com/baharkarakas/projectify-backend/internal/models"
	repo "github.com/baharkarakas/projectify-backend/internal/repository"
	"github.com/baharkarakas/projectify-backend/internal/week"
	"github.com/baharkarakas/projectify-backend/internal/worker"
)

const (
	msgAddRequired       = "UserId, projectId, weekNumber, hours and year are required"
	msgWeekRange         = "weekNumber must be between 1 and 53"
	msgNegativeHours     = "hours must be non-negative"
	msgUserOrProject     = "User or project not found"
	msgReportExists      = "Report for this week and project already exists"
	msgWeeklyLimit       = "Total hours for this week exceed the limit of 45"
	msgUpdateRequired    = "ReportId and hours are required"
	msgReportNotFound    = "Report not found"
	msgNotLastMonth      = "The report is not from the last month"
	msgUserIDRequired    = "UserId is required"
	msgUserNotFound      = "User not found"
	msgDatabaseError     = "Database error"
	auditEntityReport    = "report"
	auditEntityUser      = "user"
	auditActionCreated   = "created"
	auditActionUpdated   = "updated"
	auditActionReconcile = "reconciled"
)

// AddReportInput carries a new weekly report. Pointer fields distinguish an
// absent value from zero.
type AddReportInput struct {
	UserID     string   `json:"userId"`
	ProjectID  string   `json:"projectId"`
	WeekNumber *int     `json:"weekNumber"`
	Hours      *float64 `json:"hours"`
	Year       *int     `json:"year"`
}

type UpdateReportInput struct {
	ReportID string   `json:"reportId"`
	Hours    *float64 `json:"hours"`
}

type ReportService struct {
	store repo.Store
	cache cache.Reports
	audit auditor
	log   *slog.Logger
	now   func() time.Time
}

// NewReportService wires the report workflow. c may be nil (no caching) and wp
// may be nil (audit entries are written inline).
func NewReportService(store repo.Store, c cache.Reports, wp *worker.Pool, log *slog.Logger) *ReportService {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &ReportService{
		store: store,
		cache: c,
		audit: auditor{logs: store.Repos().AuditLogs, wp: wp, log: log},
		log:   log,
		now:   time.Now,
	}
}

func lookupFailed(err error) *apperr.Error { return apperr.Internal(msgDatabaseError, err) }

// saveFailed reports a failed write. A uniqueness violation on the report key
// means another request stored the same report first.
func saveFailed(err error) *apperr.Error {
	if errors.Is(err, repo.ErrDuplicate) {
		return apperr.Conflict(msgReportExists)
	}
	return &apperr.Error{Kind: apperr.KindBadRequest, Msg: err.Error(), Err: err}
}

// unitFailed passes service errors through. Anything else escaped the unit of
// work itself, typically a failed commit, and counts as a failed write.
func unitFailed(err error) *apperr.Error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}
	return saveFailed(err)
}

func reject(reason string, err *apperr.Error) *apperr.Error {
	metrics.ReportsRejected.WithLabelValues(reason).Inc()
	return err
}

// AddReport validates and stores a weekly report, linking its user and
// project to each other.
func (s *ReportService) AddReport(ctx context.Context, in AddReportInput) (models.Report, error) {
	if in.UserID == "" || in.ProjectID == "" || in.WeekNumber == nil || in.Hours == nil || in.Year == nil {
		return models.Report{}, reject("invalid", apperr.BadRequest(msgAddRequired))
	}
	if *in.WeekNumber < 1 || *in.WeekNumber > 53 {
		return models.Report{}, reject("invalid", apperr.BadRequest(msgWeekRange))
	}
	if *in.Hours < 0 {
		return models.Report{}, reject("invalid", apperr.BadRequest(msgNegativeHours))
	}

	var (
		created models.Report
		total   float64
	)
	err := s.store.WithTx(ctx, func(ctx context.Context, r repo.Repositories) error {
		var err error
		created, total, err = s.addReport(ctx, r, in)
		return err
	})
	if err != nil {
		return models.Report{}, unitFailed(err)
	}

	metrics.ReportsTotal.WithLabelValues(auditActionCreated).Inc()
	metrics.WeeklyHours.Observe(total)
	s.invalidate(ctx, created.UserID)
	s.audit.record(auditEntityReport, created.ID, auditActionCreated, map[string]any{
		"user":       created.UserID,
		"project":    created.ProjectID,
		"weekNumber": created.WeekNumber,
		"year":       created.Year,
		"hours":      created.Hours,
	})
	s.log.InfoContext(ctx, "report created", "report_id", created.ID, "user_id", created.UserID, "week", created.WeekNumber, "year", created.Year)
	return created, nil
}

func (s *ReportService) addReport(ctx context.Context, r repo.Repositories, in AddReportInput) (models.Report, float64, error) {
	hours, weekNo, year := *in.Hours, *in.WeekNumber, *in.Year

	if !models.IsID(in.UserID) || !models.IsID(in.ProjectID) {
		return models.Report{}, 0, reject("not_found", apperr.NotFound(msgUserOrProject))
	}

	user, uerr := r.Users.GetByID(ctx, in.UserID)
	if uerr != nil && !errors.Is(uerr, repo.ErrNotFound) {
		return models.Report{}, 0, lookupFailed(uerr)
	}
	project, perr := r.Projects.GetByID(ctx, in.ProjectID)
	if perr != nil && !errors.Is(perr, repo.ErrNotFound) {
		return models.Report{}, 0, lookupFailed(perr)
	}
	if uerr != nil || perr != nil {
		return models.Report{}, 0, reject("not_found", apperr.NotFound(msgUserOrProject))
	}

	_, err := r.Reports.FindOne(ctx, repo.ReportFilter{UserID: user.ID, ProjectID: project.ID, WeekNumber: weekNo, Year: year})
	switch {
	case err == nil:
		return models.Report{}, 0, reject("duplicate", apperr.Conflict(msgReportExists))
	case !errors.Is(err, repo.ErrNotFound):
		return models.Report{}, 0, lookupFailed(err)
	}

	sameWeek, err := r.Reports.Find(ctx, repo.ReportFilter{UserID: user.ID, WeekNumber: weekNo, Year: year})
	if err != nil {
		return models.Report{}, 0, lookupFailed(err)
	}
	total := models.TotalHours(sameWeek) + hours
	if total > models.MaxWeeklyHours {
		return models.Report{}, 0, reject("weekly_limit", apperr.LimitExceeded(msgWeeklyLimit))
	}

	now := s.now().UTC()
	report := models.Report{
		ID:         models.NewID(),
		UserID:     user.ID,
		ProjectID:  project.ID,
		WeekNumber: weekNo,
		Hours:      hours,
		Year:       year,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	linkReport(&user, &project, report.ID)
	if err := r.Users.Update(ctx, user); err != nil {
		return models.Report{}, 0, saveFailed(err)
	}
	if err := r.Projects.Update(ctx, project); err != nil {
		return models.Report{}, 0, saveFailed(err)
	}
	created, err := r.Reports.Create(ctx, report)
	if err != nil {
		return models.Report{}, 0, saveFailed(err)
	}
	return created, total, nil
}

// UpdateReports changes the hours of a report that belongs to the previous
// calendar month.
func (s *ReportService) UpdateReports(ctx context.Context, in UpdateReportInput) error {
	if in.ReportID == "" || in.Hours == nil {
		return reject("invalid", apperr.BadRequest(msgUpdateRequired))
	}
	if *in.Hours < 0 {
		return reject("invalid", apperr.BadRequest(msgNegativeHours))
	}

	if !models.IsID(in.ReportID) {
		return reject("not_found", apperr.NotFound(msgReportNotFound))
	}

	var report models.Report
	err := s.store.WithTx(ctx, func(ctx context.Context, r repo.Repositories) error {
		var err error
		report, err = r.Reports.GetByID(ctx, in.ReportID)
		if errors.Is(err, repo.ErrNotFound) {
			return reject("not_found", apperr.NotFound(msgReportNotFound))
		}
		if err != nil {
			return lookupFailed(err)
		}

		if !week.LastMonth(s.now()).Contains(report.Year, report.WeekNumber) {
			return reject("outside_window", apperr.BadRequest(msgNotLastMonth))
		}

		if err := r.Reports.UpdateHours(ctx, report.ID, *in.Hours); err != nil {
			return saveFailed(err)
		}
		return nil
	})
	if err != nil {
		return unitFailed(err)
	}

	metrics.ReportsTotal.WithLabelValues(auditActionUpdated).Inc()
	s.invalidate(ctx, report.UserID)
	s.audit.record(auditEntityReport, report.ID, auditActionUpdated, map[string]any{
		"from": report.Hours,
		"to":   *in.Hours,
	})
	s.log.InfoContext(ctx, "report updated", "report_id", report.ID, "hours", *in.Hours)
	return nil
}

// GetReports returns the reports referenced by the user, in reference order.
func (s *ReportService) GetReports(ctx context.Context, userID string) ([]models.Report, error) {
	if userID == "" {
		return nil, apperr.BadRequest(msgUserIDRequired)
	}

	if !models.IsID(userID) {
		return nil, apperr.NotFound(msgUserNotFound)
	}

	// The generation is taken before the store read so a list resolved
	// concurrently with an invalidation is written under a dead generation.
	gen, genErr := s.cache.Generation(ctx, userID)
	if genErr != nil {
		s.log.WarnContext(ctx, "report cache generation read failed", "user_id", userID, "err", genErr)
	} else {
		cached, ok, err := s.cache.Get(ctx, userID, gen)
		if err != nil {
			s.log.WarnContext(ctx, "report cache read failed", "user_id", userID, "err", err)
		}
		if ok {
			return cached, nil
		}
	}

	repos := s.store.Repos()
	user, err := repos.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.NotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, lookupFailed(err)
	}
	reports, err := repos.Reports.ListByIDs(ctx, user.Reports)
	if err != nil {
		return nil, lookupFailed(err)
	}
	if reports == nil {
		reports = []models.Report{}
	}

	if genErr == nil {
		if err := s.cache.Set(ctx, userID, gen, reports); err != nil {
			s.log.WarnContext(ctx, "report cache write failed", "user_id", userID, "err", err)
		}
	}
	return reports, nil
}

func (s *ReportService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.WarnContext(ctx, "report cache invalidate failed", "user_id", userID, "err", err)
	}
}
