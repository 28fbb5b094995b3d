package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crewline/internal/common"
	"crewline/internal/domain/application"
)

const applicationColumns = `id, event_id, applicant_id, requested_role, assigned_role, status, notes, decided_at, decided_by, created_at, updated_at`

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO event_applications (id, event_id, applicant_id, requested_role, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		app.ID, app.EventID, app.ApplicantID, app.RequestedRole, app.Status, app.Notes, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM event_applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) List(ctx context.Context, status application.Status) ([]application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM event_applications ORDER BY created_at DESC`
	args := []any{}
	if status != "" {
		query = `SELECT ` + applicationColumns + ` FROM event_applications WHERE status = $1 ORDER BY created_at DESC`
		args = append(args, status)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM event_applications WHERE applicant_id = $1 ORDER BY created_at DESC`, applicantID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applicant applications", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationRepository) FindByEventAndApplicant(ctx context.Context, eventID, applicantID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM event_applications WHERE event_id = $1 AND applicant_id = $2`, eventID, applicantID)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListAcceptedByApplicant(ctx context.Context, applicantID, excluding common.UUID) ([]application.AcceptedAssignment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.event_id, e.title, e.starts_at, e.ends_at
		FROM event_applications a
		JOIN events e ON e.id = a.event_id
		WHERE a.applicant_id = $1 AND a.status = $2 AND a.id <> $3
		ORDER BY e.starts_at`, applicantID, application.StatusAccepted, excluding)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list accepted assignments", err)
	}
	defer rows.Close()
	var items []application.AcceptedAssignment
	for rows.Next() {
		var a application.AcceptedAssignment
		if err := rows.Scan(&a.ApplicationID, &a.EventID, &a.Title, &a.StartsAt, &a.EndsAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan accepted assignment", err)
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read accepted assignments", err)
	}
	return items, nil
}

// ApplyDecision is a compare-and-swap on status='pending'. Zero affected rows
// means the application vanished or was decided concurrently; the re-read
// distinguishes the two so the caller gets a precise reason.
func (r *ApplicationRepository) ApplyDecision(ctx context.Context, id common.UUID, d application.Decision) (*application.Application, error) {
	var assigned any
	if d.AssignedRole != "" {
		assigned = string(d.AssignedRole)
	}
	result, err := r.db.ExecContext(ctx, `UPDATE event_applications
		SET status = $1, assigned_role = $2, decided_at = $3, decided_by = $4, updated_at = $3
		WHERE id = $5 AND status = $6`,
		d.Status, assigned, d.DecidedAt, d.DecidedBy, id, application.StatusPending)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to apply decision", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to apply decision", err)
	}
	if affected == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, common.NewValidationError("invalid transition: application is already "+string(current.Status), nil)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) UpdateAssignedRole(ctx context.Context, id common.UUID, role application.Role) (*application.Application, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE event_applications SET assigned_role = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		role, time.Now().UTC(), id, application.StatusAccepted)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update assigned role", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "accepted application not found", nil)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) UpdateNotes(ctx context.Context, id common.UUID, notes string) (*application.Application, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE event_applications SET notes = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		notes, time.Now().UTC(), id, application.StatusPending)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update notes", err)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM event_applications WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*application.Application, error) {
	var app application.Application
	var assigned sql.NullString
	var decidedAt sql.NullTime
	var decidedBy sql.NullString
	err := row.Scan(&app.ID, &app.EventID, &app.ApplicantID, &app.RequestedRole, &assigned,
		&app.Status, &app.Notes, &decidedAt, &decidedBy, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	if assigned.Valid {
		role := application.Role(assigned.String)
		app.AssignedRole = &role
	}
	if decidedAt.Valid {
		at := decidedAt.Time
		app.DecidedAt = &at
	}
	if decidedBy.Valid {
		by := common.UUID(decidedBy.String)
		app.DecidedBy = &by
	}
	return &app, nil
}

func collectApplications(rows *sql.Rows) ([]application.Application, error) {
	var items []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read applications", err)
	}
	return items, nil
}
