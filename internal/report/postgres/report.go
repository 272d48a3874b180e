package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/frahmantamala/edumaster/internal/report"
	"github.com/jmoiron/sqlx"
)

// ReportRepository runs the read-only aggregate queries. Queries are written
// with ? placeholders and rebound for the connection's driver.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) report.RepositoryAPI {
	return &ReportRepository{
		db: db,
	}
}

const sessionQuery = `
SELECT id, session_name, start_date, end_date, status, is_current
FROM academic_sessions
WHERE id = ?`

func (r *ReportRepository) GetSession(ctx context.Context, id int64) (*report.Session, error) {
	var s report.Session
	if err := r.db.GetContext(ctx, &s, r.db.Rebind(sessionQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

const statusCountsQuery = `
SELECT
  COUNT(*) AS total,
  COALESCE(SUM(CASE WHEN session_status = 'active' THEN 1 ELSE 0 END), 0) AS active,
  COALESCE(SUM(CASE WHEN session_status = 'promoted' THEN 1 ELSE 0 END), 0) AS promoted,
  COALESCE(SUM(CASE WHEN session_status = 'detained' THEN 1 ELSE 0 END), 0) AS detained,
  COALESCE(SUM(CASE WHEN session_status = 'graduated' THEN 1 ELSE 0 END), 0) AS graduated,
  COALESCE(SUM(CASE WHEN session_status = 'transferred' THEN 1 ELSE 0 END), 0) AS transferred
FROM student_academic_histories
WHERE session_id = ?`

func (r *ReportRepository) CountByStatus(ctx context.Context, sessionID int64) (report.StatusCounts, error) {
	var c report.StatusCounts
	if err := r.db.GetContext(ctx, &c, r.db.Rebind(statusCountsQuery), sessionID); err != nil {
		return report.StatusCounts{}, err
	}
	return c, nil
}

const studentQuery = `
SELECT id, student_code, first_name, last_name, status
FROM students
WHERE id = ?`

func (r *ReportRepository) GetStudent(ctx context.Context, id int64) (*report.Student, error) {
	var s report.Student
	if err := r.db.GetContext(ctx, &s, r.db.Rebind(studentQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

const progressionQuery = `
SELECT
  h.session_id,
  s.session_name,
  h.class_id,
  c.name AS class_name,
  h.section,
  h.roll_number,
  h.attendance_percentage,
  h.performance_percentage,
  h.performance_grade,
  h.session_status,
  h.promoted_to_session_id,
  h.promoted_to_class_id,
  h.promoted_to_section,
  h.promoted_to_promoted_on
FROM student_academic_histories h
JOIN academic_sessions s ON s.id = h.session_id
LEFT JOIN classes c ON c.id = h.class_id
WHERE h.student_id = ?
ORDER BY s.start_date ASC, h.id ASC`

func (r *ReportRepository) Progression(ctx context.Context, studentID int64) ([]*report.ProgressionRow, error) {
	var rows []*report.ProgressionRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(progressionQuery), studentID); err != nil {
		return nil, err
	}
	return rows, nil
}

const dashboardQuery = `
SELECT
  (SELECT COUNT(*) FROM students WHERE status = 'active') AS total_students,
  (SELECT COUNT(*) FROM teachers WHERE status = 'active') AS total_teachers,
  (SELECT COUNT(*) FROM classes) AS total_classes,
  (SELECT COUNT(*) FROM attendance WHERE status = 'present' AND date >= ? AND date < ?) AS present_today,
  (SELECT COALESCE(SUM(paid_amount), 0) FROM fees) AS fee_collected,
  (SELECT COALESCE(SUM(amount - paid_amount), 0) FROM fees WHERE status IN ('pending', 'partial', 'overdue')) AS pending_fees`

func (r *ReportRepository) Dashboard(ctx context.Context, dayStart, dayEnd time.Time) (*report.Dashboard, error) {
	var d report.Dashboard
	if err := r.db.GetContext(ctx, &d, r.db.Rebind(dashboardQuery), dayStart, dayEnd); err != nil {
		return nil, err
	}
	return &d, nil
}
