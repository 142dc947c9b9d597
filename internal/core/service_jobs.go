package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// PostJob stores a job posting on behalf of the alumnus with email.
func (s *Service) PostJob(ctx context.Context, email string, job JobPosting) (int, error) {
	if !ValidJobTitle(job.Title) {
		return 0, ValidationError{Field: "title", Value: job.Title, Message: "may contain letters, spaces and . , ( ) - only"}
	}
	if strings.TrimSpace(job.Company) == "" {
		return 0, ValidationError{Field: "company", Message: "is required"}
	}

	var id int
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		aid, err := alumnusID(ctx, tx, email)
		if err != nil {
			return err
		}
		return tx.QueryRow(ctx, `
INSERT INTO job_postings (alumnus_id, title, description, company, location, posted_date)
VALUES ($1, $2, $3, $4, $5, CURRENT_DATE)
RETURNING job_id`,
			aid, job.Title, nullIfEmpty(job.Description), job.Company, nullIfEmpty(job.Location),
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("post job: %w", err)
	}
	return id, nil
}

const selectJobsSQL = `
SELECT j.job_id, a.email, j.title, j.company, COALESCE(j.location, ''), COALESCE(j.description, ''), j.posted_date
FROM job_postings j
JOIN alumni a ON a.id = j.alumnus_id`

func (s *Service) queryJobs(ctx context.Context, query string, args ...any) ([]JobPosting, error) {
	var out []JobPosting
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (JobPosting, error) {
			var j JobPosting
			err := row.Scan(&j.ID, &j.PosterEmail, &j.Title, &j.Company, &j.Location, &j.Description, &j.PostedDate)
			return j, err
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	return out, nil
}

// ListJobPostings returns all postings, newest first.
func (s *Service) ListJobPostings(ctx context.Context) ([]JobPosting, error) {
	return s.queryJobs(ctx, selectJobsSQL+` ORDER BY j.posted_date DESC, j.job_id DESC`)
}

// SearchJobs returns postings whose title or description contains term.
func (s *Service) SearchJobs(ctx context.Context, term string) ([]JobPosting, error) {
	return s.queryJobs(ctx,
		selectJobsSQL+` WHERE j.title ILIKE $1 OR j.description ILIKE $1 ORDER BY j.posted_date DESC, j.job_id DESC`,
		likePattern(strings.TrimSpace(term)))
}

// AddJobHistory appends a past or current position to the alumnus with
// email. A nil end date marks the position as current.
func (s *Service) AddJobHistory(ctx context.Context, email string, entry JobHistoryEntry) (int, error) {
	if !ValidJobTitle(entry.Title) {
		return 0, ValidationError{Field: "position", Value: entry.Title, Message: "may contain letters, spaces and . , ( ) - only"}
	}
	if strings.TrimSpace(entry.Company) == "" {
		return 0, ValidationError{Field: "company_name", Message: "is required"}
	}
	if entry.StartDate.IsZero() {
		return 0, ValidationError{Field: "start_date", Message: "is required"}
	}
	var end pgtype.Date
	if entry.EndDate != nil {
		if entry.EndDate.Before(entry.StartDate) {
			return 0, ValidationError{Field: "end_date", Value: entry.EndDate.Format(time.DateOnly), Message: "is before start date"}
		}
		end = pgtype.Date{Time: *entry.EndDate, Valid: true}
	}

	var id int
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		aid, err := alumnusID(ctx, tx, email)
		if err != nil {
			return err
		}
		return tx.QueryRow(ctx, `
INSERT INTO job_history (alumnus_id, company_name, position, start_date, end_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING job_history_id`,
			aid, entry.Company, entry.Title, entry.StartDate, end,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("add job history: %w", err)
	}
	return id, nil
}

// JobHistory returns the positions of the alumnus with email, most recent first.
func (s *Service) JobHistory(ctx context.Context, email string) ([]JobHistoryEntry, error) {
	var out []JobHistoryEntry
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		aid, err := alumnusID(ctx, tx, email)
		if err != nil {
			return err
		}
		rows, err := tx.Query(ctx, `
SELECT job_history_id, position, company_name, start_date, end_date
FROM job_history WHERE alumnus_id = $1
ORDER BY start_date DESC`, aid)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (JobHistoryEntry, error) {
			var e JobHistoryEntry
			var end pgtype.Date
			if err := row.Scan(&e.ID, &e.Title, &e.Company, &e.StartDate, &end); err != nil {
				return e, err
			}
			if end.Valid {
				t := end.Time
				e.EndDate = &t
			}
			return e, nil
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("job history %s: %w", email, err)
	}
	return out, nil
}
