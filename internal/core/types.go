package core

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by *pgxpool.Pool, *pgxpool.Conn and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// AlumniRecord is one row of the alumni table.
type AlumniRecord struct {
	ID             int    `json:"id"`
	Email          string `json:"email" validate:"required,alumemail"`
	FirstName      string `json:"first_name" validate:"required,alumname"`
	LastName       string `json:"last_name" validate:"required,alumname"`
	GraduationYear int    `json:"graduation_year" validate:"gradyear"`
	CurrentJob     string `json:"current_job" validate:"omitempty,jobtitle"`
}

// FullName returns "First Last".
func (r AlumniRecord) FullName() string {
	return r.FirstName + " " + r.LastName
}

// ImportRow is an untyped candidate record keyed by lower-cased header name.
// Absent keys mean the column was not present in the file.
type ImportRow map[string]string

// Import column names, in the order the export header uses for alumni.
const (
	ColEmail          = "email"
	ColFirstName      = "first_name"
	ColLastName       = "last_name"
	ColGraduationYear = "graduation_year"
	ColCurrentJob     = "current_job"
)

// ImportColumns is the header expected by the batch importer.
var ImportColumns = []string{ColEmail, ColFirstName, ColLastName, ColGraduationYear, ColCurrentJob}

// SkippedRow records one row the importer did not insert.
type SkippedRow struct {
	Line   int      // 1-based line number in the file (header is line 1)
	Email  string   // Email cell as read, may be empty
	Reason string   // Why the row was skipped
	Data   []string // Raw cells for the failed-rows file
}

// ImportResult summarizes one batch import run.
type ImportResult struct {
	File          string
	Inserted      int
	Skipped       []SkippedRow
	FailedRowsCSV string // Path of the failed-rows file, if one was written
	Duration      time.Duration
}

// SkippedCount returns the number of skipped rows.
func (r ImportResult) SkippedCount() int {
	return len(r.Skipped)
}

// ExportResult summarizes one batch export run.
type ExportResult struct {
	File     string
	Columns  []string
	Rows     int
	Duration time.Duration
}

/* ---- Related records ---- */

// Event is one row of the events table.
type Event struct {
	ID          int
	Name        string
	Date        time.Time
	Location    string
	Description string
}

// JobPosting is one row of job_postings joined with the poster's email.
type JobPosting struct {
	ID          int
	PosterEmail string
	Title       string
	Company     string
	Location    string
	Description string
	PostedDate  time.Time
}

// JobHistoryEntry is one row of job_history.
type JobHistoryEntry struct {
	ID        int
	Title     string
	Company   string
	StartDate time.Time
	EndDate   *time.Time // nil while the job is current
}

// Message is one row of alumni_messages.
type Message struct {
	ID      int
	From    string
	To      string
	Content string
	SentAt  time.Time
}

// Achievement is one row of alumni_achievements joined with the alumnus name.
type Achievement struct {
	ID          int
	AlumniName  string
	Title       string
	Description string
	DatePosted  time.Time
}

// RSVPStatus is the answer to an event invitation.
type RSVPStatus string

const (
	RSVPYes   RSVPStatus = "Yes"
	RSVPNo    RSVPStatus = "No"
	RSVPMaybe RSVPStatus = "Maybe"
)

// YearCount is one line of the graduation-year distribution.
type YearCount struct {
	Year  int
	Count int
}

// AlumniReport is the total alumni count and its distribution by year.
type AlumniReport struct {
	Total  int
	ByYear []YearCount
}

// EventParticipation is one line of the event participation report.
type EventParticipation struct {
	EventName string
	Attended  int
}

// EmailConfig is the persisted SMTP configuration.
type EmailConfig struct {
	ID             int
	SMTPServer     string
	SMTPPort       int
	SenderEmail    string
	SenderPassword string
	CreatedAt      time.Time
}

// InvitationResult reports which addresses an invitation run accepted.
type InvitationResult struct {
	Sent    []string
	Invalid []string
}
