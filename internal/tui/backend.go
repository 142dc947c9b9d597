package tui

import (
	"context"

	"github.com/JonMunkholm/alumni/internal/admin"
	"github.com/JonMunkholm/alumni/internal/core"
)

// Backend is the set of operations the menus call. *core.Service satisfies it.
type Backend interface {
	Register(ctx context.Context, rec core.AlumniRecord) (int, error)
	AddAlumni(ctx context.Context, rec core.AlumniRecord) (int, error)
	ListAlumni(ctx context.Context) ([]core.AlumniRecord, error)
	AlumnusExists(ctx context.Context, email string) (bool, error)
	SearchByName(ctx context.Context, name string) ([]core.AlumniRecord, error)
	SearchBySkill(ctx context.Context, skill string) ([]core.AlumniRecord, error)
	UpdateAlumni(ctx context.Context, id int, patch core.Patch) error
	UpdateProfile(ctx context.Context, email string, patch core.Patch) error
	DeleteAlumni(ctx context.Context, id int) error

	AddSkillToProfile(ctx context.Context, email, skill string) error
	RemoveSkillFromProfile(ctx context.Context, email, skill string) error
	ListSkills(ctx context.Context, email string) ([]string, error)

	CreateEvent(ctx context.Context, ev core.Event, organizerEmail string) (int, error)
	ListEvents(ctx context.Context) ([]core.Event, error)
	MarkAttendance(ctx context.Context, alumniID, eventID int) error
	RSVP(ctx context.Context, eventID int, email string, status core.RSVPStatus) error
	SendEventInvitations(ctx context.Context, eventID int, emails []string) (core.InvitationResult, error)

	PostJob(ctx context.Context, email string, job core.JobPosting) (int, error)
	ListJobPostings(ctx context.Context) ([]core.JobPosting, error)
	SearchJobs(ctx context.Context, term string) ([]core.JobPosting, error)
	AddJobHistory(ctx context.Context, email string, entry core.JobHistoryEntry) (int, error)
	JobHistory(ctx context.Context, email string) ([]core.JobHistoryEntry, error)

	SendMessage(ctx context.Context, from, to, content string) error
	Inbox(ctx context.Context, email string) ([]core.Message, error)
	Connect(ctx context.Context, requester, target string) error
	AddAchievement(ctx context.Context, email, title, description string) (int, error)
	ListAchievements(ctx context.Context) ([]core.Achievement, error)

	AlumniReport(ctx context.Context) (core.AlumniReport, error)
	EventParticipationReport(ctx context.Context) ([]core.EventParticipation, error)

	ImportCSV(ctx context.Context, path string) (core.ImportResult, error)
	ExportCSV(ctx context.Context, path string) (core.ExportResult, error)

	EmailConfig(ctx context.Context) (core.EmailConfig, error)
	SaveEmailConfig(ctx context.Context, cfg core.EmailConfig) error
}

// Resetter empties the data tables. *admin.ResetDbs satisfies it.
type Resetter interface {
	ResetAll(ctx context.Context, confirmation string) error
}

var (
	_ Backend  = (*core.Service)(nil)
	_ Resetter = (*admin.ResetDbs)(nil)
)
