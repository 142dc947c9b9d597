package tui

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/alumni/internal/admin"
	"github.com/JonMunkholm/alumni/internal/core"
)

// recordFields are the prompts for a full alumni record.
func recordFields() []Field {
	return []Field{
		{Key: core.ColFirstName, Label: "First name", Check: checkName},
		{Key: core.ColLastName, Label: "Last name", Check: checkName},
		{Key: core.ColEmail, Label: "Email", Check: core.CheckEmail},
		{Key: core.ColGraduationYear, Label: "Graduation year", Check: core.CheckGraduationYear},
		{Key: core.ColCurrentJob, Label: "Current job", Optional: true, Check: checkJobTitle},
	}
}

func recordFromValues(v Values) core.AlumniRecord {
	return core.AlumniRecord{
		FirstName:      v[core.ColFirstName],
		LastName:       v[core.ColLastName],
		Email:          v[core.ColEmail],
		GraduationYear: yearOrZero(v[core.ColGraduationYear]),
		CurrentJob:     v[core.ColCurrentJob],
	}
}

// patchFields are the prompts of an update form. Every field is optional.
func patchFields() []Field {
	return []Field{
		{Key: string(core.PatchFirstName), Label: "New first name", Optional: true, Check: checkName},
		{Key: string(core.PatchLastName), Label: "New last name", Optional: true, Check: checkName},
		{Key: string(core.PatchEmail), Label: "New email", Optional: true, Check: core.CheckEmail},
		{Key: string(core.PatchGraduationYear), Label: "New graduation year", Optional: true, Check: core.CheckGraduationYear},
		{Key: string(core.PatchCurrentJob), Label: "New current job", Optional: true, Check: checkJobTitle},
	}
}

func patchFromValues(v Values) core.Patch {
	p := core.Patch{}
	for _, f := range core.PatchFields {
		p.Set(f, v[string(f)])
	}
	return p
}

var errEmptyPatch = core.ValidationError{Message: "enter at least one new value"}

/* ----------------------------------------
	ALUMNI
---------------------------------------- */

func (m *Model) registerForm() tea.Cmd {
	return m.openForm(newForm("Alumni Registration", recordFields(), func(v Values) (tea.Cmd, error) {
		rec := recordFromValues(v)
		return m.run("Registering", func(ctx context.Context) (string, error) {
			if _, err := m.backend.Register(ctx, rec); err != nil {
				return "", err
			}
			return fmt.Sprintf("Welcome, %s! You can now log in with %s.", rec.FirstName, rec.Email), nil
		}), nil
	}))
}

func (m *Model) addAlumniForm() tea.Cmd {
	return m.openForm(newForm("Add Alumni", recordFields(), func(v Values) (tea.Cmd, error) {
		rec := recordFromValues(v)
		return m.run("Adding alumnus", func(ctx context.Context) (string, error) {
			id, err := m.backend.AddAlumni(ctx, rec)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Added %s with ID %d.", rec.FullName(), id), nil
		}), nil
	}))
}

func (m *Model) viewAlumni() tea.Cmd {
	return m.run("Loading alumni", func(ctx context.Context) (string, error) {
		list, err := m.backend.ListAlumni(ctx)
		if err != nil {
			return "", err
		}
		return renderAlumni(list), nil
	})
}

func (m *Model) updateAlumniForm() tea.Cmd {
	fields := append([]Field{{Key: "id", Label: "Alumni ID", Check: checkID}}, patchFields()...)
	return m.openForm(newForm("Update Alumni", fields, func(v Values) (tea.Cmd, error) {
		patch := patchFromValues(v)
		if len(patch) == 0 {
			return nil, errEmptyPatch
		}
		id, _ := parseID(v["id"])
		return m.run("Updating alumnus", func(ctx context.Context) (string, error) {
			if err := m.backend.UpdateAlumni(ctx, id, patch); err != nil {
				return "", err
			}
			return fmt.Sprintf("Alumnus %d updated.", id), nil
		}), nil
	}))
}

func (m *Model) deleteAlumniForm() tea.Cmd {
	return m.openForm(newForm("Delete Alumni", []Field{
		{Key: "id", Label: "Alumni ID", Check: checkID},
	}, func(v Values) (tea.Cmd, error) {
		id, _ := parseID(v["id"])
		return m.run("Deleting alumnus", func(ctx context.Context) (string, error) {
			if err := m.backend.DeleteAlumni(ctx, id); err != nil {
				return "", err
			}
			return fmt.Sprintf("Alumnus %d deleted.", id), nil
		}), nil
	}))
}

func (m *Model) searchByNameForm() tea.Cmd {
	return m.openForm(newForm("Search Alumni by Name", []Field{
		{Key: "name", Label: "Name"},
	}, func(v Values) (tea.Cmd, error) {
		return m.run("Searching", func(ctx context.Context) (string, error) {
			list, err := m.backend.SearchByName(ctx, v["name"])
			if err != nil {
				return "", err
			}
			return renderAlumni(list), nil
		}), nil
	}))
}

func (m *Model) searchBySkillForm() tea.Cmd {
	return m.openForm(newForm("Search Alumni by Skill", []Field{
		{Key: "skill", Label: "Skill", Check: checkSkill},
	}, func(v Values) (tea.Cmd, error) {
		return m.run("Searching", func(ctx context.Context) (string, error) {
			list, err := m.backend.SearchBySkill(ctx, v["skill"])
			if err != nil {
				return "", err
			}
			return renderAlumni(list), nil
		}), nil
	}))
}

/* ----------------------------------------
	EVENTS
---------------------------------------- */

func (m *Model) addEventForm() tea.Cmd {
	return m.openForm(newForm("Add Event", []Field{
		{Key: "name", Label: "Event name", Check: checkEventName},
		{Key: "date", Label: "Date (YYYY-MM-DD)", Check: checkDate},
		{Key: "location", Label: "Location", Optional: true},
		{Key: "description", Label: "Description"},
		{Key: "organizer", Label: "Organizer email", Optional: true, Check: core.CheckEmail},
	}, func(v Values) (tea.Cmd, error) {
		date, err := core.ParseDate("event_date", v["date"])
		if err != nil {
			return nil, err
		}
		ev := core.Event{Name: v["name"], Date: date, Location: v["location"], Description: v["description"]}
		return m.run("Creating event", func(ctx context.Context) (string, error) {
			id, err := m.backend.CreateEvent(ctx, ev, v["organizer"])
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Event %q created with ID %d.", ev.Name, id), nil
		}), nil
	}))
}

func (m *Model) viewEvents() tea.Cmd {
	return m.run("Loading events", func(ctx context.Context) (string, error) {
		list, err := m.backend.ListEvents(ctx)
		if err != nil {
			return "", err
		}
		return renderEvents(list), nil
	})
}

func (m *Model) markAttendanceForm() tea.Cmd {
	return m.openForm(newForm("Mark Attendance", []Field{
		{Key: "alumni_id", Label: "Alumni ID", Check: checkID},
		{Key: "event_id", Label: "Event ID", Check: checkID},
	}, func(v Values) (tea.Cmd, error) {
		alumniID, _ := parseID(v["alumni_id"])
		eventID, _ := parseID(v["event_id"])
		return m.run("Marking attendance", func(ctx context.Context) (string, error) {
			if err := m.backend.MarkAttendance(ctx, alumniID, eventID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Alumnus %d marked as attending event %d.", alumniID, eventID), nil
		}), nil
	}))
}

func (m *Model) sendInvitationsForm() tea.Cmd {
	return m.openForm(newForm("Send Event Invitations", []Field{
		{Key: "event_id", Label: "Event ID", Check: checkID},
		{Key: "emails", Label: "Emails (comma separated)"},
	}, func(v Values) (tea.Cmd, error) {
		eventID, _ := parseID(v["event_id"])
		emails := splitEmails(v["emails"])
		return m.run("Sending invitations", func(ctx context.Context) (string, error) {
			res, err := m.backend.SendEventInvitations(ctx, eventID, emails)
			if err != nil {
				return "", err
			}
			return renderInvitations(res), nil
		}), nil
	}))
}

/* ----------------------------------------
	JOBS
---------------------------------------- */

func jobFields() []Field {
	return []Field{
		{Key: "title", Label: "Job title", Check: checkJobTitle},
		{Key: "company", Label: "Company"},
		{Key: "location", Label: "Location", Optional: true},
		{Key: "description", Label: "Description"},
	}
}

func jobFromValues(v Values) core.JobPosting {
	return core.JobPosting{
		Title:       v["title"],
		Company:     v["company"],
		Location:    v["location"],
		Description: v["description"],
	}
}

func (m *Model) postJob(email string, job core.JobPosting) tea.Cmd {
	return m.run("Posting job", func(ctx context.Context) (string, error) {
		id, err := m.backend.PostJob(ctx, email, job)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Job %q posted with ID %d.", job.Title, id), nil
	})
}

func (m *Model) adminPostJobForm() tea.Cmd {
	fields := append([]Field{{Key: "email", Label: "Poster email", Check: core.CheckEmail}}, jobFields()...)
	return m.openForm(newForm("Post Job", fields, func(v Values) (tea.Cmd, error) {
		return m.postJob(v["email"], jobFromValues(v)), nil
	}))
}

func (m *Model) searchJobsForm() tea.Cmd {
	return m.openForm(newForm("Search Jobs", []Field{
		{Key: "term", Label: "Search term"},
	}, func(v Values) (tea.Cmd, error) {
		return m.run("Searching jobs", func(ctx context.Context) (string, error) {
			list, err := m.backend.SearchJobs(ctx, v["term"])
			if err != nil {
				return "", err
			}
			return renderJobs(list), nil
		}), nil
	}))
}

func (m *Model) viewJobs() tea.Cmd {
	return m.run("Loading job postings", func(ctx context.Context) (string, error) {
		list, err := m.backend.ListJobPostings(ctx)
		if err != nil {
			return "", err
		}
		return renderJobs(list), nil
	})
}

/* ----------------------------------------
	REPORTS
---------------------------------------- */

func (m *Model) alumniReport() tea.Cmd {
	return m.run("Building alumni report", func(ctx context.Context) (string, error) {
		r, err := m.backend.AlumniReport(ctx)
		if err != nil {
			return "", err
		}
		return renderAlumniReport(r), nil
	})
}

func (m *Model) participationReport() tea.Cmd {
	return m.run("Building participation report", func(ctx context.Context) (string, error) {
		list, err := m.backend.EventParticipationReport(ctx)
		if err != nil {
			return "", err
		}
		return renderParticipation(list), nil
	})
}

/* ----------------------------------------
	DATA
---------------------------------------- */

func (m *Model) importForm() tea.Cmd {
	return m.openForm(newForm("Batch Import", []Field{
		{Key: "path", Label: "CSV file path"},
	}, func(v Values) (tea.Cmd, error) {
		return m.run("Importing "+v["path"], func(ctx context.Context) (string, error) {
			res, err := m.backend.ImportCSV(ctx, v["path"])
			if err != nil {
				return "", err
			}
			return renderImport(res), nil
		}), nil
	}))
}

func (m *Model) exportForm() tea.Cmd {
	return m.openForm(newForm("Batch Export", []Field{
		{Key: "path", Label: "Output file path"},
	}, func(v Values) (tea.Cmd, error) {
		return m.run("Exporting to "+v["path"], func(ctx context.Context) (string, error) {
			res, err := m.backend.ExportCSV(ctx, v["path"])
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Exported %s to %s.", plural(res.Rows, "record"), res.File), nil
		}), nil
	}))
}

func (m *Model) resetForm() tea.Cmd {
	return m.openForm(newForm("Reset All Data", []Field{
		{Key: "confirm", Label: "Type " + admin.ResetConfirmation + " to delete all alumni data"},
	}, func(v Values) (tea.Cmd, error) {
		if v["confirm"] != admin.ResetConfirmation {
			m.form = nil
			m.screen = screenMenu
			return nil, nil
		}
		return m.run("Resetting data", func(ctx context.Context) (string, error) {
			if err := m.resetter.ResetAll(ctx, v["confirm"]); err != nil {
				return "", err
			}
			return "All alumni data reset.", nil
		}), nil
	}))
}

func (m *Model) emailConfigForm() tea.Cmd {
	return m.openForm(newForm("Email Configuration", []Field{
		{Key: "host", Label: "SMTP server"},
		{Key: "port", Label: "SMTP port", Check: checkPort},
		{Key: "email", Label: "Sender email", Check: core.CheckEmail},
		{Key: "password", Label: "Sender password", Secret: true},
	}, func(v Values) (tea.Cmd, error) {
		port, _ := strconv.Atoi(v["port"])
		cfg := core.EmailConfig{
			SMTPServer:     v["host"],
			SMTPPort:       port,
			SenderEmail:    v["email"],
			SenderPassword: v["password"],
		}
		return m.run("Saving email configuration", func(ctx context.Context) (string, error) {
			if err := m.backend.SaveEmailConfig(ctx, cfg); err != nil {
				return "", err
			}
			return fmt.Sprintf("Email configuration saved for %s via %s:%d.", cfg.SenderEmail, cfg.SMTPServer, cfg.SMTPPort), nil
		}), nil
	}))
}
