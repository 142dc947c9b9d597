package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/alumni/internal/core"
)

// Actions of the alumni menu all act on the logged-in email.

func (m *Model) updateProfileForm() tea.Cmd {
	email := m.session.email
	return m.openForm(newForm("Update Profile", patchFields(), func(v Values) (tea.Cmd, error) {
		patch := patchFromValues(v)
		if len(patch) == 0 {
			return nil, errEmptyPatch
		}
		cmd := m.run("Updating profile", func(ctx context.Context) (string, error) {
			if err := m.backend.UpdateProfile(ctx, email, patch); err != nil {
				return "", err
			}
			return "Profile updated.", nil
		})
		next, ok := patch[core.PatchEmail]
		if !ok {
			return cmd, nil
		}
		return func() tea.Msg {
			msg := cmd()
			if done, ok := msg.(DoneMsg); ok {
				return emailChanged{email: next, text: string(done)}
			}
			return msg
		}, nil
	}))
}

// emailChanged is delivered when an alumnus changed their own email.
type emailChanged struct {
	email string
	text  string
}

/* ---- Skills ---- */

func (m *Model) viewMySkills() tea.Cmd {
	email := m.session.email
	return m.run("Loading skills", func(ctx context.Context) (string, error) {
		skills, err := m.backend.ListSkills(ctx, email)
		if err != nil {
			return "", err
		}
		if len(skills) == 0 {
			return "No skills on your profile.", nil
		}
		return "Skills: " + strings.Join(skills, ", "), nil
	})
}

func (m *Model) addSkillForm() tea.Cmd {
	email := m.session.email
	return m.openForm(newForm("Add Skill", []Field{
		{Key: "skill", Label: "Skill", Check: checkSkill},
	}, func(v Values) (tea.Cmd, error) {
		return m.run("Adding skill", func(ctx context.Context) (string, error) {
			if err := m.backend.AddSkillToProfile(ctx, email, v["skill"]); err != nil {
				return "", err
			}
			return fmt.Sprintf("Skill %q added.", v["skill"]), nil
		}), nil
	}))
}

func (m *Model) removeSkillForm() tea.Cmd {
	email := m.session.email
	return m.openForm(newForm("Remove Skill", []Field{
		{Key: "skill", Label: "Skill", Check: checkSkill},
	}, func(v Values) (tea.Cmd, error) {
		return m.run("Removing skill", func(ctx context.Context) (string, error) {
			if err := m.backend.RemoveSkillFromProfile(ctx, email, v["skill"]); err != nil {
				return "", err
			}
			return fmt.Sprintf("Skill %q removed.", v["skill"]), nil
		}), nil
	}))
}

/* ---- Jobs ---- */

func (m *Model) postJobForm() tea.Cmd {
	email := m.session.email
	return m.openForm(newForm("Post Job", jobFields(), func(v Values) (tea.Cmd, error) {
		return m.postJob(email, jobFromValues(v)), nil
	}))
}

func (m *Model) addJobHistoryForm() tea.Cmd {
	email := m.session.email
	return m.openForm(newForm("Add Job History", []Field{
		{Key: "title", Label: "Position", Check: checkJobTitle},
		{Key: "company", Label: "Company"},
		{Key: "start", Label: "Start date (YYYY-MM-DD)", Check: checkDate},
		{Key: "end", Label: "End date (YYYY-MM-DD)", Optional: true, Check: checkDate},
	}, func(v Values) (tea.Cmd, error) {
		entry := core.JobHistoryEntry{Title: v["title"], Company: v["company"]}
		entry.StartDate, _ = core.ParseDate("start_date", v["start"])
		if v["end"] != "" {
			end, _ := core.ParseDate("end_date", v["end"])
			if end.Before(entry.StartDate) {
				return nil, core.ValidationError{Field: "end_date", Value: v["end"], Message: "is before start date"}
			}
			entry.EndDate = &end
		}
		return m.run("Adding job history", func(ctx context.Context) (string, error) {
			if _, err := m.backend.AddJobHistory(ctx, email, entry); err != nil {
				return "", err
			}
			return fmt.Sprintf("Added %s at %s.", entry.Title, entry.Company), nil
		}), nil
	}))
}

func (m *Model) viewJobHistory() tea.Cmd {
	email := m.session.email
	return m.run("Loading job history", func(ctx context.Context) (string, error) {
		list, err := m.backend.JobHistory(ctx, email)
		if err != nil {
			return "", err
		}
		return renderJobHistory(list), nil
	})
}

/* ---- Events ---- */

func (m *Model) rsvpForm() tea.Cmd {
	email := m.session.email
	return m.openForm(newForm("RSVP Event", []Field{
		{Key: "event_id", Label: "Event ID", Check: checkID},
		{Key: "status", Label: "Attending? (Yes/No/Maybe)", Check: checkRSVP},
	}, func(v Values) (tea.Cmd, error) {
		eventID, _ := parseID(v["event_id"])
		status, _ := core.ParseRSVPStatus(v["status"])
		return m.run("Saving RSVP", func(ctx context.Context) (string, error) {
			if err := m.backend.RSVP(ctx, eventID, email, status); err != nil {
				return "", err
			}
			return fmt.Sprintf("RSVP %s recorded for event %d.", status, eventID), nil
		}), nil
	}))
}

/* ---- Messages ---- */

func (m *Model) sendMessageForm() tea.Cmd {
	email := m.session.email
	return m.openForm(newForm("Send Message", []Field{
		{Key: "to", Label: "To (email)", Check: core.CheckEmail},
		{Key: "message", Label: "Message"},
	}, func(v Values) (tea.Cmd, error) {
		return m.run("Sending message", func(ctx context.Context) (string, error) {
			if err := m.backend.SendMessage(ctx, email, v["to"], v["message"]); err != nil {
				return "", err
			}
			return "Message sent to " + v["to"] + ".", nil
		}), nil
	}))
}

func (m *Model) viewInbox() tea.Cmd {
	email := m.session.email
	return m.run("Loading inbox", func(ctx context.Context) (string, error) {
		list, err := m.backend.Inbox(ctx, email)
		if err != nil {
			return "", err
		}
		return renderInbox(list), nil
	})
}

func (m *Model) connectForm() tea.Cmd {
	email := m.session.email
	return m.openForm(newForm("Connect", []Field{
		{Key: "target", Label: "Alumnus email", Check: core.CheckEmail},
	}, func(v Values) (tea.Cmd, error) {
		return m.run("Connecting", func(ctx context.Context) (string, error) {
			if err := m.backend.Connect(ctx, email, v["target"]); err != nil {
				return "", err
			}
			return "Connected with " + v["target"] + ".", nil
		}), nil
	}))
}

/* ---- Achievements ---- */

func (m *Model) addAchievementForm() tea.Cmd {
	email := m.session.email
	return m.openForm(newForm("Add Achievement", []Field{
		{Key: "title", Label: "Title"},
		{Key: "description", Label: "Description", Optional: true},
	}, func(v Values) (tea.Cmd, error) {
		return m.run("Posting achievement", func(ctx context.Context) (string, error) {
			if _, err := m.backend.AddAchievement(ctx, email, v["title"], v["description"]); err != nil {
				return "", err
			}
			return fmt.Sprintf("Achievement %q posted.", v["title"]), nil
		}), nil
	}))
}

func (m *Model) viewAchievements() tea.Cmd {
	return m.run("Loading achievements", func(ctx context.Context) (string, error) {
		list, err := m.backend.ListAchievements(ctx)
		if err != nil {
			return "", err
		}
		return renderAchievements(list), nil
	})
}
