package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/JonMunkholm/alumni/internal/core"
)

// maxSkippedShown limits the skipped rows listed after an import.
const maxSkippedShown = 20

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}

func renderAlumni(list []core.AlumniRecord) string {
	if len(list) == 0 {
		return "No alumni found."
	}
	rows := make([][]string, len(list))
	for i, a := range list {
		rows[i] = []string{strconv.Itoa(a.ID), a.FullName(), a.Email, strconv.Itoa(a.GraduationYear), a.CurrentJob}
	}
	return renderTable([]string{"ID", "Name", "Email", "Year", "Current Job"}, rows)
}

func renderEvents(list []core.Event) string {
	if len(list) == 0 {
		return "No events found."
	}
	rows := make([][]string, len(list))
	for i, e := range list {
		rows[i] = []string{strconv.Itoa(e.ID), e.Name, e.Date.Format(time.DateOnly), e.Location, e.Description}
	}
	return renderTable([]string{"ID", "Event", "Date", "Location", "Description"}, rows)
}

func renderJobs(list []core.JobPosting) string {
	if len(list) == 0 {
		return "No job postings found."
	}
	rows := make([][]string, len(list))
	for i, j := range list {
		rows[i] = []string{strconv.Itoa(j.ID), j.Title, j.Company, j.Location, j.PosterEmail, j.PostedDate.Format(time.DateOnly)}
	}
	return renderTable([]string{"ID", "Title", "Company", "Location", "Posted By", "Posted"}, rows)
}

func renderJobHistory(list []core.JobHistoryEntry) string {
	if len(list) == 0 {
		return "No job history recorded."
	}
	rows := make([][]string, len(list))
	for i, h := range list {
		end := "present"
		if h.EndDate != nil {
			end = h.EndDate.Format(time.DateOnly)
		}
		rows[i] = []string{h.Title, h.Company, h.StartDate.Format(time.DateOnly), end}
	}
	return renderTable([]string{"Position", "Company", "Start", "End"}, rows)
}

func renderInbox(list []core.Message) string {
	if len(list) == 0 {
		return "Inbox is empty."
	}
	rows := make([][]string, len(list))
	for i, msg := range list {
		rows[i] = []string{msg.SentAt.Format(time.DateTime), msg.From, msg.Content}
	}
	return renderTable([]string{"Sent", "From", "Message"}, rows)
}

func renderAchievements(list []core.Achievement) string {
	if len(list) == 0 {
		return "No achievements posted."
	}
	rows := make([][]string, len(list))
	for i, a := range list {
		rows[i] = []string{a.DatePosted.Format(time.DateOnly), a.AlumniName, a.Title, a.Description}
	}
	return renderTable([]string{"Date", "Alumnus", "Title", "Description"}, rows)
}

func renderAlumniReport(r core.AlumniReport) string {
	rows := make([][]string, len(r.ByYear))
	for i, y := range r.ByYear {
		rows[i] = []string{strconv.Itoa(y.Year), strconv.Itoa(y.Count)}
	}
	return fmt.Sprintf("Total alumni: %d\n%s", r.Total, renderTable([]string{"Graduation Year", "Alumni"}, rows))
}

func renderParticipation(list []core.EventParticipation) string {
	if len(list) == 0 {
		return "No attendance recorded."
	}
	rows := make([][]string, len(list))
	for i, p := range list {
		rows[i] = []string{p.EventName, strconv.Itoa(p.Attended)}
	}
	return renderTable([]string{"Event", "Attendees"}, rows)
}

func renderImport(r core.ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported %s from %s, skipped %s.\n",
		plural(r.Inserted, "record"), r.File, plural(r.SkippedCount(), "row"))

	for i, s := range r.Skipped {
		if i == maxSkippedShown {
			fmt.Fprintf(&b, "... and %d more\n", len(r.Skipped)-maxSkippedShown)
			break
		}
		fmt.Fprintf(&b, "  line %d (%s): %s\n", s.Line, s.Email, s.Reason)
	}
	if r.FailedRowsCSV != "" {
		fmt.Fprintf(&b, "Skipped rows written to %s\n", r.FailedRowsCSV)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderInvitations(r core.InvitationResult) string {
	out := fmt.Sprintf("Sent %s.", plural(len(r.Sent), "invitation"))
	if len(r.Invalid) > 0 {
		out += "\nInvalid addresses: " + strings.Join(r.Invalid, ", ")
	}
	return out
}
