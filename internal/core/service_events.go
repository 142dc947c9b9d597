package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/alumni/internal/logging"
)

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ValidationError{Field: field, Value: s, Message: "use YYYY-MM-DD"}
	}
	return t, nil
}

// CreateEvent validates and stores a new event.
func (s *Service) CreateEvent(ctx context.Context, ev Event, organizerEmail string) (int, error) {
	if !ValidEventName(ev.Name) {
		return 0, ValidationError{Field: "event_name", Value: ev.Name, Message: "may contain letters, digits, spaces and . , ( ) - only"}
	}
	if !ValidEventDescription(ev.Description) {
		return 0, ValidationError{Field: "description", Message: "is required"}
	}
	if ev.Date.IsZero() {
		return 0, ValidationError{Field: "event_date", Message: "is required"}
	}
	if organizerEmail != "" && !ValidEmail(organizerEmail) {
		return 0, CheckEmail(organizerEmail)
	}

	var id int
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
INSERT INTO events (event_name, event_date, location, description, organizer_email)
VALUES ($1, $2, $3, $4, $5)
RETURNING event_id`,
			ev.Name, ev.Date, nullIfEmpty(ev.Location), strings.TrimSpace(ev.Description), nullIfEmpty(organizerEmail),
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("create event %q: %w", ev.Name, err)
	}

	logging.FromContext(ctx).Info("event created", "event_id", id, "name", ev.Name)
	return id, nil
}

// ListEvents returns all events, soonest first.
func (s *Service) ListEvents(ctx context.Context) ([]Event, error) {
	var out []Event
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
SELECT event_id, event_name, event_date, COALESCE(location, ''), description
FROM events ORDER BY event_date, event_id`)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (Event, error) {
			var e Event
			err := row.Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.Description)
			return e, err
		})
		return err
	})
	return out, err
}

// MarkAttendance records that an alumnus attended an event. Marking twice
// is a no-op.
func (s *Service) MarkAttendance(ctx context.Context, alumniID, eventID int) error {
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO event_attendance (alumnus_id, event_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			alumniID, eventID)
		return err
	})
	if err != nil {
		return fmt.Errorf("mark attendance alumnus %d event %d: %w", alumniID, eventID, err)
	}
	return nil
}

// ParseRSVPStatus accepts yes/no/maybe in any case.
func ParseRSVPStatus(s string) (RSVPStatus, error) {
	for _, st := range []RSVPStatus{RSVPYes, RSVPNo, RSVPMaybe} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", ValidationError{Field: "rsvp_status", Value: s, Message: "must be Yes, No or Maybe"}
}

// RSVP records or replaces email's answer for an event.
func (s *Service) RSVP(ctx context.Context, eventID int, email string, status RSVPStatus) error {
	if err := CheckEmail(email); err != nil {
		return err
	}
	if _, err := ParseRSVPStatus(string(status)); err != nil {
		return err
	}

	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
INSERT INTO event_rsvps (event_id, attendee_email, rsvp_status)
VALUES ($1, $2, $3)
ON CONFLICT (event_id, attendee_email)
DO UPDATE SET rsvp_status = EXCLUDED.rsvp_status, responded_at = now()`,
			eventID, email, string(status))
		return err
	})
	if err != nil {
		return fmt.Errorf("rsvp event %d: %w", eventID, err)
	}
	return nil
}

// SendEventInvitations records an invitation for every valid address and
// emails it. Invalid addresses are returned in the result, not as an error.
func (s *Service) SendEventInvitations(ctx context.Context, eventID int, emails []string) (InvitationResult, error) {
	var result InvitationResult
	var ev Event

	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`SELECT event_id, event_name, event_date, COALESCE(location, ''), description FROM events WHERE event_id = $1`,
			eventID,
		).Scan(&ev.ID, &ev.Name, &ev.Date, &ev.Location, &ev.Description)
		if err != nil {
			return classifyPgError(err)
		}

		for _, raw := range emails {
			email := strings.TrimSpace(raw)
			if email == "" {
				continue
			}
			if !ValidEmail(email) {
				result.Invalid = append(result.Invalid, email)
				continue
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO event_invitations (event_id, attendee_email) VALUES ($1, $2)`,
				eventID, email); err != nil {
				return err
			}
			result.Sent = append(result.Sent, email)
		}
		return nil
	})
	if err != nil {
		return InvitationResult{}, fmt.Errorf("invite to event %d: %w", eventID, err)
	}

	subject := "Invitation: " + ev.Name
	body := fmt.Sprintf("You are invited to %s on %s.\n\n%s\n", ev.Name, ev.Date.Format(time.DateOnly), ev.Description)
	for _, email := range result.Sent {
		s.notifier.Notify(ctx, email, subject, body)
	}

	logging.FromContext(ctx).Info("invitations sent",
		"event_id", eventID, "sent", len(result.Sent), "invalid", len(result.Invalid))
	return result, nil
}
