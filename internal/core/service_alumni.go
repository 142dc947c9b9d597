package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/alumni/internal/logging"
)

const welcomeSubject = "Welcome to the Alumni Network"

func welcomeBody(rec AlumniRecord) string {
	return fmt.Sprintf("Dear %s,\n\nWelcome to the alumni network! Your profile has been created with %s.\n",
		rec.FullName(), rec.Email)
}

// Register validates and inserts a self-registered alumnus, then sends a
// welcome email. Email failure does not affect the registration.
func (s *Service) Register(ctx context.Context, rec AlumniRecord) (int, error) {
	id, err := s.AddAlumni(ctx, rec)
	if err != nil {
		return 0, err
	}
	s.notifier.Notify(ctx, rec.Email, welcomeSubject, welcomeBody(rec))
	return id, nil
}

// AddAlumni validates and inserts rec. A repeated email returns ErrDuplicate.
func (s *Service) AddAlumni(ctx context.Context, rec AlumniRecord) (int, error) {
	if err := ValidateRecord(rec); err != nil {
		return 0, err
	}

	var id int
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		var err error
		id, err = alumniTx{db: tx}.Insert(ctx, rec)
		return err
	})
	if err != nil {
		return 0, err
	}

	logging.FromContext(ctx).Info("alumnus added", "id", id, "email", rec.Email)
	return id, nil
}

const selectAlumniColumns = `SELECT id, email, first_name, last_name, graduation_year, COALESCE(current_job, '') FROM alumni`

func scanAlumni(rows pgx.Rows) ([]AlumniRecord, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (AlumniRecord, error) {
		var r AlumniRecord
		err := row.Scan(&r.ID, &r.Email, &r.FirstName, &r.LastName, &r.GraduationYear, &r.CurrentJob)
		return r, err
	})
}

func (s *Service) queryAlumni(ctx context.Context, query string, args ...any) ([]AlumniRecord, error) {
	var out []AlumniRecord
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		out, err = scanAlumni(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query alumni: %w", err)
	}
	return out, nil
}

// ListAlumni returns every alumnus ordered by id.
func (s *Service) ListAlumni(ctx context.Context) ([]AlumniRecord, error) {
	return s.queryAlumni(ctx, selectAlumniColumns+` ORDER BY id`)
}

// GetAlumnus returns the alumnus with email, or ErrNotFound.
func (s *Service) GetAlumnus(ctx context.Context, email string) (AlumniRecord, error) {
	recs, err := s.queryAlumni(ctx, selectAlumniColumns+` WHERE email = $1`, email)
	if err != nil {
		return AlumniRecord{}, err
	}
	if len(recs) == 0 {
		return AlumniRecord{}, fmt.Errorf("alumnus %s: %w", email, ErrNotFound)
	}
	return recs[0], nil
}

// AlumnusExists reports whether an alumnus with email is registered.
func (s *Service) AlumnusExists(ctx context.Context, email string) (bool, error) {
	var found bool
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		var err error
		found, err = alumniTx{db: tx}.Exists(ctx, email)
		return err
	})
	return found, err
}

// SearchByName returns alumni whose first or last name contains name,
// ignoring case.
func (s *Service) SearchByName(ctx context.Context, name string) ([]AlumniRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ValidationError{Field: "name", Message: "search term is empty"}
	}
	return s.queryAlumni(ctx,
		selectAlumniColumns+` WHERE first_name ILIKE $1 OR last_name ILIKE $1 ORDER BY last_name, first_name`,
		likePattern(name))
}

// SearchBySkill returns alumni linked to the named skill.
func (s *Service) SearchBySkill(ctx context.Context, skill string) ([]AlumniRecord, error) {
	if !ValidSkillName(skill) {
		return nil, ValidationError{Field: "skill_name", Value: skill, Message: "invalid skill name"}
	}
	return s.queryAlumni(ctx, `
SELECT a.id, a.email, a.first_name, a.last_name, a.graduation_year, COALESCE(a.current_job, '')
FROM alumni a
JOIN alumni_skills ak ON ak.alumnus_id = a.id
JOIN skills sk ON sk.skill_id = ak.skill_id
WHERE lower(sk.skill_name) = lower($1)
ORDER BY a.id`, skill)
}

/* ---- Updates ---- */

// Both statements set every patchable column; NULL parameters keep the
// current value. They return the email before and after the update.
const (
	updateAlumniByIDSQL = `
WITH prev AS (SELECT id, email FROM alumni WHERE id = $1 FOR UPDATE)
UPDATE alumni a SET
	first_name      = COALESCE($2, a.first_name),
	last_name       = COALESCE($3, a.last_name),
	email           = COALESCE($4, a.email),
	graduation_year = COALESCE($5, a.graduation_year),
	current_job     = COALESCE($6, a.current_job)
FROM prev
WHERE a.id = prev.id
RETURNING prev.email, a.email`

	updateAlumniByEmailSQL = `
WITH prev AS (SELECT id, email FROM alumni WHERE email = $1 FOR UPDATE)
UPDATE alumni a SET
	first_name      = COALESCE($2, a.first_name),
	last_name       = COALESCE($3, a.last_name),
	email           = COALESCE($4, a.email),
	graduation_year = COALESCE($5, a.graduation_year),
	current_job     = COALESCE($6, a.current_job)
FROM prev
WHERE a.id = prev.id
RETURNING prev.email, a.email`
)

// Messages, connections, RSVPs and invitations refer to people by email,
// not by alumni id, so they have no foreign key to follow. Invitees need
// not be registered.
var (
	// rekeyEmailSQL moves rows from $1 to $2 after an email change.
	rekeyEmailSQL = []string{
		`UPDATE alumni_messages SET
	sender_email   = CASE WHEN sender_email = $1 THEN $2::text ELSE sender_email END,
	receiver_email = CASE WHEN receiver_email = $1 THEN $2::text ELSE receiver_email END
WHERE sender_email = $1 OR receiver_email = $1`,
		`UPDATE alumni_connections SET
	requester_email = CASE WHEN requester_email = $1 THEN $2::text ELSE requester_email END,
	target_email    = CASE WHEN target_email = $1 THEN $2::text ELSE target_email END
WHERE requester_email = $1 OR target_email = $1`,
		`UPDATE event_rsvps SET attendee_email = $2 WHERE attendee_email = $1`,
		`UPDATE event_invitations SET attendee_email = $2 WHERE attendee_email = $1`,
	}

	// purgeEmailSQL removes rows for $1 when its alumnus is deleted.
	purgeEmailSQL = []string{
		`DELETE FROM alumni_messages WHERE sender_email = $1 OR receiver_email = $1`,
		`DELETE FROM alumni_connections WHERE requester_email = $1 OR target_email = $1`,
		`DELETE FROM event_rsvps WHERE attendee_email = $1`,
		`DELETE FROM event_invitations WHERE attendee_email = $1`,
	}
)

// UpdateAlumni applies patch to the alumnus with id.
func (s *Service) UpdateAlumni(ctx context.Context, id int, patch Patch) error {
	return s.applyPatch(ctx, updateAlumniByIDSQL, id, patch)
}

// UpdateProfile applies patch to the alumnus with email.
func (s *Service) UpdateProfile(ctx context.Context, email string, patch Patch) error {
	return s.applyPatch(ctx, updateAlumniByEmailSQL, email, patch)
}

// applyPatch runs one of the update statements. An email change moves the
// email-keyed rows to the new address in the same transaction.
func (s *Service) applyPatch(ctx context.Context, query string, key any, patch Patch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	args := append([]any{key}, patch.args()...)
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		var oldEmail, newEmail string
		err := tx.QueryRow(ctx, query, args...).Scan(&oldEmail, &newEmail)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return classifyPgError(err)
		}
		if oldEmail == newEmail {
			return nil
		}
		return execEach(ctx, tx, rekeyEmailSQL, oldEmail, newEmail)
	})
	if err != nil {
		return fmt.Errorf("update alumnus %v: %w", key, err)
	}

	logging.FromContext(ctx).Info("alumnus updated", "key", key, "fields", patch.Fields())
	return nil
}

// DeleteAlumni removes the alumnus with id and every row referencing it,
// by id or by email.
func (s *Service) DeleteAlumni(ctx context.Context, id int) error {
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		var email string
		err := tx.QueryRow(ctx, `DELETE FROM alumni WHERE id = $1 RETURNING email`, id).Scan(&email)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return execEach(ctx, tx, purgeEmailSQL, email)
	})
	if err != nil {
		return fmt.Errorf("delete alumnus %d: %w", id, err)
	}

	logging.FromContext(ctx).Info("alumnus deleted", "id", id)
	return nil
}

func execEach(ctx context.Context, tx DBTX, statements []string, args ...any) error {
	for _, q := range statements {
		if _, err := tx.Exec(ctx, q, args...); err != nil {
			return classifyPgError(err)
		}
	}
	return nil
}

// alumnusID resolves email to an alumni id inside tx.
func alumnusID(ctx context.Context, tx DBTX, email string) (int, error) {
	var id int
	err := tx.QueryRow(ctx, `SELECT id FROM alumni WHERE email = $1`, email).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("alumnus %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// likePattern escapes LIKE metacharacters in s and wraps it in %...%.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
