package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

const upsertSkillSQL = `
INSERT INTO skills (skill_name) VALUES ($1)
ON CONFLICT (skill_name) DO UPDATE SET skill_name = EXCLUDED.skill_name
RETURNING skill_id`

func checkSkill(name string) (string, error) {
	name = strings.TrimSpace(name)
	if !ValidSkillName(name) {
		return "", ValidationError{Field: "skill_name", Value: name, Message: "may contain letters, digits, spaces and . , ( ) - only"}
	}
	return name, nil
}

// AddSkill records a skill name. Adding an existing name is a no-op.
func (s *Service) AddSkill(ctx context.Context, name string) (int, error) {
	name, err := checkSkill(name)
	if err != nil {
		return 0, err
	}

	var id int
	err = s.store.InTx(ctx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, upsertSkillSQL, name).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("add skill %q: %w", name, err)
	}
	return id, nil
}

// AddSkillToProfile links a skill to the alumnus with email, creating the
// skill if needed.
func (s *Service) AddSkillToProfile(ctx context.Context, email, skill string) error {
	skill, err := checkSkill(skill)
	if err != nil {
		return err
	}

	return s.store.InTx(ctx, func(tx pgx.Tx) error {
		aid, err := alumnusID(ctx, tx, email)
		if err != nil {
			return err
		}
		var sid int
		if err := tx.QueryRow(ctx, upsertSkillSQL, skill).Scan(&sid); err != nil {
			return fmt.Errorf("add skill %q: %w", skill, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO alumni_skills (alumnus_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			aid, sid)
		return err
	})
}

// RemoveSkillFromProfile unlinks a skill from the alumnus with email.
// Returns ErrNotFound if the alumnus does not have the skill.
func (s *Service) RemoveSkillFromProfile(ctx context.Context, email, skill string) error {
	return s.store.InTx(ctx, func(tx pgx.Tx) error {
		aid, err := alumnusID(ctx, tx, email)
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `
DELETE FROM alumni_skills ak
USING skills sk
WHERE ak.skill_id = sk.skill_id AND ak.alumnus_id = $1 AND lower(sk.skill_name) = lower($2)`,
			aid, strings.TrimSpace(skill))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("skill %q on %s: %w", skill, email, ErrNotFound)
		}
		return nil
	})
}

// ListSkills returns the skill names linked to the alumnus with email.
func (s *Service) ListSkills(ctx context.Context, email string) ([]string, error) {
	var out []string
	err := s.store.InTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
SELECT sk.skill_name
FROM skills sk
JOIN alumni_skills ak ON ak.skill_id = sk.skill_id
JOIN alumni a ON a.id = ak.alumnus_id
WHERE a.email = $1
ORDER BY sk.skill_name`, email)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	})
	return out, err
}
