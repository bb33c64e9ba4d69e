package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"airfoil-lab-service/internal/domain"
)

type ChallengeSeed struct {
	Slug        string                      `json:"slug"`
	Title       string                      `json:"title"`
	Difficulty  string                      `json:"difficulty"`
	Category    string                      `json:"category"`
	Description string                      `json:"description"`
	Constraints domain.ChallengeConstraints `json:"constraints"`
	Hints       []string                    `json:"hints"`
	Points      int                         `json:"points"`
	SortOrder   int                         `json:"sort_order"`
}

func validDifficulty(d string) bool {
	switch d {
	case "easy", "medium", "hard":
		return true
	}
	return false
}

// Populate the challenge catalog from a JSON file. Existing slugs are
// updated in place so reseeding is safe. Returns the number of challenges
// written.
func SeedChallengesFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed challenges: read %q: %w", jsonPath, err)
	}

	var seeds []ChallengeSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return 0, fmt.Errorf("seed challenges: parse json: %w", err)
	}

	for i, s := range seeds {
		if strings.TrimSpace(s.Slug) == "" {
			return 0, fmt.Errorf("seed challenges: entry #%d: slug cannot be empty", i+1)
		}
		if strings.TrimSpace(s.Title) == "" || strings.TrimSpace(s.Description) == "" {
			return 0, fmt.Errorf("seed challenges: entry %q: title and description are required", s.Slug)
		}
		if !validDifficulty(s.Difficulty) {
			return 0, fmt.Errorf("seed challenges: entry %q: unknown difficulty %q", s.Slug, s.Difficulty)
		}
		if s.Points <= 0 {
			return 0, fmt.Errorf("seed challenges: entry %q: points must be positive", s.Slug)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed challenges: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO challenges (slug, title, difficulty, category, description, constraints, hints, points, sort_order, active)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
	ON CONFLICT (slug) DO UPDATE SET
		title = EXCLUDED.title,
		difficulty = EXCLUDED.difficulty,
		category = EXCLUDED.category,
		description = EXCLUDED.description,
		constraints = EXCLUDED.constraints,
		hints = EXCLUDED.hints,
		points = EXCLUDED.points,
		sort_order = EXCLUDED.sort_order,
		active = true;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("seed challenges: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, s := range seeds {
		constraints, err := json.Marshal(s.Constraints)
		if err != nil {
			return 0, fmt.Errorf("seed challenges: encode constraints for %q: %w", s.Slug, err)
		}
		hints := s.Hints
		if hints == nil {
			hints = []string{}
		}
		hintsJSON, err := json.Marshal(hints)
		if err != nil {
			return 0, fmt.Errorf("seed challenges: encode hints for %q: %w", s.Slug, err)
		}

		if _, err := stmt.ExecContext(ctx,
			s.Slug, s.Title, s.Difficulty, s.Category, s.Description,
			constraints, hintsJSON, s.Points, s.SortOrder,
		); err != nil {
			return 0, fmt.Errorf("seed challenges: upsert %q: %w", s.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed challenges: commit tx: %w", err)
	}

	return len(seeds), nil
}
