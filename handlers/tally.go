// Copyright (c) 2025 1withyin.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/1withyin/teen-poll/models"
)

// ComputeResults merges the three response tables for a question into
// one per-option tally, ordered lexicographically by option key.
//
// Single-choice responses contribute whole votes (COUNT), checkbox
// responses contribute their fractional weights (SUM(weight)). The
// free-text count becomes an "OTHER" entry only when no "OTHER" key
// exists after that merge: checkbox submissions record their own
// weighted OTHER rows alongside the free-text row, so adding the raw
// count on top would double-count them. Any recorded OTHER vote,
// single-choice or checkbox, claims the key and suppresses the
// free-text count.
//
// Returns ErrQuestionNotFound if the question code is unknown.
func ComputeResults(db *sql.DB, questionCode string) ([]models.OptionCount, error) {
	var known int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM questions WHERE question_code = $1
	`, questionCode).Scan(&known)
	if err != nil {
		return nil, fmt.Errorf("failed to look up question: %w", err)
	}
	if known == 0 {
		return nil, ErrQuestionNotFound
	}

	totals := make(map[string]float64)

	// Whole votes from single-choice responses
	singleCounts, err := groupedTotals(db, `
		SELECT option_select, COUNT(*)
		FROM responses
		WHERE question_code = $1
		GROUP BY option_select
	`, questionCode)
	if err != nil {
		return nil, fmt.Errorf("failed to tally responses: %w", err)
	}
	for key, count := range singleCounts {
		totals[key] += count
	}

	// Fractional votes from checkbox responses
	checkboxWeights, err := groupedTotals(db, `
		SELECT option_select, SUM(weight)
		FROM checkbox_responses
		WHERE question_code = $1
		GROUP BY option_select
	`, questionCode)
	if err != nil {
		return nil, fmt.Errorf("failed to tally checkbox responses: %w", err)
	}
	for key, weight := range checkboxWeights {
		totals[key] += weight
	}

	// Free-text rows count whole unless checkbox OTHER rows already
	// represent them
	var otherCount int
	err = db.QueryRow(`
		SELECT COUNT(*) FROM other_responses WHERE question_code = $1
	`, questionCode).Scan(&otherCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count other responses: %w", err)
	}
	if otherCount > 0 {
		if _, weighted := totals[models.OptionOther]; !weighted {
			totals[models.OptionOther] = float64(otherCount)
		}
	}

	results := make([]models.OptionCount, 0, len(totals))
	for key, count := range totals {
		results = append(results, models.OptionCount{OptionSelect: key, Count: count})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].OptionSelect < results[j].OptionSelect
	})

	return results, nil
}

// groupedTotals runs a two-column (key, total) aggregate query and
// returns it as a map.
func groupedTotals(db *sql.DB, query, questionCode string) (map[string]float64, error) {
	rows, err := db.Query(query, questionCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var key string
		var total float64
		if err := rows.Scan(&key, &total); err != nil {
			return nil, err
		}
		totals[key] = total
	}

	return totals, rows.Err()
}
