package repo

import (
	"context"
	"database/sql"
	"encoding/json"
)

// Assessment is a stored readiness assessment.
type Assessment struct {
	ID        string `json:"id"`
	Score     int    `json:"score"`
	Level     string `json:"level"`
	Answers   []int  `json:"answers"`
	CreatedAt string `json:"created_at" format:"date-time"`
}

func (r Repo) InsertAssessment(ctx context.Context, tx *sql.Tx, a Assessment) error {
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO assessments(id,score,level,answers_json,created_at) VALUES (?,?,?,?,?)`,
		a.ID, a.Score, a.Level, string(answers), a.CreatedAt)
	return err
}

func (r Repo) ListAssessments(ctx context.Context, limit int) ([]Assessment, error) {
	query := `SELECT id,score,level,answers_json,created_at FROM assessments ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []Assessment{}
	for rows.Next() {
		var (
			a       Assessment
			answers string
		)
		if err := rows.Scan(&a.ID, &a.Score, &a.Level, &answers, &a.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(answers), &a.Answers); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}
