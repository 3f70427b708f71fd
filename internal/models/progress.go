package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProgressRecord is the row layout of the progress_records table.
type ProgressRecord struct {
	ProgressID string    `db:"progress_id"`
	UserName   string    `db:"user_name"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// ProgressEntry is the row layout of the progress_entries table.
type ProgressEntry struct {
	ProgressID  string          `db:"progress_id"`
	Position    int             `db:"position"`
	ChapterName string          `db:"chapter_name"`
	Data        decimal.Decimal `db:"data"`
}
