package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ProgressRecord tracks per-chapter progress for one user.
type ProgressRecord struct {
	ID        string          `json:"id"`
	UserName  string          `json:"userName"`
	Entries   []ProgressEntry `json:"StatusData"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ProgressEntry is the progress value of a single chapter.
type ProgressEntry struct {
	ChapterName string          `json:"chapterName"`
	Data        decimal.Decimal `json:"data"`
}

// MarshalJSON writes data as a JSON number with the exact decimal digits.
func (e ProgressEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ChapterName string      `json:"chapterName"`
		Data        json.Number `json:"data"`
	}{
		ChapterName: e.ChapterName,
		Data:        json.Number(e.Data.String()),
	})
}

// SetChapter updates the entry for chapterName, appending it when missing.
func (p *ProgressRecord) SetChapter(chapterName string, data decimal.Decimal) {
	for i := range p.Entries {
		if p.Entries[i].ChapterName == chapterName {
			p.Entries[i].Data = data
			return
		}
	}
	p.Entries = append(p.Entries, ProgressEntry{ChapterName: chapterName, Data: data})
}
