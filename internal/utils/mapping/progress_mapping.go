package mapping

import (
	"sort"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
	"github.com/freshmanexams/fe_backend/internal/models"
)

// ToDomainProgress assembles a domain record from its row and entry rows.
// Entries keep their insertion order.
func ToDomainProgress(m models.ProgressRecord, entries []models.ProgressEntry) domain.ProgressRecord {
	sorted := make([]models.ProgressEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	out := make([]domain.ProgressEntry, len(sorted))
	for i, e := range sorted {
		out[i] = domain.ProgressEntry{ChapterName: e.ChapterName, Data: e.Data}
	}
	return domain.ProgressRecord{
		ID:        m.ProgressID,
		UserName:  m.UserName,
		Entries:   out,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToModelProgressEntries flattens the entries of a domain record into rows.
func ToModelProgressEntries(d domain.ProgressRecord) []models.ProgressEntry {
	out := make([]models.ProgressEntry, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = models.ProgressEntry{
			ProgressID:  d.ID,
			Position:    i,
			ChapterName: e.ChapterName,
			Data:        e.Data,
		}
	}
	return out
}
