package timeline

import (
	"context"

	"github.com/heartmarshall/family-timeline/internal/domain"
)

// SaveEntry creates or updates an entry. Content and Date are mandatory;
// a present ID selects update with a partial field set, otherwise a new row
// is inserted with type/status defaulting to daily/completed.
func (s *Service) SaveEntry(ctx context.Context, in EntryInput) (*domain.Entry, error) {
	if in.Content == "" || in.Date == nil {
		return nil, domain.NewValidationError("Content and date are required")
	}

	entryType, status, err := resolveTypeStatus(in.Type, in.Status)
	if err != nil {
		return nil, err
	}

	if in.ID != nil {
		params := domain.EntryUpdate{
			Title:   in.Title,
			Content: &in.Content,
			Date:    in.Date,
		}
		if in.Type != "" {
			params.Type = &entryType
		}
		if in.Status != "" {
			params.Status = &status
		}
		return s.entries.Update(ctx, *in.ID, params)
	}

	entry := domain.Entry{
		Title:   in.Title,
		Content: in.Content,
		Date:    *in.Date,
		Type:    entryType,
		Status:  status,
	}
	return s.entries.Insert(ctx, entry)
}

// resolveTypeStatus validates the optional type/status strings and applies
// the daily/completed defaults.
func resolveTypeStatus(rawType, rawStatus string) (domain.EntryType, domain.EntryStatus, error) {
	entryType := domain.EntryTypeDaily
	if rawType != "" {
		entryType = domain.EntryType(rawType)
		if !entryType.IsValid() {
			return "", "", domain.NewValidationError("Invalid entry type")
		}
	}

	status := domain.EntryStatusCompleted
	if rawStatus != "" {
		status = domain.EntryStatus(rawStatus)
		if !status.IsValid() {
			return "", "", domain.NewValidationError("Invalid entry status")
		}
	}

	return entryType, status, nil
}
