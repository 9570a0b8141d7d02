package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// Category represents a category in the service layer.
type Category struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Type      EntryType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryUpdateInput carries the optional fields of a category update.
type CategoryUpdateInput struct {
	Name omit.Val[string]
	Type omit.Val[EntryType]
}

func categoryFromStorage(row *storage.Category) Category {
	return Category{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		Type:      entryTypeFromStorage(row.Type),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
