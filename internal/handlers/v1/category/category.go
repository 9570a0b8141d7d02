package category

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/service"
)

// Category is the API response model for a category.
// It is used only for responses, not for request bodies.
type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	Name      string `json:"name" doc:"Category name"`
	Type      string `json:"type" enum:"expense,income" doc:"Entry type"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt string `json:"updatedAt" doc:"RFC3339 last update time"`
}

func fromService(c service.Category) Category {
	return Category{
		ID:        c.ID.String(),
		Name:      c.Name,
		Type:      string(c.Type),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
