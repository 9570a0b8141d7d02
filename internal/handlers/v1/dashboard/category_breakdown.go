package dashboard

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// CategoryBreakdownInput is the Huma input for the category breakdown.
type CategoryBreakdownInput struct {
	Month string `query:"month" required:"true" doc:"Month key, YYYY-MM"`
	Type  string `query:"type" required:"true" doc:"Entry type to break down, expense or income"`
}

// CategoryBreakdownOutput is the Huma output for the category breakdown.
type CategoryBreakdownOutput struct {
	Body respond.Envelope[[]CategoryTotal]
}

// breakdownComputer is the interface for computing category breakdowns.
type breakdownComputer interface {
	CategoryBreakdown(ctx context.Context, ownerID uuid.UUID, monthKey string, entryType service.EntryType) ([]service.CategoryTotal, error)
}

// CategoryBreakdownHandler handles GET /v1/dashboard/categories.
type CategoryBreakdownHandler struct {
	DashboardService breakdownComputer
}

// NewCategoryBreakdownHandler creates a new CategoryBreakdownHandler.
func NewCategoryBreakdownHandler(svc breakdownComputer) *CategoryBreakdownHandler {
	return &CategoryBreakdownHandler{DashboardService: svc}
}

// Register registers the category breakdown endpoint with the Huma API.
func (h *CategoryBreakdownHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "dashboard-categories",
		Method:      http.MethodGet,
		Path:        "/v1/dashboard/categories",
		Summary:     "Category breakdown",
		Description: "Groups the month's transactions of one type by category. Categories without transactions are omitted.",
		Tags:        []string{"Dashboard"},
	}, h.handle)
}

func (h *CategoryBreakdownHandler) handle(ctx context.Context, input *CategoryBreakdownInput) (*CategoryBreakdownOutput, error) {
	logData := logging.GetLogData(ctx)
	ownerID, err := respond.Owner(ctx)
	if err != nil {
		return nil, err
	}
	entryType, err := service.ParseEntryType(input.Type)
	if err != nil {
		return nil, respond.Error(err, "failed to compute breakdown")
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("categoryBreakdownMs")
	}
	breakdown, err := h.DashboardService.CategoryBreakdown(ctx, ownerID, input.Month, entryType)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, respond.Error(err, "failed to compute breakdown")
	}

	if logData != nil {
		logData.AddData("groupCount", len(breakdown))
	}

	resp := make([]CategoryTotal, len(breakdown))
	for i, group := range breakdown {
		resp[i] = CategoryTotal{
			CategoryID:   group.CategoryID.String(),
			CategoryName: group.CategoryName,
			Total:        group.Total.String(),
		}
	}
	return &CategoryBreakdownOutput{Body: respond.OK("", resp)}, nil
}
