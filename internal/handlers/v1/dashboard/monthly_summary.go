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

// MonthlySummaryInput is the Huma input for the monthly summary.
type MonthlySummaryInput struct {
	Month string `query:"month" required:"true" doc:"Month key, YYYY-MM"`
}

// MonthlySummaryOutput is the Huma output for the monthly summary.
type MonthlySummaryOutput struct {
	Body respond.Envelope[Summary]
}

// summarizer is the interface for computing monthly summaries.
type summarizer interface {
	MonthlySummary(ctx context.Context, ownerID uuid.UUID, monthKey string) (*service.MonthlySummary, error)
}

// MonthlySummaryHandler handles GET /v1/dashboard/summary.
type MonthlySummaryHandler struct {
	DashboardService summarizer
}

// NewMonthlySummaryHandler creates a new MonthlySummaryHandler.
func NewMonthlySummaryHandler(svc summarizer) *MonthlySummaryHandler {
	return &MonthlySummaryHandler{DashboardService: svc}
}

// Register registers the monthly summary endpoint with the Huma API.
func (h *MonthlySummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "dashboard-summary",
		Method:      http.MethodGet,
		Path:        "/v1/dashboard/summary",
		Summary:     "Monthly summary",
		Description: "Sums the month's income and expense and their balance. A month with no transactions yields zeros.",
		Tags:        []string{"Dashboard"},
	}, h.handle)
}

func (h *MonthlySummaryHandler) handle(ctx context.Context, input *MonthlySummaryInput) (*MonthlySummaryOutput, error) {
	logData := logging.GetLogData(ctx)
	ownerID, err := respond.Owner(ctx)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("monthlySummaryMs")
	}
	summary, err := h.DashboardService.MonthlySummary(ctx, ownerID, input.Month)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, respond.Error(err, "failed to compute summary")
	}

	return &MonthlySummaryOutput{Body: respond.OK("", summaryFromService(*summary))}, nil
}
