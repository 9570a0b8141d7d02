package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// SpendingTrendInput is the Huma input for the spending trend.
type SpendingTrendInput struct {
	StartDate string `query:"startDate" required:"true" doc:"Inclusive lower bound, YYYY-MM-DD"`
	EndDate   string `query:"endDate" required:"true" doc:"Inclusive upper bound, YYYY-MM-DD"`
	Type      string `query:"type" doc:"Entry type, defaults to expense"`
}

// SpendingTrendOutput is the Huma output for the spending trend.
type SpendingTrendOutput struct {
	Body respond.Envelope[[]TrendPoint]
}

// trendComputer is the interface for computing spending trends.
type trendComputer interface {
	SpendingTrend(ctx context.Context, ownerID uuid.UUID, startDate, endDate time.Time, entryType service.EntryType) ([]service.TrendPoint, error)
}

// SpendingTrendHandler handles GET /v1/dashboard/trends.
type SpendingTrendHandler struct {
	DashboardService trendComputer
}

// NewSpendingTrendHandler creates a new SpendingTrendHandler.
func NewSpendingTrendHandler(svc trendComputer) *SpendingTrendHandler {
	return &SpendingTrendHandler{DashboardService: svc}
}

// Register registers the spending trend endpoint with the Huma API.
func (h *SpendingTrendHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "dashboard-trends",
		Method:      http.MethodGet,
		Path:        "/v1/dashboard/trends",
		Summary:     "Spending trend",
		Description: "Groups transactions of one type by day over a date range, oldest day first. Days without transactions are omitted.",
		Tags:        []string{"Dashboard"},
	}, h.handle)
}

// parseSpendingTrendInput parses and validates the API input.
func parseSpendingTrendInput(input *SpendingTrendInput) (startDate, endDate time.Time, entryType service.EntryType, err error) {
	startDate, err = service.ParseDate("startDate", input.StartDate)
	if err != nil {
		return startDate, endDate, entryType, respond.Error(err, "failed to compute trend")
	}
	endDate, err = service.ParseDate("endDate", input.EndDate)
	if err != nil {
		return startDate, endDate, entryType, respond.Error(err, "failed to compute trend")
	}

	entryType = service.EntryTypeExpense
	if input.Type != "" {
		entryType, err = service.ParseEntryType(input.Type)
		if err != nil {
			return startDate, endDate, entryType, respond.Error(err, "failed to compute trend")
		}
	}
	return startDate, endDate, entryType, nil
}

func (h *SpendingTrendHandler) handle(ctx context.Context, input *SpendingTrendInput) (*SpendingTrendOutput, error) {
	logData := logging.GetLogData(ctx)
	ownerID, err := respond.Owner(ctx)
	if err != nil {
		return nil, err
	}
	startDate, endDate, entryType, err := parseSpendingTrendInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("spendingTrendMs")
	}
	trend, err := h.DashboardService.SpendingTrend(ctx, ownerID, startDate, endDate, entryType)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, respond.Error(err, "failed to compute trend")
	}

	if logData != nil {
		logData.AddData("dayCount", len(trend))
	}

	resp := make([]TrendPoint, len(trend))
	for i, point := range trend {
		resp[i] = TrendPoint{Day: point.Day, Total: point.Total.String()}
	}
	return &SpendingTrendOutput{Body: respond.OK("", resp)}, nil
}
