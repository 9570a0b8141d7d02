package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/respond"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ListTransactionsInput is the Huma input for listing transactions.
// All filters are optional and combine with AND; the date range is
// inclusive on both ends.
type ListTransactionsInput struct {
	StartDate  string `query:"startDate" doc:"Inclusive lower bound, YYYY-MM-DD"`
	EndDate    string `query:"endDate" doc:"Inclusive upper bound, YYYY-MM-DD"`
	Type       string `query:"type" doc:"Entry type filter, expense or income"`
	CategoryID string `query:"categoryId" doc:"Category UUID filter"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body respond.Envelope[[]Transaction]
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	List(ctx context.Context, ownerID uuid.UUID, filters service.TransactionFilters) ([]service.TransactionView, error)
}

// ListTransactionsHandler handles GET /v1/transaction.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transaction",
		Summary:     "List transactions",
		Description: "Returns the authenticated user's transactions, newest first, narrowed by the supplied filters.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput parses and validates the API input.
func parseListTransactionsInput(input *ListTransactionsInput) (service.TransactionFilters, error) {
	var filters service.TransactionFilters

	if input.StartDate != "" {
		startDate, err := service.ParseDate("startDate", input.StartDate)
		if err != nil {
			return filters, respond.Error(err, "failed to list transactions")
		}
		filters.StartDate = &startDate
	}
	if input.EndDate != "" {
		endDate, err := service.ParseDate("endDate", input.EndDate)
		if err != nil {
			return filters, respond.Error(err, "failed to list transactions")
		}
		filters.EndDate = &endDate
	}
	if input.Type != "" {
		entryType, err := service.ParseEntryType(input.Type)
		if err != nil {
			return filters, respond.Error(err, "failed to list transactions")
		}
		filters.Type = &entryType
	}
	if input.CategoryID != "" {
		categoryID, err := uuid.FromString(input.CategoryID)
		if err != nil {
			return filters, huma.NewError(http.StatusBadRequest, "invalid categoryId", err)
		}
		filters.CategoryID = &categoryID
	}

	return filters, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)
	ownerID, err := respond.Owner(ctx)
	if err != nil {
		return nil, err
	}
	filters, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	views, err := h.TransactionService.List(ctx, ownerID, filters)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, respond.Error(err, "failed to list transactions")
	}

	if logData != nil {
		logData.AddData("transactionCount", len(views))
	}

	resp := make([]Transaction, len(views))
	for i, view := range views {
		resp[i] = fromService(view)
	}
	return &ListTransactionsOutput{Body: respond.OK("", resp)}, nil
}
