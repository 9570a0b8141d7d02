package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/auth"
	authv1 "github.com/carson-networks/ledger-server/internal/handlers/v1/auth"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/budget"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/category"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/dashboard"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/profile"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/status"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Storage *storage.Storage
	Service *service.Service
}

// logDataMiddleware gives every request a LogData collector and emits
// one structured line when the request completes.
func (r *Rest) logDataMiddleware(ctx huma.Context, next func(huma.Context)) {
	logData := logging.NewLogData(r.Logger)
	logData.AddData("operation", ctx.Operation().OperationID)

	endTimer := logData.AddTiming("duration")
	next(huma.WithContext(ctx, logging.WithLogData(ctx.Context(), logData)))
	endTimer()

	logData.Log().Infof("Handler.%v.Complete", ctx.Operation().OperationID)
}

// sessionMiddleware resolves the bearer token to an owner ID for every
// operation not marked public.
func (r *Rest) sessionMiddleware(humaAPI huma.API) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if public, ok := ctx.Operation().Metadata["public"].(bool); ok && public {
			next(ctx)
			return
		}

		token := strings.TrimPrefix(ctx.Header("Authorization"), "Bearer ")
		if token == "" {
			_ = huma.WriteErr(humaAPI, ctx, http.StatusUnauthorized, "missing bearer token")
			return
		}

		ownerID, err := r.Service.User.Authenticate(ctx.Context(), token)
		if err != nil {
			_ = huma.WriteErr(humaAPI, ctx, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		next(huma.WithContext(ctx, auth.WithOwner(ctx.Context(), ownerID)))
	}
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	humaAPI := humago.New(mux, huma.DefaultConfig("Ledger Server API", "1.0.0"))
	humaAPI.UseMiddleware(r.logDataMiddleware, r.sessionMiddleware(humaAPI))

	registerRoutes(humaAPI, r.Service)

	statusHandler := status.NewHandler(r.Storage.DB)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

// registerRoutes wires every v1 handler onto the Huma API.
func registerRoutes(humaAPI huma.API, svc *service.Service) {
	authv1.NewRegisterHandler(svc.User).Register(humaAPI)
	authv1.NewLoginHandler(svc.User).Register(humaAPI)
	authv1.NewLogoutHandler(svc.User).Register(humaAPI)
	authv1.NewForgotPasswordHandler(svc.User).Register(humaAPI)
	authv1.NewResetPasswordHandler(svc.User).Register(humaAPI)

	profile.NewGetProfileHandler(svc.User).Register(humaAPI)
	profile.NewUpdateProfileHandler(svc.User).Register(humaAPI)

	category.NewCreateCategoryHandler(svc.Category).Register(humaAPI)
	category.NewListCategoriesHandler(svc.Category).Register(humaAPI)
	category.NewUpdateCategoryHandler(svc.Category).Register(humaAPI)
	category.NewDeleteCategoryHandler(svc.Category).Register(humaAPI)

	transaction.NewCreateTransactionHandler(svc.Transaction).Register(humaAPI)
	transaction.NewListTransactionsHandler(svc.Transaction).Register(humaAPI)
	transaction.NewUpdateTransactionHandler(svc.Transaction).Register(humaAPI)
	transaction.NewDeleteTransactionHandler(svc.Transaction).Register(humaAPI)

	budget.NewUpsertBudgetHandler(svc.Budget).Register(humaAPI)
	budget.NewGetBudgetHandler(svc.Budget).Register(humaAPI)
	budget.NewEvaluateBudgetHandler(svc.Budget).Register(humaAPI)
	budget.NewDeleteBudgetHandler(svc.Budget).Register(humaAPI)

	dashboard.NewMonthlySummaryHandler(svc.Dashboard).Register(humaAPI)
	dashboard.NewCategoryBreakdownHandler(svc.Dashboard).Register(humaAPI)
	dashboard.NewSpendingTrendHandler(svc.Dashboard).Register(humaAPI)
}
