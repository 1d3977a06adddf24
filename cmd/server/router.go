package main

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/unq-dapp-grupoM/futbol-api/docs"
	"github.com/unq-dapp-grupoM/futbol-api/internal/handlers"
	"github.com/unq-dapp-grupoM/futbol-api/internal/middleware"
)

// SetupRouter configures the HTTP routes and wraps them with the logging,
// authentication and rate-limiting middleware. The authenticator wraps the
// whole router so unmatched paths still go through the filter chain: a
// protected path with no credentials answers 403 before any 404.
func SetupRouter(
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	teamHandler *handlers.TeamHandler,
	analysisHandler *handlers.AnalysisHandler,
	historyHandler *handlers.HistoryHandler,
	internalHandler *handlers.InternalHandler,
	authenticator *middleware.Authenticator,
	rateLimit middleware.Middleware,
	logger *zap.Logger,
) http.Handler {
	router := mux.NewRouter()

	// Root banner
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Football API up and running"))
	}).Methods("GET")

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Authentication
	router.HandleFunc("/api/auth/register", authHandler.HandleRegister).Methods("POST")
	router.HandleFunc("/api/auth/login", authHandler.HandleLogin).Methods("POST")

	// Players and teams
	router.HandleFunc("/api/player", playerHandler.HandlePlayer).Methods("GET")
	router.HandleFunc("/api/team", teamHandler.HandleTeam).Methods("GET")
	router.HandleFunc("/api/futureMatches", teamHandler.HandleFutureMatches).Methods("GET")

	// Performance analysis
	router.HandleFunc("/api/analysis/{playerName}/metrics", analysisHandler.HandleMetrics).Methods("GET")
	router.HandleFunc("/api/analysis/{playerName}/prediction", analysisHandler.HandlePrediction).Methods("GET")
	router.HandleFunc("/api/analysis/{playerName}/convert-data", analysisHandler.HandleConvertData).Methods("POST")
	router.HandleFunc("/api/analysis/{playerName}/comparison", analysisHandler.HandleComparison).Methods("GET")

	// Query history
	router.HandleFunc("/api/history", historyHandler.HandleHistory).Methods("GET")

	// Internal API (service key only)
	router.HandleFunc("/api/v1/internal/status", internalHandler.HandleStatus).Methods("GET")
	router.HandleFunc("/api/v1/internal/cache", internalHandler.HandlePurgeCache).Methods("DELETE")

	// Swagger documentation
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return middleware.Chain(router,
		middleware.LoggingMiddleware(logger),
		authenticator.Handle,
		rateLimit,
	)
}
