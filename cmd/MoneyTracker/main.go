package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	database "github.com/Xario13/MoneyTracker/db"
	"github.com/Xario13/MoneyTracker/internal/auth"
	emailService "github.com/Xario13/MoneyTracker/internal/email"
	"github.com/Xario13/MoneyTracker/internal/ledger/application"
	"github.com/Xario13/MoneyTracker/internal/ledger/infrastructure"
	"github.com/Xario13/MoneyTracker/internal/ledger/interfaces"
	"github.com/Xario13/MoneyTracker/internal/ledger/store"
	"github.com/Xario13/MoneyTracker/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router             *http.ServeMux
	authHandler        *auth.Handler
	userHandler        *user.Handler
	authService        auth.Service
	ledgerStore        *store.Store
	transactionHandler *interfaces.TransactionHandler
	fundHandler        *interfaces.FundHandler
	cardHandler        *interfaces.CardHandler
	goalHandler        *interfaces.GoalHandler
	analyticsHandler   *interfaces.AnalyticsHandler
}

func NewServer(
	authHandler *auth.Handler,
	authService auth.Service,
	userHandler *user.Handler,
	ledgerStore *store.Store,
	transactionHandler *interfaces.TransactionHandler,
	fundHandler *interfaces.FundHandler,
	cardHandler *interfaces.CardHandler,
	goalHandler *interfaces.GoalHandler,
	analyticsHandler *interfaces.AnalyticsHandler,
) *Server {
	return &Server{
		router:             http.NewServeMux(),
		authHandler:        authHandler,
		userHandler:        userHandler,
		authService:        authService,
		ledgerStore:        ledgerStore,
		transactionHandler: transactionHandler,
		fundHandler:        fundHandler,
		cardHandler:        cardHandler,
		goalHandler:        goalHandler,
		analyticsHandler:   analyticsHandler,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// withLedgerData makes sure the user's collections are resident in the store
// before any ledger handler runs.
func (s *Server) withLedgerData(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value("userID").(string)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if !s.ledgerStore.IsLoaded(userID) {
			if err := s.ledgerStore.LoadUser(r.Context(), userID); err != nil {
				log.Printf("could not load ledger data for %s: %v", userID, err)
				respondError(w, http.StatusInternalServerError, "Could not load ledger data")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) RegisterRoutes() {
	authMW := s.authService.JWTAccessTokenMiddleware()
	ledger := func(h http.HandlerFunc) http.Handler {
		return authMW(s.withLedgerData(h))
	}

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/email/verify", http.HandlerFunc(s.userHandler.HandleVerifyEmail))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("POST /api/auth/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	publicRoutes.Handle("POST /api/auth/2fa/verify", http.HandlerFunc(s.authHandler.HandleVerifyTwoFactor))
	publicRoutes.Handle("POST /api/password-reset/request", http.HandlerFunc(s.authHandler.RequestPasswordResetHandler))
	publicRoutes.Handle("POST /api/password-reset/confirm", http.HandlerFunc(s.authHandler.ResetPasswordHandler))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/protected/profile", authMW(http.HandlerFunc(s.userHandler.HandleGetUserProfile)))
	protectedRoutes.Handle("POST /api/protected/change-password", authMW(http.HandlerFunc(s.userHandler.HandleChangePassword)))

	protectedRoutes.Handle("POST /api/protected/2fa/register", authMW(http.HandlerFunc(s.authHandler.HandleRegisterTwoFactor)))
	protectedRoutes.Handle("POST /api/protected/2fa/verify-registration", authMW(http.HandlerFunc(s.authHandler.HandleConfirmTwoFactor)))
	protectedRoutes.Handle("DELETE /api/protected/2fa/disable", authMW(http.HandlerFunc(s.authHandler.HandleDisableTwoFactor)))

	// FUNDS API
	protectedRoutes.Handle("POST /api/protected/funds", ledger(s.fundHandler.HandleCreateFund))
	protectedRoutes.Handle("GET /api/protected/funds", ledger(s.fundHandler.HandleGetFunds))
	protectedRoutes.Handle("PUT /api/protected/funds/{id}", ledger(s.fundHandler.HandleUpdateFund))
	protectedRoutes.Handle("DELETE /api/protected/funds/{id}", ledger(s.fundHandler.HandleDeleteFund))

	// CARDS API
	protectedRoutes.Handle("POST /api/protected/cards", ledger(s.cardHandler.HandleCreateCard))
	protectedRoutes.Handle("GET /api/protected/cards", ledger(s.cardHandler.HandleGetCards))
	protectedRoutes.Handle("PUT /api/protected/cards/{id}", ledger(s.cardHandler.HandleUpdateCard))
	protectedRoutes.Handle("DELETE /api/protected/cards/{id}", ledger(s.cardHandler.HandleDeleteCard))
	protectedRoutes.Handle("POST /api/protected/cards/{id}/payments", ledger(s.cardHandler.HandlePayBill))

	// GOALS API
	protectedRoutes.Handle("POST /api/protected/goals", ledger(s.goalHandler.HandleCreateGoal))
	protectedRoutes.Handle("GET /api/protected/goals", ledger(s.goalHandler.HandleGetGoals))
	protectedRoutes.Handle("PUT /api/protected/goals/{id}", ledger(s.goalHandler.HandleUpdateGoal))
	protectedRoutes.Handle("DELETE /api/protected/goals/{id}", ledger(s.goalHandler.HandleDeleteGoal))
	protectedRoutes.Handle("POST /api/protected/goals/{id}/allocate", ledger(s.goalHandler.HandleAllocate))
	protectedRoutes.Handle("POST /api/protected/goals/{id}/deallocate", ledger(s.goalHandler.HandleDeallocate))
	protectedRoutes.Handle("POST /api/protected/goals/{id}/complete", ledger(s.goalHandler.HandleComplete))
	protectedRoutes.Handle("GET /api/protected/credit-goals", ledger(s.goalHandler.HandleGetCreditGoals))

	// TRANSACTIONS API
	protectedRoutes.Handle("POST /api/protected/transactions", ledger(s.transactionHandler.HandleCreateTransaction))
	protectedRoutes.Handle("GET /api/protected/transactions", ledger(s.transactionHandler.HandleGetTransactions))
	protectedRoutes.Handle("PUT /api/protected/transactions/{id}", ledger(s.transactionHandler.HandleUpdateTransaction))
	protectedRoutes.Handle("DELETE /api/protected/transactions/{id}", ledger(s.transactionHandler.HandleDeleteTransaction))

	// FINANCIAL DATA API
	protectedRoutes.Handle("GET /api/protected/financial-data", ledger(s.fundHandler.HandleGetFinancialData))
	protectedRoutes.Handle("PUT /api/protected/financial-data", ledger(s.fundHandler.HandleUpdateFinancialData))

	// ANALYTICS API
	protectedRoutes.Handle("GET /api/protected/analytics/summary", ledger(s.analyticsHandler.HandleGetSummary))
	protectedRoutes.Handle("GET /api/protected/analytics/spending", ledger(s.analyticsHandler.HandleGetSpending))
	protectedRoutes.Handle("GET /api/protected/analytics/categories", ledger(s.analyticsHandler.HandleGetCategoryBreakdown))
	protectedRoutes.Handle("GET /api/protected/categories", ledger(s.analyticsHandler.HandleGetCategories))

	// Refresh token routes
	refreshTokenRoutes := http.NewServeMux()
	refreshTokenRoutes.Handle("PUT /api/refresh/token", s.authService.JWTRefreshTokenMiddleware()(http.HandlerFunc(s.authHandler.RefreshAccessToken)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/api/refresh/", refreshTokenRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server")
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	gateway, err := infrastructure.NewPostgresGateway(dbService.DB)
	if err != nil {
		log.Fatalf("Could not initialize ledger storage: %v", err)
	}
	ledgerStore := store.New(gateway)

	newEmailService, err := emailService.NewEmailService()
	if err != nil {
		log.Fatalf("Could not initialize email service: %v", err)
	}
	jwtManager, err := auth.NewJWTManager()
	if err != nil {
		log.Fatalf("Could not initialize JWT manager: %v", err)
	}
	sessionManager := auth.NewSessionManager()
	sessionManager.StartSessionTokenCleanup(time.Minute)
	authenticator := auth.Authenticator{}

	twoFactorRepo := auth.NewTwoFactorRepository(dbService.DB)
	userRepo := user.NewUserRepository(dbService.DB)

	userService := user.NewUserService(userRepo, newEmailService)
	userHandler := user.NewHandler(userService)
	authService := auth.NewAuthService(twoFactorRepo, userService, sessionManager, jwtManager, newEmailService, authenticator)
	authHandler := auth.NewHandler(authService)

	ledgerService := application.NewLedgerService(ledgerStore)
	goalService := application.NewGoalService(ledgerStore)
	accountService := application.NewAccountService(ledgerStore)
	billingService := application.NewBillingService(ledgerStore)
	analyticsService := application.NewAnalyticsService(ledgerStore)

	transactionHandler := interfaces.NewTransactionHandler(ledgerService, respondJSON, respondError, ledgerStore.LastPersistError)
	fundHandler := interfaces.NewFundHandler(accountService, respondJSON, respondError, ledgerStore.LastPersistError)
	cardHandler := interfaces.NewCardHandler(accountService, billingService, respondJSON, respondError, ledgerStore.LastPersistError)
	goalHandler := interfaces.NewGoalHandler(goalService, respondJSON, respondError, ledgerStore.LastPersistError)
	analyticsHandler := interfaces.NewAnalyticsHandler(analyticsService, respondJSON, respondError)

	server := NewServer(authHandler, authService, userHandler, ledgerStore, transactionHandler, fundHandler, cardHandler, goalHandler, analyticsHandler)
	server.RegisterRoutes()

	if err := StartRecurringIncomeScheduler(accountService); err != nil {
		log.Fatalf("Scheduler didn't start, stoping the app ...")
	}

	handler := loggingMiddleware(server.router)

	log.Println("Starting perf on port 6060...")
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()

	httpServer := &http.Server{
		Addr:    ":8080",
		Handler: handler,
	}

	go func() {
		log.Println("Server starting on port 8080...")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	// Drain queued ledger writes before the database connection closes.
	if err := ledgerStore.Flush(ctx); err != nil {
		log.Printf("Error flushing ledger writes: %v", err)
	}
	log.Println("Server stopped")
}

func StartRecurringIncomeScheduler(accountService *application.AccountService) error {
	c := cron.New()
	// Runs daily, the service itself skips users already credited this month.
	_, err := c.AddFunc("@daily", func() {
		if err := accountService.ApplyRecurringIncome(time.Now()); err != nil {
			log.Printf("Error applying recurring income: %v", err)
		} else {
			log.Println("Recurring income pass completed.")
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
