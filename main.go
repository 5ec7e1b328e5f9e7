package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/edvhesabat/backend/src/config"
	"github.com/username/edvhesabat/backend/src/database"
	"github.com/username/edvhesabat/backend/src/handlers"
	"github.com/username/edvhesabat/backend/src/logger"
	"github.com/username/edvhesabat/backend/src/processors"
	"github.com/username/edvhesabat/backend/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000": true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "ETag")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("EDV hesabat backend server starting...")

	logger.L.Info("Loading tax rate table...", "path", config.Cfg.RateTablePath)
	ratePolicy := processors.NewRatePolicy()
	if err := ratePolicy.LoadFromFile(config.Cfg.RateTablePath); err != nil {
		logger.L.Warn("Failed to load rate table, using built-in defaults", "path", config.Cfg.RateTablePath, "error", err)
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	logger.L.Info("Initializing report cache...")
	reportCache := cache.New(services.DefaultCacheExpiration, services.CacheCleanupInterval)

	logger.L.Info("Initializing services and handlers...")
	splitPolicy := &processors.RefundSplitPolicy{StatePercent: config.Cfg.RefundSplitStatePercent}
	reconciler := processors.NewReconciliationProcessor(splitPolicy)
	reportService := services.NewReportService(ratePolicy, reconciler, reportCache)

	uploadHandler := handlers.NewUploadHandler(reportService)
	edvHandler := handlers.NewEDVHandler(reportService)
	reportHandler := handlers.NewReportHandler(reportService)
	payrollHandler := handlers.NewPayrollHandler(processors.NewPayrollProcessor())

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := http.NewServeMux()

	apiRouter.HandleFunc("GET /api/health", handlers.HandleHealth)

	apiRouter.HandleFunc("POST /api/upload", uploadHandler.HandleUpload)
	apiRouter.HandleFunc("POST /api/edv/records", uploadHandler.HandleUploadRows)
	apiRouter.HandleFunc("GET /api/edv/batch", edvHandler.HandleBatchInfo)
	apiRouter.HandleFunc("GET /api/edv/report/monthly", edvHandler.HandleMonthlyReport)
	apiRouter.HandleFunc("GET /api/edv/report/yearly", edvHandler.HandleYearlyReport)
	apiRouter.HandleFunc("GET /api/edv/report/period", edvHandler.HandlePeriodReport)
	apiRouter.HandleFunc("GET /api/edv/declaration", edvHandler.HandleDeclaration)

	apiRouter.HandleFunc("GET /api/reports/balance", reportHandler.HandleBalanceReport)
	apiRouter.HandleFunc("GET /api/reports/counterparty", reportHandler.HandleCounterpartyStatements)

	apiRouter.HandleFunc("POST /api/payroll/calculate", payrollHandler.HandleCalculate)
	apiRouter.HandleFunc("POST /api/payroll/vacation", payrollHandler.HandleVacation)
	apiRouter.HandleFunc("POST /api/payroll/severance", payrollHandler.HandleSeverance)

	rootMux.Handle("/api/", apiRouter)

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "EDV hesabat backend is running"})
		} else {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
				http.NotFound(w, r)
			}
		}
	})

	logger.L.Info("Applying global middleware...")
	finalHandler := enableCORS(rateLimitMiddleware(rootMux))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
