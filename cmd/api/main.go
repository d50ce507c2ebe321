package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ebuka-odih/site-bk-sub001/internal/config"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/audit"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/authcode"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/deposit"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/ledger"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/notification"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/paymentmethod"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/receipt"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/settlement"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/transfer"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/user"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/wallet"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/withdrawal"
	"github.com/ebuka-odih/site-bk-sub001/internal/middleware"
	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/database"
	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/jwt"
	pkgresponse "github.com/ebuka-odih/site-bk-sub001/internal/pkg/response"
	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/storage"
	"github.com/ebuka-odih/site-bk-sub001/internal/worker"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting banking API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure schema")
	}

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	var r2 *storage.R2Storage
	if cfg.R2AccountID != "" {
		r2, err = storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create R2 storage")
		}
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	walletRepo := wallet.NewRepository(db, cfg.AccountNumberPrefix)
	ledgerRepo := ledger.NewRepository(db)
	codeRepo := authcode.NewRepository(db)
	methodRepo := paymentmethod.NewRepository(db)
	auditRepo := audit.NewRepository(db)
	notificationRepo := notification.NewRepository(db)

	// ---------- WebSocket hub ----------
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	hub := notification.NewHub(redis)
	go hub.Run(hubCtx)

	// ---------- Services ----------
	auditService := audit.NewService(auditRepo)
	notificationService := notification.NewService(notificationRepo, hub)
	defer notificationService.Close()

	userService := user.NewService(userRepo, auditService)
	walletService := wallet.NewService(walletRepo, cfg.Currency)
	ledgerService := ledger.NewService(ledgerRepo)
	codeService := authcode.NewService(codeRepo, auditService)
	methodService := paymentmethod.NewService(methodRepo, redis)

	depositService := deposit.NewService(db, walletRepo, ledgerRepo, codeService, methodService, auditService, notificationService)
	withdrawalService := withdrawal.NewService(db, walletRepo, ledgerRepo, methodService, auditService, notificationService)
	transferService := transfer.NewService(db, userService, walletRepo, ledgerRepo, codeService, auditService, notificationService, cfg.WireFeeBps)
	settlementService := settlement.NewService(db, walletRepo, ledgerRepo, auditService, notificationService)
	receiptService := receipt.NewService(ledgerService, r2, cfg.Currency)

	// ---------- Handlers ----------
	userHandler := user.NewHandler(userService)
	walletHandler := wallet.NewHandler(walletService)
	ledgerHandler := ledger.NewHandler(ledgerService)
	codeHandler := authcode.NewHandler(codeService, cfg.CodeDefaultTTL)
	methodHandler := paymentmethod.NewHandler(methodService)
	depositHandler := deposit.NewHandler(depositService, cfg.Currency)
	withdrawalHandler := withdrawal.NewHandler(withdrawalService)
	transferHandler := transfer.NewHandler(transferService)
	settlementHandler := settlement.NewHandler(settlementService)
	receiptHandler := receipt.NewHandler(receiptService)
	notificationHandler := notification.NewHandler(notificationService, hub, cfg.AllowedOrigins)

	authMiddleware := middleware.Auth(jwtService)
	adminMiddleware := middleware.RequireAdmin()

	// ---------- Maintenance jobs ----------
	jobs, err := worker.New(codeRepo, ledgerRepo, notificationRepo,
		time.Duration(cfg.CodeRetentionDays)*24*time.Hour, cfg.PendingStaleAfter)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create maintenance worker")
	}
	if err := jobs.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start maintenance worker")
	}
	defer jobs.Stop()

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (before Compress)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(notificationHandler.WebSocket)).ServeHTTP(w, r)
	})

	r.Group(func(r chi.Router) {
		r.Use(chimw.Compress(5))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/wallet", walletHandler.Routes(authMiddleware))
		r.Mount("/deposits", depositHandler.Routes(authMiddleware))
		r.Mount("/payment-methods", methodHandler.Routes(authMiddleware))
		r.Mount("/withdrawals", withdrawalHandler.Routes(authMiddleware))
		r.Mount("/transfers", transferHandler.Routes(authMiddleware))
		r.Mount("/transactions", ledgerHandler.Routes(authMiddleware, receiptHandler.Get))
		r.Mount("/account", userHandler.Routes(authMiddleware))
		r.Mount("/notifications", notificationHandler.Routes(authMiddleware))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Mount("/codes", codeHandler.Routes(authMiddleware, adminMiddleware))
		r.Mount("/users", userHandler.AdminRoutes(authMiddleware, adminMiddleware))
		r.Mount("/wallets", walletHandler.AdminRoutes(authMiddleware, adminMiddleware))

		r.Route("/transactions", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Get("/", ledgerHandler.AdminList)
			r.Post("/{id}/approve", settlementHandler.Approve)
			r.Post("/{id}/reject", settlementHandler.Reject)
			r.Post("/{id}/reverse", settlementHandler.Reverse)
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
