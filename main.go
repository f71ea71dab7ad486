package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mwangaza/board/internal/config"
	"github.com/mwangaza/board/internal/db"
	"github.com/mwangaza/board/internal/gateway"
	"github.com/mwangaza/board/internal/notify"
	"github.com/mwangaza/board/internal/poll"
	"github.com/mwangaza/board/internal/report"
)

//go:embed static/*
var staticFS embed.FS

var (
	cfg        *config.Config
	logger     *zap.Logger
	gw         *gateway.Client
	stores     *Stores
	bus        *notify.Bus
	publisher  *notify.Publisher
	dashPoller *poll.Poller
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "board",
		Short: "Admin board for a community-based organization",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the board server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	var exportOut string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the donations CSV without starting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return export(cmd.Context(), exportOut)
		},
	}
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "donations.csv", "output file")

	root.AddCommand(serveCmd, exportCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Logging.Level == "debug" {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err = zcfg.Build()
	if err != nil {
		return err
	}

	gw = gateway.New(cfg.Gateway.BaseURL, cfg.GatewayTimeout(), logger)
	stores = newStores(gw)
	bus = notify.NewBus(logger)
	publisher = notify.NewPublisher(bus, saveNotice, logger)
	return nil
}

func saveNotice(n notify.Notice) error {
	return db.InsertNotification(db.Notification{
		ID:          n.ID,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		Category:    n.Category,
		TargetRoles: n.TargetRoles,
		Read:        n.Read,
	})
}

func serve() error {
	if err := setup(); err != nil {
		return err
	}
	defer logger.Sync()

	if err := db.Init(cfg.DataDir); err != nil {
		return err
	}
	initTemplates()

	for _, email := range cfg.AdminEmails {
		created, err := db.EnsureAdmin(email)
		if err != nil {
			logger.Warn("admin sync failed", zap.String("email", email), zap.Error(err))
		} else if created {
			logger.Info("created admin user", zap.String("email", email))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Audit subscriber: every published notice lands in the log even when no
	// browser is connected to the event stream.
	noticeCh, cancelNotices := bus.Subscribe("", 64)
	go func() {
		defer cancelNotices()
		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-noticeCh:
				if !ok {
					return
				}
				logger.Info("notice published",
					zap.String("type", n.Type),
					zap.String("category", n.Category),
					zap.Strings("roles", n.TargetRoles))
			}
		}
	}()

	dashPoller = poll.New("dashboard", cfg.PollInterval(), logger, stores.RefreshDashboard)
	go dashPoller.Run(ctx)
	go func() {
		if err := config.Watch(ctx, configPath, logger, func(c *config.Config) {
			dashPoller.SetInterval(c.PollInterval())
		}); err != nil && ctx.Err() == nil {
			logger.Warn("config watch stopped", zap.Error(err))
		}
	}()

	// Warm the dashboard stores; failures are kept in the error slots and
	// surfaced by the views.
	warmCtx, cancel := context.WithTimeout(ctx, cfg.GatewayTimeout())
	if err := stores.RefreshDashboard(warmCtx); err != nil {
		logger.Warn("initial refresh incomplete", zap.Error(err))
	}
	cancel()

	mux := http.NewServeMux()

	staticSub, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	// Auth routes (public)
	mux.HandleFunc("GET /login", handleLogin)
	mux.HandleFunc("POST /login", handleLogin)
	mux.HandleFunc("GET /auth/approve", handleApprove)
	mux.HandleFunc("POST /auth/approve", handleApprove)
	mux.HandleFunc("POST /logout", handleLogout)

	// Authenticated routes
	app := http.NewServeMux()
	app.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/tabs/dashboard", http.StatusSeeOther)
	})
	app.HandleFunc("GET /tabs/{module}", handleTab)
	app.HandleFunc("POST /tabs/{module}/refresh", handleTabRefresh)

	// Campaigns
	app.HandleFunc("POST /campaigns", requireModule("campaigns", handleCreateCampaign))
	app.HandleFunc("POST /campaigns/{id}/status", requireModule("campaigns", handleCampaignStatus))
	app.HandleFunc("DELETE /campaigns/{id}", requireAdmin(handleDeleteCampaign))
	app.HandleFunc("POST /campaigns/{id}/delete", requireAdmin(handleDeleteCampaign))

	// Donations
	app.HandleFunc("POST /donations", requireModule("donations", handleCreateDonation))
	app.HandleFunc("POST /donations/{id}/status", requireModule("donations", handleDonationStatus))
	app.HandleFunc("POST /donations/{id}/process", requireModule("donations", handleProcessPayment))

	// Material donations
	app.HandleFunc("POST /material/{id}/{verb}", requireModule("material", handleMaterialAction))

	// Shelters
	app.HandleFunc("POST /shelters", requireModule("shelters", handleCreateShelter))
	app.HandleFunc("POST /shelters/{id}/{verb}", requireModule("shelters", handleShelterReview))

	// Cases and families
	app.HandleFunc("POST /cases/{id}/notes", requireModule("cases", handleAddCaseNote))
	app.HandleFunc("POST /families", requireModule("families", handleCreateFamily))

	// Events and staff
	app.HandleFunc("POST /events", requireModule("events", handleCreateEvent))
	app.HandleFunc("POST /events/{id}/register", requireModule("events", handleEventRegister))
	app.HandleFunc("POST /staff/{id}/verify", requireModule("staff", handleVerifyStaff))

	// Users (admin)
	app.HandleFunc("POST /admin/users", requireAdmin(handleAdminCreateUser))
	app.HandleFunc("POST /admin/users/{id}/role", requireAdmin(handleAdminSetRole))
	app.HandleFunc("POST /admin/users/{id}/active", requireAdmin(handleAdminSetActive))
	app.HandleFunc("DELETE /admin/users/{id}", requireAdmin(handleAdminDeleteUser))
	app.HandleFunc("POST /admin/users/{id}/delete", requireAdmin(handleAdminDeleteUser))

	// Notifications
	app.HandleFunc("POST /notifications/{id}/read", handleMarkNotificationRead)
	app.HandleFunc("POST /notifications/read-all", handleMarkAllRead)
	app.HandleFunc("GET /notifications/badge", handleUnreadBadge)

	// Reports
	app.HandleFunc("GET /reports/donations.csv", requireModule("reports", handleExportDonationsCSV))
	app.HandleFunc("GET /reports/summary.csv", requireModule("reports", handleExportSummaryCSV))

	// JSON API for the wasm widget, plus the notice event stream
	app.HandleFunc("GET /api/ticker", handleAPITicker)
	app.HandleFunc("GET /api/unread", handleAPIUnread)
	app.HandleFunc("GET /api/notices", handleNoticeStream)

	mux.Handle("/", authMiddleware(app))

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("board running", zap.String("addr", cfg.Addr), zap.String("gateway", cfg.Gateway.BaseURL))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func export(ctx context.Context, out string) error {
	if err := setup(); err != nil {
		return err
	}
	defer logger.Sync()

	donations, err := gateway.List[gateway.Donation](ctx, gw, gateway.Donations)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := report.WriteDonationsCSV(f, donations); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	logger.Info("exported donations", zap.Int("count", len(donations)), zap.String("file", out))
	return nil
}
