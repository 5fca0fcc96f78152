package app

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tarotbot/internal/bot"
	"tarotbot/internal/config"
	"tarotbot/internal/gateway"
	"tarotbot/internal/render"
	"tarotbot/internal/storage"
	"tarotbot/internal/storage/ch"
	"tarotbot/internal/storage/stubs"
)

// App represents the application
type App struct {
	config *config.Config
	db     storage.Storage
	bot    *bot.Bot
	server *http.Server
	logger *zap.Logger
}

// New creates and initializes a new application instance
func New(logger *zap.Logger) (*App, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	app := &App{config: cfg, logger: logger}

	logger.Info("Starting Tarot Bot...")

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initBot(); err != nil {
		return nil, err
	}

	app.initHTTPServer()

	return app, nil
}

// initDatabase initializes the reading journal
func (a *App) initDatabase() error {
	var db storage.Storage
	if a.config.UseMockDB {
		a.logger.Info("Using in-memory journal")
		db = stubs.NewMockDB()
	} else {
		a.logger.Info("Connecting to ClickHouse",
			zap.String("host", a.config.ClickHouseHost),
			zap.Int("port", a.config.ClickHousePort),
			zap.String("database", a.config.ClickHouseDatabase),
			zap.String("user", a.config.ClickHouseUser),
			zap.Bool("tls", a.config.ClickHouseUseTLS),
		)
		clickhouseDB, err := ch.NewClickHouseDB(
			a.config.ClickHouseHost,
			a.config.ClickHousePort,
			a.config.ClickHouseDatabase,
			a.config.ClickHouseUser,
			a.config.ClickHousePassword,
			a.config.ClickHouseUseTLS,
		)
		if err != nil {
			return fmt.Errorf("failed to connect to ClickHouse: %w", err)
		}
		db = clickhouseDB
	}

	ctx := context.Background()
	if err := db.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize journal: %w", err)
	}
	a.logger.Info("Journal initialized successfully")

	a.db = db
	return nil
}

// initBot initializes the Telegram bot and its collaborators
func (a *App) initBot() error {
	cards := gateway.NewClient(a.config.APIBaseURL, a.config.APITimeout, a.config.CardCacheTTL, a.logger)

	var source render.ArtworkSource
	if a.config.ArtworkDir != "" {
		source = render.NewDirSource(a.config.ArtworkDir)
	} else {
		source = render.NewHTTPSource(a.config.APITimeout)
	}

	renderer, err := render.NewRenderer(a.config.BackgroundPath, source, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	limiter := bot.NewRateLimiter(a.config.RateLimitCount, a.config.RateLimitWindow)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	telegramBot, err := bot.NewBot(a.config.TelegramToken, cards, a.db, renderer, rng, limiter, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	a.bot = telegramBot
	return nil
}

// initHTTPServer initializes the HTTP server for health checks and webhook
func (a *App) initHTTPServer() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // Default port
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		mode := "polling"
		if a.config.WebhookMode {
			mode = "webhook"
		}
		fmt.Fprintf(w, "Tarot Bot is running (mode: %s)", mode)
	})

	// Webhook endpoint (only used in webhook mode)
	mux.HandleFunc("/telegram-webhook", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			a.logger.Error("Error decoding webhook update", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// Process update in background to respond quickly to Telegram
		go a.bot.HandleWebhookUpdate(update)

		w.WriteHeader(http.StatusOK)
	})

	a.server = &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		a.logger.Info("Starting HTTP server", zap.String("port", port))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
}

// Run starts the application and blocks until shutdown
func (a *App) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if a.config.WebhookMode {
		a.logger.Info("Starting bot in WEBHOOK mode", zap.String("url", a.config.WebhookURL))
		if err := a.bot.StartWebhook(a.config.WebhookURL); err != nil {
			return fmt.Errorf("failed to setup webhook: %w", err)
		}
		a.logger.Info("Webhook configured. Bot will receive updates via HTTP endpoint /telegram-webhook")
	} else {
		go func() {
			a.logger.Info("Starting bot in POLLING mode...")
			if err := a.bot.Start(); err != nil {
				a.logger.Fatal("Failed to start bot", zap.Error(err))
			}
		}()
	}

	<-sigChan

	a.logger.Info("Shutting down...")
	return a.Shutdown()
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := a.db.Close(); err != nil {
		a.logger.Error("Error closing journal", zap.Error(err))
		return err
	}

	a.logger.Info("Shutdown complete")
	return nil
}
