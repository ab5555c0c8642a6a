package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"

	"weather-chatbot/client/internal/api"
	"weather-chatbot/client/internal/bridge"
	"weather-chatbot/client/internal/chat"
	"weather-chatbot/client/internal/config"
	"weather-chatbot/client/internal/database"
	"weather-chatbot/client/internal/i18n"
	"weather-chatbot/client/internal/location"
	"weather-chatbot/client/internal/model"
	"weather-chatbot/client/internal/preferences"
	"weather-chatbot/client/internal/remote"
	"weather-chatbot/client/internal/session"
	"weather-chatbot/client/internal/speech"
	"weather-chatbot/client/internal/storage"
	"weather-chatbot/client/internal/weather"
)

const shutdownTimeout = 10 * time.Second

// App is the composition root. Every component is built once here and
// handed its collaborators explicitly.
type App struct {
	Config *config.Config
	DB     *sql.DB
	Redis  *redis.Client

	Store       *storage.SessionStore
	Translator  *i18n.Translator
	Sessions    *session.Manager
	Bridge      *bridge.Bridge
	VoiceInput  *speech.InputEngine
	VoiceOutput *speech.OutputEngine
	Remote      *remote.Client
	Weather     *weather.Cache
	Location    *location.Coordinator
	Chat        *chat.Orchestrator
	Preferences *preferences.Service
	Server      *http.Server

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
	logCloser io.Closer
}

// Bootstrap loads the configuration, installs the logger and builds the App.
// Logs go to LOG_FILE when set, otherwise to logOut.
func Bootstrap(configDir string, logOut io.Writer) (*App, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		// slog is not yet configured, so the default logger reports this.
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	w := logWriter(cfg, logOut)
	setupLogger(cfg.LogLevel, w)
	logConfigSource(cfg)

	a, err := NewApp(cfg)
	if err != nil {
		if c, ok := w.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, err
	}
	if c, ok := w.(io.Closer); ok {
		a.logCloser = c
	}
	return a, nil
}

// NewApp wires every component for cfg. Background workers (the platform
// event pumps and the backend health check) are running when it returns; Close
// stops them.
func NewApp(cfg *config.Config) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{Config: cfg, cancel: cancel}

	kv, err := a.openStorage(ctx)
	if err != nil {
		cancel()
		return nil, err
	}
	a.Store = storage.NewSessionStore(kv)

	defaultLang := model.DetectLanguage(os.Getenv("LANG"))
	if lang, ok := model.ParseLanguage(cfg.DefaultLanguage); ok {
		defaultLang = lang
	}
	defaultTheme, ok := model.ParseTheme(cfg.DefaultTheme)
	if !ok {
		defaultTheme = model.ThemeLight
	}

	a.Translator, err = i18n.New(defaultLang)
	if err != nil {
		a.closeStorage()
		cancel()
		return nil, fmt.Errorf("failed to build translator: %w", err)
	}

	a.Bridge = bridge.New(cfg.BridgeBuffer)
	a.VoiceInput = speech.NewInputEngine(a.Bridge, a.Translator, defaultLang)
	a.VoiceOutput = speech.NewOutputEngine(ctx, a.Bridge, a.Store, a.Translator)
	a.Preferences = preferences.NewService(ctx, a.Store, defaultTheme, defaultLang, a.Translator, a.VoiceInput)

	a.Sessions = session.NewManager(a.Store, a.Translator)
	a.Remote = remote.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	a.Weather = weather.NewCache()

	a.Location = location.NewCoordinator(
		a.Sessions,
		a.Remote,
		a.Remote,
		a.Weather,
		a.Bridge,
		a.Translator,
		location.WithDebounce(cfg.SearchDebounce),
		location.WithMinChars(cfg.SearchMinChars),
		location.WithSearchLimit(cfg.SearchLimit),
	)
	// Loading announces the restored active session, which starts the first
	// weather refresh.
	a.Sessions.Load(ctx)

	a.Chat = chat.NewOrchestrator(
		a.Remote,
		a.Sessions,
		a.VoiceOutput,
		a.VoiceInput,
		a.Translator,
		a.Translator,
		a.Weather,
		chat.WithHistoryWindow(cfg.HistoryWindow),
	)

	router := api.NewRouter(api.Handlers{
		Chat:        api.NewChatHandler(a.Sessions, a.Chat),
		Voice:       api.NewVoiceHandler(a.VoiceInput, a.VoiceOutput, a.Chat, a.Bridge),
		Platform:    api.NewPlatformHandler(a.Bridge, a.VoiceInput, a.VoiceOutput),
		Location:    api.NewLocationHandler(a.Location, a.Weather),
		Preferences: api.NewPreferencesHandler(a.Preferences),
	}, cfg.AllowedOrigins)

	a.Server = &http.Server{
		Addr:              net.JoinHostPort(cfg.AppHost, strconv.Itoa(cfg.AppPort)),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for the command stream.
		IdleTimeout:       120 * time.Second,
	}

	a.wg.Add(3)
	go func() {
		defer a.wg.Done()
		a.VoiceInput.Run(ctx, a.Bridge.RecognitionEvents())
	}()
	go func() {
		defer a.wg.Done()
		a.VoiceOutput.Run(ctx, a.Bridge.SynthesisEvents())
	}()
	go func() {
		defer a.wg.Done()
		checkBackend(ctx, a.Remote)
	}()

	return a, nil
}

func (a *App) openStorage(ctx context.Context) (storage.KV, error) {
	switch strings.ToLower(a.Config.StorageDriver) {
	case "", "sqlite":
		db, err := database.InitDB(a.Config.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = db
		slog.Info("Successfully connected to SQLite database.", "path", a.Config.DatabasePath)
		return storage.NewSQLiteKV(db), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     a.Config.RedisAddr,
			Password: a.Config.RedisPassword,
			DB:       a.Config.RedisDB,
		})
		kv := storage.NewRedisKV(rdb, a.Config.RedisPrefix)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := kv.Ping(pingCtx); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", a.Config.RedisAddr, err)
		}
		a.Redis = rdb
		slog.Info("Successfully connected to Redis.", "addr", a.Config.RedisAddr)
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", a.Config.StorageDriver)
	}
}

func (a *App) closeStorage() {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}
}

// Serve runs the control API until ctx is done, then shuts it down
// gracefully.
func (a *App) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		// Open command streams only end when their client leaves.
		slog.Warn("Graceful shutdown incomplete, closing connections", "error", err)
		_ = a.Server.Close()
	}
	return <-errCh
}

// Close stops every component and releases storage. It is safe to call more
// than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.Location.Close()
		a.VoiceInput.Close()
		a.VoiceOutput.Close()
		a.cancel()
		a.wg.Wait()
		a.closeStorage()
		if a.logCloser != nil {
			_ = a.logCloser.Close()
		}
	})
}

func logConfigSource(cfg *config.Config) {
	if cfg.ConfigFile != "" {
		slog.Info("Successfully loaded configuration from file.", "file", cfg.ConfigFile)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

// logWriter returns a size-rotated file when LOG_FILE is set.
func logWriter(cfg *config.Config, fallback io.Writer) io.Writer {
	if cfg.LogFile == "" {
		return fallback
	}
	return &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
		Compress:   true,
	}
}

func setupLogger(logLevel string, w io.Writer) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// checkBackend checks the remote backend once. The client keeps working
// when it is down: requests fail individually and are reported in the chat.
func checkBackend(ctx context.Context, client *remote.Client) {
	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Health(healthCtx); err != nil {
		if ctx.Err() == nil {
			slog.Warn("Backend is not reachable, continuing without it", "error", err)
		}
		return
	}
	slog.Info("Backend is ready.")
}
