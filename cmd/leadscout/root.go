package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"leadscout/internal/config"
	"leadscout/internal/keywords"
	"leadscout/internal/lifecycle"
	"leadscout/internal/model"
	"leadscout/internal/notifier"
	"leadscout/internal/ratelimit"
	"leadscout/internal/research"
	"leadscout/internal/retry"
	"leadscout/internal/stepstone"
	"leadscout/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "leadscout",
	Short: "Sales-lead tracker for StepStone job postings",
	Long: "Leadscout scrapes StepStone job searches, turns postings into sales leads,\n" +
		"and walks each lead through research, letter drafting, and outreach.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: LEADSCOUT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > LEADSCOUT_CONFIG env var > "./config.yaml".
// When no explicit path is given and ./config.yaml does not exist, built-in
// defaults apply.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if path == "" {
		if env := os.Getenv("LEADSCOUT_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = "config.yaml"
		}
	}

	cfg, err := config.Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

// buildScraper wires the StepStone client with the polite per-host delay and
// the keyword tagger.
func buildScraper(cfg *config.Config, logger *slog.Logger) *stepstone.Client {
	httpClient := &http.Client{Timeout: cfg.StepStone.FetchTimeout}
	limiter := ratelimit.NewHostLimiter(cfg.StepStone.PageDelay)
	tagger := keywords.NewTagger(cfg.Keywords)
	return stepstone.NewClient(cfg.StepStone.BaseURL, httpClient, limiter, tagger, logger)
}

// buildResearcher returns the research collaborator, or nil when no API key
// is configured. Requests are retried on transient failures.
func buildResearcher(cfg *config.Config, logger *slog.Logger) model.Researcher {
	if cfg.Research.APIKey == "" {
		return nil
	}
	httpClient := &http.Client{Timeout: cfg.Research.Timeout}
	client := research.NewPerplexityClient(cfg.Research.BaseURL, cfg.Research.APIKey, cfg.Research.Model, httpClient, logger)
	return retry.NewResearcher(client, cfg.Research.Retries, 2*time.Second, logger)
}

func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	s, err := store.NewSQLiteStore(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open lead store at %s: %w", cfg.StorePath, err)
	}
	return s, nil
}

// withService loads config, opens the store, and hands a ready lifecycle
// service to fn. The store is closed when fn returns.
func withService(fn func(cfg *config.Config, svc *lifecycle.Service, st *store.SQLiteStore, logger *slog.Logger) error) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := lifecycle.NewService(st, buildResearcher(cfg, logger), logger)
	return fn(cfg, svc, st, logger)
}
