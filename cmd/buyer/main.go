package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/uselessgoddess/warframe-prime-trash-buyer/config"
	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/adapters/notify"
	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/adapters/storage"
	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/adapters/warframemarket"
	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/buyer"
	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/ports"
	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/scanner"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run devuelve el código de salida; os.Exit solo se llama en main para que
// los defer (cierre de la base SQLite, cancel del contexto) se ejecuten.
func run(args []string) int {
	fs := flag.NewFlagSet("buyer", flag.ContinueOnError)
	configPath := fs.String("config", "config/config.yaml", "path to config file")
	once := fs.Bool("once", false, "run one scan cycle and exit")
	verbose := fs.Bool("verbose", false, "set log level to debug")
	logFormat := fs.String("format", "", "log format: text|json (overrides config)")
	table := fs.Bool("table", false, "print a table instead of one line per order")
	item := fs.String("item", "", "evaluate a single item by url_name and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		return 1
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("buyer starting",
		"config", *configPath,
		"interval", cfg.ScanInterval(),
		"platform", cfg.API.Platform,
		"once", *once,
		"item", *item,
	)

	client := warframemarket.NewClient(cfg.API.BaseURL,
		warframemarket.WithTimeout(cfg.APITimeout()),
		warframemarket.WithPlatform(cfg.API.Platform),
		warframemarket.WithLanguage(cfg.API.Language),
	)

	b := buyer.New(client, buyer.PolicyFromConfig(buyer.PolicyConfig{
		MaxPlatinum:   cfg.Buyer.MaxPlatinum,
		OnlyOnline:    cfg.Buyer.OnlyOnline,
		Platform:      cfg.Buyer.Platform,
		MinReputation: cfg.Buyer.MinReputation,
		VaultedBonus:  cfg.Buyer.VaultedBonus,
	}))

	var catalog ports.ItemCatalog
	if cfg.Storage.DSN != "" {
		store, err := storage.NewSQLiteCatalog(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			return 1
		}
		defer store.Close()
		catalog = store
	}

	var notifier ports.Notifier = notify.NewConsole(*table)
	if cfg.Discord.WebhookURL != "" {
		notifier = notify.Multi{notifier, notify.NewDiscord(cfg.Discord.WebhookURL)}
	}

	scanCfg := scanner.DefaultConfig()
	scanCfg.ScanInterval = cfg.ScanInterval()
	scanCfg.Workers = cfg.Buyer.Workers
	scanCfg.CatalogTTL = cfg.CatalogTTL()
	scanCfg.Once = *once
	scanCfg.Items = scanner.ItemFilterConfig{
		Slugs:        cfg.Buyer.Items,
		NameContains: cfg.Buyer.ItemNameContains,
		OnlyVaulted:  cfg.Buyer.OnlyVaulted,
		MaxItems:     cfg.Buyer.MaxItems,
	}

	s := scanner.New(scanCfg, client, b, catalog, notifier)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *item != "" {
		evals, err := s.EvaluateSlug(ctx, *item)
		if err != nil {
			slog.Error("evaluate item failed", "item", *item, "err", err)
			return 1
		}
		if err := notifier.Notify(ctx, evals); err != nil {
			slog.Warn("notifier error", "err", err)
		}
		return 0
	}

	if err := s.Run(ctx); err != nil {
		slog.Error("scanner exited with error", "err", err)
		return 1
	}

	slog.Info("buyer stopped cleanly")
	return 0
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
