package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"pixgrip/internal/config"
	"pixgrip/internal/eventbus"
	"pixgrip/internal/gateway"
	"pixgrip/internal/logging"
	"pixgrip/internal/preview"
	"pixgrip/internal/session"
	"pixgrip/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run wires and runs the program and returns the exit code; deferred cleanup runs before main exits
func run(args []string, stdout, stderr io.Writer) int {
	var (
		configPath  string
		query       string
		printMode   bool
		pages       int
		showVersion bool
	)
	fs := flag.NewFlagSet("pixgrip", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&configPath, "config", "", "Path to the config file (default "+config.DefaultPath()+")")
	fs.StringVar(&query, "q", "", "Search for this query on startup")
	fs.BoolVar(&printMode, "print", false, "Print results for -q to stdout instead of starting the UI")
	fs.IntVar(&pages, "pages", 1, "Number of pages to fetch in -print mode")
	fs.BoolVar(&showVersion, "version", false, "Print the version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintln(stdout, "pixgrip", version)
		return 0
	}

	// Remaining args form the query
	if query == "" && fs.NArg() > 0 {
		query = strings.Join(fs.Args(), " ")
	}

	configSvc := config.NewConfigService()
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath)
	}
	cfg, err := loadOrCreateConfig(configSvc)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid config %s:\n%v\n", configSvc.Path(), err)
		return 1
	}

	logger, syncLog, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "Could not open log file: %v\n", err)
		logger, syncLog = zap.NewNop(), func() error { return nil }
	}
	defer func() { _ = syncLog() }()
	// Logged after the bus and controller have shut down
	defer logger.Info("stopped")
	logger.Info("starting", zap.String("version", version), zap.String("config", configSvc.Path()))

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	bus := eventbus.New(logger)
	defer bus.Close()
	logEvents(bus, logger)
	activity := eventbus.NewActivity(0)
	activity.Attach(bus)

	client := gateway.New(
		gateway.WithEndpoint(cfg.Endpoint),
		gateway.WithAPIKey(cfg.APIKey),
		gateway.WithPerPage(cfg.PerPage),
		gateway.WithFilters(cfg.ImageType, cfg.Orientation),
		gateway.WithSafeSearch(cfg.SafeSearch),
		gateway.WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}),
		gateway.WithLogger(logger),
	)
	searcher := gateway.NewCachedSearcher(client, cfg.CacheTTL(), logger)
	controller := session.NewController(ctx, searcher, bus, logger)
	defer controller.Close()

	if printMode {
		if err := printResults(controller, query, pages, stdout); err != nil {
			logger.Error("print mode failed", zap.Error(err))
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	uiModel := ui.NewModel(ctx, ui.Options{
		Controller:   controller,
		Activity:     activity,
		Loader:       preview.NewFetcher(client.HTTPClient(), logger),
		Previews:     preview.NewCache(cfg.PreviewCacheSize),
		Config:       cfg,
		Logger:       logger,
		InitialQuery: query,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	logger.Info("starting UI")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Error("error running program", zap.Error(err))
		fmt.Fprintf(stderr, "Error running program: %v\n", err)
		return 1
	}
	logger.Info("UI exited normally")
	return 0
}

// loadOrCreateConfig loads the config, writing the defaults on first run so there is a file to edit
func loadOrCreateConfig(configSvc config.ConfigService) (*config.Config, error) {
	if _, err := os.Stat(configSvc.Path()); err == nil {
		return configSvc.Load()
	}

	cfg := config.DefaultConfig()
	saved := *cfg
	if err := configSvc.Save(&saved); err != nil {
		// Not fatal: the defaults still work with an API key from the environment
		fmt.Fprintf(os.Stderr, "Could not write default config: %v\n", err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// logEvents mirrors every bus event into the log file
func logEvents(bus eventbus.EventBus, logger *zap.Logger) {
	events := logger.Named("events")
	for _, t := range eventbus.AllEventTypes {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			events.Debug(eventbus.Describe(e), zap.String("type", string(e.Type())))
		})
	}
}
