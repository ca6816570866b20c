package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"monthcal/internal/capture"
	"monthcal/internal/config"
	appLog "monthcal/internal/log"
	"monthcal/internal/model"
	"monthcal/internal/source"
	"monthcal/internal/tui"
	"monthcal/internal/web"
)

const version = "0.1.0"

// flagConfig holds CLI flag values that override the config file.
type flagConfig struct {
	configPath string
	listen     string
	events     string
	once       bool
	tui        bool
	logFile    string
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI flags override config file values if provided.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	if flags.events != "" {
		conf.EventsPath = flags.events
	}
	if lvl, ok := appLog.ParseLevel(conf.LogLevel); ok {
		appLog.SetLevel(lvl)
	}

	// The terminal view owns stdout, so logs go to a file instead.
	if flags.tui {
		f, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		appLog.SetOutput(f)
	}

	appLog.Info("monthcal starting", "version", version)
	appLog.Info("effective config",
		"listen", conf.Listen,
		"events_path", conf.EventsPath,
		"snapshot_cron", conf.Snapshot.Cron,
		"snapshot_url", conf.SnapshotURL(),
		"basic_auth", conf.BasicAuth != nil,
		"once", flags.once,
		"tui", flags.tui,
	)

	events, err := source.Load(conf.EventsPath)
	if err != nil {
		appLog.Error("failed to load events", err, "path", conf.EventsPath)
		os.Exit(1)
	}

	if flags.tui {
		p := tea.NewProgram(tui.NewApp(events, model.SystemClock{}), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, conf, events, flags.once); err != nil {
		appLog.Error("monthcal failed", err)
		os.Exit(1)
	}
	appLog.Info("monthcal exiting")
}

// run serves the month page until ctx is canceled. With once set it
// instead captures a single snapshot of the page and returns.
func run(ctx context.Context, conf *config.Config, events []model.Event, once bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := web.NewServer(conf, events, model.SystemClock{})
	// Bind before anything polls the address, so a port held by another
	// process fails here instead of being captured.
	ln, err := srv.Listen()
	if err != nil {
		return err
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ServeListener(ctx, ln)
	}()

	opts := capture.OptionsFromConfig(conf)

	if once {
		if err := waitHealthy(ctx, "http://"+ln.Addr().String()+"/health", 10*time.Second, serveErr); err != nil {
			return err
		}
		if err := capture.CapturePNG(ctx, opts); err != nil {
			return err
		}
		appLog.Info("snapshot written", "path", opts.OutputPath)
		cancel()
		return <-serveErr
	}

	var schedDone <-chan struct{}
	if conf.Snapshot.Cron != "" {
		done, err := capture.Schedule(ctx, conf.Snapshot.Cron, opts, capture.CapturePNG)
		if err != nil {
			return err
		}
		schedDone = done
	}

	err = <-serveErr
	cancel()
	if schedDone != nil {
		<-schedDone
	}
	return err
}

// waitHealthy polls url until it answers 200 or timeout elapses. A value
// on serveErr means the server already stopped and ends the wait with its
// error.
func waitHealthy(ctx context.Context, url string, timeout time.Duration, serveErr <-chan error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		if resp, err := http.DefaultClient.Do(req); err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		select {
		case err := <-serveErr:
			if err == nil {
				err = errors.New("server stopped before becoming healthy")
			}
			return err
		case <-ctx.Done():
			return errors.New("server did not become healthy in time")
		case <-ticker.C:
		}
	}
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "./config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.StringVar(&cfg.events, "events", "", "Path to events file: .json, .yaml or .ics (overrides config if set)")
	flag.BoolVar(&cfg.once, "once", false, "Capture one snapshot of the month page and exit")
	flag.BoolVar(&cfg.tui, "tui", false, "Show the month in the terminal instead of serving it")
	flag.StringVar(&cfg.logFile, "log-file", "monthcal.log", "Log file used while the terminal view is running")

	flag.Parse()

	return cfg
}
