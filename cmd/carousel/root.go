package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"carousel/internal/carousel"
	"carousel/internal/config"
	"carousel/internal/eventbus"
	"carousel/internal/ui"
)

// flags holds the command line overrides
type flags struct {
	value        string
	logFile      string
	debug        bool
	itemsPerView int
	rewind       bool
	mousewheel   bool
	style        string
	watch        bool
	print        bool
}

func newRootCmd() *cobra.Command {
	return newCommand(&flags{})
}

func newCommand(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carousel [deck.toml]",
		Short: "Browse a deck of slides in a terminal carousel",
		Long: `carousel shows the slides of a TOML deck file as a draggable,
keyboard-navigable carousel. Without a deck a built-in demo is shown.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd.Context(), cmd, f, path)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.value, "value", "v", "", "value of the slide to start on")
	fs.StringVar(&f.logFile, "log-file", "carousel.log", "file to write logs to")
	fs.BoolVar(&f.debug, "debug", false, "log at debug level")
	fs.IntVar(&f.itemsPerView, "items-per-view", 0, "slides visible at once (overrides the deck)")
	fs.BoolVar(&f.rewind, "rewind", false, "wrap around at either end (overrides the deck)")
	fs.BoolVar(&f.mousewheel, "mousewheel", false, "step slides with the mouse wheel (overrides the deck)")
	fs.StringVar(&f.style, "style", ui.DefaultGlamourStyle, "markdown style for slide bodies (dark, light, notty, ...)")
	fs.BoolVar(&f.watch, "watch", true, "reload the deck when the file changes")
	fs.BoolVar(&f.print, "print", false, "print the value of the final slide on exit")
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, f *flags, path string) error {
	logger, closeLog, err := openLog(f.logFile, f.debug)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bus := eventbus.New(logger)
	defer bus.Close()
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ErrorEvent); ok {
			logger.Error(ev.Message, "err", ev.Err)
		}
	})
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigChangedEvent); ok {
			logger.Info("deck reloaded", "path", ev.Path, "slides", ev.Slides)
		}
	})

	svc := config.NewConfigServiceWithBus(bus)
	cfg, err := loadDeck(svc, path)
	if err != nil {
		return err
	}
	applyFlags(cfg, cmd.Flags(), f)

	model := ui.NewModel(bus, cfg.Deck(), options(cfg, logger))
	model.SetGlamourStyle(f.style)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)

	if path != "" && f.watch {
		w, err := config.NewWatcher(path, svc, bus, logger)
		if err != nil {
			logger.Warn("deck reload disabled", "err", err)
		} else {
			go func() {
				err := w.Run(ctx, func(c *config.Config) {
					applyFlags(c, cmd.Flags(), f)
					p.Send(ui.DeckReloadedMsg{Deck: c.Deck(), Options: options(c, logger)})
				})
				if err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("watcher stopped", "err", err)
				}
			}()
		}
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}

	if f.print {
		fmt.Fprintln(cmd.OutOrStdout(), model.Value())
	}
	return nil
}

// loadDeck reads path, or returns the demo deck when no path is given
func loadDeck(svc config.ConfigService, path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := svc.LoadFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load deck: %w", err)
	}
	return cfg, nil
}

// applyFlags overrides deck settings with flags set on the command line
func applyFlags(cfg *config.Config, fs *pflag.FlagSet, f *flags) {
	if fs.Changed("value") {
		cfg.Carousel.Value = f.value
	}
	if fs.Changed("items-per-view") && f.itemsPerView > 0 {
		cfg.Carousel.ItemsPerView = f.itemsPerView
	}
	if fs.Changed("rewind") {
		cfg.Carousel.Rewind = f.rewind
	}
	if fs.Changed("mousewheel") {
		cfg.Carousel.Mousewheel = f.mousewheel
	}
}

// options builds core options that log value changes
func options(cfg *config.Config, logger *log.Logger) carousel.Options {
	opts := cfg.Options()
	opts.Logger = logger
	opts.OnChange = func(value string) {
		logger.Info("slide changed", "value", value)
	}
	return opts
}

// openLog opens the log file. The terminal belongs to the TUI, so an empty
// path discards logs instead of falling back to stderr.
func openLog(path string, debug bool) (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open log file: %w", err)
		}
		w = file
		closeFn = func() { _ = file.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "carousel",
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}
