package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"itemcursor/internal/config"
	"itemcursor/internal/logging"
	"itemcursor/internal/ui"
	"itemcursor/internal/ui/logic"
	"itemcursor/internal/ui/services/events"
)

const (
	exitChosen   = 0
	exitNoChoice = 1
	exitUsage    = 2
)

// cliFlags holds the parsed command line
type cliFlags struct {
	flags *pflag.FlagSet

	configPath   string
	wrap         bool
	required     bool
	initialIndex int
	filterMode   string
	logLevel     string
	logFile      string
	title        string
	initConfig   bool
	items        []string
}

// Return a new root command. launch runs the picker once flags are parsed
// and returns the exit code.
func newRoot(f *cliFlags, launch func(f *cliFlags) int, code *int) *cobra.Command {
	root := &cobra.Command{
		Use:   "itemcursor [flags] [items...]",
		Short: "Pick one item interactively and print it to stdout",
		Long: `Pick one item interactively and print it to stdout.

Items come from the arguments, piped stdin or the config file. The list is
drawn on stderr so the result can be captured: ls | itemcursor`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.flags = cmd.Flags()
			f.items = args
			*code = launch(f)
			return nil
		},
	}

	flags := root.Flags()
	flags.StringVarP(&f.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/itemcursor/config.toml)")
	flags.BoolVarP(&f.wrap, "wrap", "w", false, "wrap navigation around the ends of the list")
	flags.BoolVarP(&f.required, "required", "r", false, "always keep an item selected")
	flags.IntVarP(&f.initialIndex, "index", "i", -1, "initially selected index, remembered until enough items arrive")
	flags.StringVar(&f.filterMode, "filter-mode", "", "how the filter treats non-matching items: dim or hide")
	flags.StringVar(&f.logLevel, "log-level", "", "log level: DEBUG, INFO, WARN, ERR or NONE")
	flags.StringVar(&f.logFile, "log-file", "", "log file path, empty string disables logging")
	flags.StringVarP(&f.title, "title", "t", "", "title shown above the list")
	flags.BoolVar(&f.initConfig, "init-config", false, "write the effective settings to the config file and exit")

	return root
}

// applyTo overrides config values with the flags the user actually set
func (f *cliFlags) applyTo(cfg *config.Config) {
	if f.flags.Changed("wrap") {
		cfg.Cursor.Wrap = f.wrap
	}
	if f.flags.Changed("required") {
		cfg.Cursor.Required = f.required
	}
	if f.flags.Changed("index") {
		cfg.Cursor.InitialIndex = f.initialIndex
	}
	if f.flags.Changed("filter-mode") {
		cfg.UISettings.FilterMode = f.filterMode
	}
	if f.flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if f.flags.Changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if f.flags.Changed("title") {
		cfg.Title = f.title
	}
}

func stdinIsPiped() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	code := exitChosen
	f := &cliFlags{}
	root := newRoot(f, launch, &code)
	root.SetArgs(args)
	root.SetOut(os.Stderr)
	root.SetErr(os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nRun 'itemcursor --help' for usage.\n", err)
		return exitUsage
	}
	return code
}

func launch(flags *cliFlags) int {
	// Load configuration
	configSvc := config.NewConfigService()
	if flags.configPath != "" {
		configSvc = config.NewConfigServiceWithPath(flags.configPath)
	}
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return exitUsage
	}
	flags.applyTo(cfg)

	if flags.initConfig {
		if err := configSvc.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			return exitUsage
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", configSvc.Path())
		return exitChosen
	}

	// Set up logging
	logCloser, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		return exitUsage
	}
	defer logCloser.Close()

	filterMode, err := logic.ParseFilterMode(cfg.UISettings.FilterMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	opts := ui.Options{
		Title:           cfg.Title,
		Unavailable:     cfg.Unavailable,
		Wrap:            cfg.Cursor.Wrap,
		Required:        cfg.Cursor.Required,
		InitialIndex:    cfg.Cursor.InitialIndex,
		FilterMode:      filterMode,
		ShowPageNumbers: cfg.UISettings.ShowPageNumbers,
		ViewportHeight:  cfg.UISettings.ViewportHeight,
	}

	streaming := false
	switch {
	case len(flags.items) > 0:
		opts.Items = flags.items
	case stdinIsPiped():
		streaming = true
	default:
		opts.Items = cfg.Items
	}
	log.Printf("[INFO] starting with %d items (config %s, streaming %t)", len(opts.Items), configSvc.Path(), streaming)

	// Create UI model
	uiModel := ui.NewModel(events.NewBus(), opts)
	uiModel.SetLoading(streaming)

	// The list renders to stderr so stdout only carries the result.
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithOutput(os.Stderr)}
	if streaming {
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(uiModel, programOpts...)
	uiModel.SetProgram(p)

	if streaming {
		go ui.StreamLines(os.Stdin, p.Send)
	}

	if os.Getenv("ITEMCURSOR_E2E_TEST") == "1" {
		fmt.Fprint(os.Stderr, "__READY__")
	}

	// Run the UI
	if _, err := p.Run(); err != nil {
		log.Printf("[ERR] program failed: %v", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		return exitNoChoice
	}

	item, ok := uiModel.Chosen()
	if !ok {
		log.Printf("[INFO] quit without choosing")
		return exitNoChoice
	}
	fmt.Fprintln(os.Stdout, item)
	return exitChosen
}
