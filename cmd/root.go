package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/qcompose/internal/config"
	"github.com/oakwood-commons/qcompose/internal/ui"
	"github.com/oakwood-commons/qcompose/pkg/logger"
	"github.com/oakwood-commons/qcompose/pkg/settings"
	"github.com/oakwood-commons/qcompose/pkg/tui"
)

var (
	catalogPath    string
	themeName      string
	noColor        bool
	debug          bool
	watch          bool
	renderSnapshot bool
	startKeys      []string
	snapshotWidth  int
	snapshotHeight int
	logFile        string
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName,
	Short: "Compose filter queries in the terminal",
	Long: `qcompose opens an inline query composer. Type filters such as status:active,
join them with AND/OR and brackets, pick suggestions from the catalog, and press
enter on an empty selection to print the query to stdout.`,
	Example: `  qcompose
  q="$(qcompose --catalog ./catalog.yaml)"
  qcompose --snapshot --no-color --press "status:active<Space>" --press "and<Space>"`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runComposer,
}

// setupRun builds the per-run settings and the logger and stores both in the
// command context.
func setupRun(cmd *cobra.Command, _ []string) error {
	params := settings.NewCliParams()
	params.CatalogPath = config.ResolvePath(catalogPath)
	params.ThemeName = themeName
	params.NoColor = noColor
	params.Watch = watch
	params.Interactive = cmd == rootCmd && !renderSnapshot
	if debug {
		params.MinLogLevel = -2
	}
	switch {
	case logFile != "":
		params.LogOutput = logFile
	case !params.Interactive:
		params.LogOutput = logger.OutputStderr
	}

	lgr, err := logger.Setup(logger.Options{Level: params.MinLogLevel, Output: params.LogOutput})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, lgr)
	ctx = settings.IntoContext(ctx, params)
	cmd.SetContext(ctx)
	return nil
}

func runComposer(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	params := settings.FromContextOrDefault(ctx)
	lgr := logger.FromContext(ctx)

	file, theme, err := loadConfigState(params.CatalogPath, params.ThemeName, params.NoColor)
	if err != nil {
		return err
	}
	cfg := tui.FromFile(file)
	cfg.Theme = &theme
	cfg.NoColor = params.NoColor
	cfg.StartKeys = startKeys
	cfg.Logger = lgr

	if renderSnapshot {
		cfg.Width, cfg.Height = resolveSnapshotSize(snapshotWidth, snapshotHeight)
		out, err := tui.RenderSnapshot(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	cfg.Width, cfg.Height = snapshotWidth, snapshotHeight
	if params.Watch {
		if params.CatalogPath == "" {
			return errors.WithHintf(errors.New("--watch needs a config file"),
				"pass --catalog or create %s", config.DefaultPath())
		}
		watchCtx, cancel := context.WithCancel(ctx)
		reloads, wait := startWatcher(watchCtx, params.CatalogPath, *lgr)
		defer func() {
			cancel()
			wait()
		}()
		cfg.Reload = reloads
	}

	opts, cleanup := getProgramOptions()
	defer cleanup()

	query, err := tui.Run(ctx, cfg, opts...)
	if errors.Is(err, tui.ErrCancelled) {
		lgr.V(1).Info("composer cancelled")
		return errCancelled
	}
	if err != nil {
		return err
	}
	lgr.Info("query composed", "query", query)
	fmt.Fprintln(cmd.OutOrStdout(), query)
	return nil
}

// loadConfigState loads the merged configuration and resolves the theme.
func loadConfigState(path, theme string, plain bool) (config.File, ui.Theme, error) {
	file, err := config.Load(path)
	if err != nil {
		return config.File{}, ui.Theme{}, err
	}
	th, err := ui.LoadTheme(file, theme, plain)
	if err != nil {
		return config.File{}, ui.Theme{}, err
	}
	return file, th, nil
}

// resolveSnapshotSize fills unset dimensions from the terminal.
func resolveSnapshotSize(width, height int) (int, int) {
	if width > 0 && height > 0 {
		return width, height
	}
	w, h := tui.DetectTerminalSize()
	if width <= 0 {
		width = w
	}
	if height <= 0 {
		height = h
	}
	return width, height
}

func init() { //nolint:gochecknoinits
	// Assigned here rather than in the literal: setupRun refers to rootCmd.
	rootCmd.PersistentPreRunE = setupRun
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "path to a YAML or TOML config file with the catalog (default $XDG_CONFIG_HOME/qcompose/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log debug events")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write JSON logs to this file")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "theme name (default from config; see 'qcompose themes')")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "reload the catalog when the config file changes")
	rootCmd.Flags().BoolVar(&renderSnapshot, "snapshot", false, "render a single frame and exit; honors --width/--height")
	rootCmd.Flags().StringArrayVar(&startKeys, "press", nil, "simulate keys on startup; use <Key> for special keys (e.g. <Space>, <CR>, <Esc>, <Down>, <C-o>)")
	rootCmd.Flags().IntVar(&snapshotWidth, "width", 0, "width in columns")
	rootCmd.Flags().IntVar(&snapshotHeight, "height", 0, "height in rows")
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd, catalogCmd, themesCmd)
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
