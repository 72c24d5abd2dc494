package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/qcompose/internal/config"
	"github.com/oakwood-commons/qcompose/pkg/logger"
	"github.com/oakwood-commons/qcompose/pkg/settings"
)

var (
	catalogOutput string
	catalogFull   bool
)

// versionString builds the string printed by --version and `qcompose version`.
func versionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print qcompose version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the merged suggestion catalog",
	Long: `Print the catalog the composer would use: the embedded defaults merged with
the file given by --catalog (or the default config path). --full includes the UI
settings and themes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		params := settings.FromContextOrDefault(cmd.Context())
		file, err := config.Load(params.CatalogPath)
		if err != nil {
			return err
		}
		if !catalogFull {
			file = config.File{Catalog: file.Catalog}
		}
		out, err := config.Marshal(file, catalogOutput)
		if err != nil {
			return err
		}
		logger.FromContext(cmd.Context()).V(1).Info("catalog printed",
			"path", params.CatalogPath, "format", catalogOutput)
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		params := settings.FromContextOrDefault(cmd.Context())
		file, err := config.Load(params.CatalogPath)
		if err != nil {
			return err
		}
		for _, name := range file.ThemeNames() {
			marker := "  "
			if strings.EqualFold(name, file.UI.Theme) {
				marker = "* "
			}
			fmt.Fprintln(cmd.OutOrStdout(), marker+name)
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits
	catalogCmd.Flags().StringVarP(&catalogOutput, "output", "o", config.FormatYAML, "output format: yaml|json|toml")
	catalogCmd.Flags().BoolVar(&catalogFull, "full", false, "include UI settings and themes")
}
