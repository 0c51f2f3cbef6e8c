// Package cli implements the noticepdf command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wudi/noticepdf/builder"
	"github.com/wudi/noticepdf/config"
	"github.com/wudi/noticepdf/contentstream"
	"github.com/wudi/noticepdf/fonts"
	"github.com/wudi/noticepdf/observability"
	"github.com/wudi/noticepdf/scripting"
)

// version is set at build time with -ldflags "-X".
var version = "dev"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "noticepdf",
	Short:         "Render legal notices to PDF",
	Long:          "noticepdf turns composed legal notice text into a self-contained PDF 1.4 document.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.err.Render("error: ")+err.Error())
		return 1
	}
	return 0
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) observability.Logger {
	return observability.NewSlog(cmd.ErrOrStderr(), observability.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
}

// newBuilder assembles a Builder from the [render] section.
func newBuilder(cfg config.RenderConfig, log observability.Logger) (*builder.Builder, error) {
	widths, err := fonts.Named(cfg.WidthModel)
	if err != nil {
		return nil, err
	}
	opts := []builder.Option{builder.WithWidthModel(widths), builder.WithLogger(log)}

	if cfg.HeadingScript != "" {
		src, err := os.ReadFile(cfg.HeadingScript)
		if err != nil {
			return nil, fmt.Errorf("read heading script: %w", err)
		}
		rule, err := scripting.NewHeadingRule(string(src), scripting.WithLogger(log))
		if err != nil {
			return nil, err
		}
		opts = append(opts, builder.WithHeadingRule(rule))
	}

	if cfg.Title != "" || cfg.Subtitle != "" {
		h := contentstream.DefaultHeader
		if cfg.Title != "" {
			h.Title, h.TitleOffset = cfg.Title, 0
		}
		if cfg.Subtitle != "" {
			h.Subtitle, h.SubtitleOffset = cfg.Subtitle, 0
		}
		opts = append(opts, builder.WithHeader(h))
	}
	return builder.New(opts...), nil
}
