package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/intl"
	"github.com/dmitrymomot/intl/pkg/logger"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	engineVersion string
	verbose       bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "intlfmt",
		Short: "Format localized messages with named placeholders",
		Long: `intlfmt formats ICU style message patterns that use named placeholders.

Placeholders such as {name} or {count,plural,...} are rewritten to positional
arguments before the pattern reaches the formatting engine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.engineVersion, "engine-version", "", "Override the version reported by the formatting engine")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Write debug logs to stderr")

	cmd.AddCommand(
		newFormatCmd(flags),
		newNormalizeCmd(),
		newServeCmd(flags),
	)

	return cmd
}

// cliLogger returns a debug text logger on w when verbose is set.
func (g *globalFlags) cliLogger(w io.Writer) *slog.Logger {
	if !g.verbose {
		return logger.NewNope()
	}
	return logger.New(
		logger.WithFormat(logger.FormatText),
		logger.WithLevel(slog.LevelDebug),
		logger.WithWriter(w),
	)
}

func (g *globalFlags) formatterOptions(log *slog.Logger) []intl.Option {
	opts := []intl.Option{intl.WithLogger(log)}
	if g.engineVersion != "" {
		opts = append(opts, intl.WithEngineVersion(g.engineVersion))
	}
	return opts
}
