package stripcli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Command returns the root strip-comments command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip-comments",
		Short: "Remove comments from source files in place",
		Long: `strip-comments walks the configured directory trees and rewrites every matching
file with its line and block comments removed. Targets are read from
strip-comments.yaml in the project root when present.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		stripCommand(),
		dialectsCommand(),
	)

	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopmentConfig().Build()
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
