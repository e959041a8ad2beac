package stripcli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grafana/strip-comments/internal/files"
	"github.com/grafana/strip-comments/internal/report"
	"github.com/grafana/strip-comments/internal/stripper"
	"github.com/grafana/strip-comments/internal/types"
)

type stripOptions struct {
	root       string
	configPath string
	targets    []string
	newline    string
	noColor    bool
	verbose    bool
}

func stripCommand() *cobra.Command {
	var opts stripOptions

	cmd := &cobra.Command{
		Use:   "strip [flags]",
		Short: "Strip comments from every configured target",
		Long: `The strip subcommand rewrites every file of the configured targets in place.
A file that cannot be read or written is reported and skipped; the command
exits non-zero when any file failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrip(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.root, "root", "", fmt.Sprintf("Project root target paths are resolved against (default $%s or the working directory)", files.RootEnvVar))
	cmd.Flags().StringVar(&opts.configPath, "config", "", fmt.Sprintf("Path to the targets file (default <root>/%s)", files.DefaultConfigName))
	cmd.Flags().StringSliceVar(&opts.targets, "target", nil, "Only process the named targets")
	cmd.Flags().StringVar(&opts.newline, "newline", "", "Line ending to write: lf or crlf (overrides the targets file)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every file read and write")

	return cmd
}

func runStrip(cmd *cobra.Command, opts stripOptions) error {
	logger, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	fileHelper, err := files.NewFileHelper(opts.root, opts.configPath, logger)
	if err != nil {
		return err
	}

	projectTargets, err := fileHelper.LoadProjectTargets()
	if err != nil {
		return fmt.Errorf("failed to load targets: %w", err)
	}

	if opts.newline != "" {
		projectTargets.Newline = opts.newline
	}
	newline, err := files.ParseNewline(projectTargets.Newline)
	if err != nil {
		return err
	}

	targets, err := selectTargets(projectTargets.Targets, opts.targets)
	if err != nil {
		return err
	}

	rep := report.New(cmd.OutOrStdout(), !opts.noColor && !color.NoColor)
	for _, target := range targets {
		stripTarget(fileHelper, rep, logger, target, projectTargets.SkipDirs, newline)
	}
	rep.Summary()

	if rep.HasFailures() {
		n := len(rep.Failures())
		return fmt.Errorf("%d %s could not be processed", n, report.Plural(n, "path", "paths"))
	}
	return nil
}

// selectTargets keeps the targets named on the command line, in config order.
func selectTargets(all []types.Target, names []string) ([]types.Target, error) {
	if len(names) == 0 {
		return all, nil
	}

	byName := make(map[string]bool, len(names))
	for _, name := range names {
		byName[name] = true
	}

	var selected []types.Target
	for _, t := range all {
		if byName[t.Name] {
			selected = append(selected, t)
			delete(byName, t.Name)
		}
	}

	if len(byName) > 0 {
		var unknown []string
		for _, name := range names {
			if byName[name] {
				unknown = append(unknown, name)
			}
		}
		return nil, fmt.Errorf("unknown target(s): %s", strings.Join(unknown, ", "))
	}

	return selected, nil
}

func stripTarget(fileHelper *files.FileHelper, rep *report.Reporter, logger *zap.Logger, target types.Target, skipDirs []string, newline files.Newline) {
	dialect, err := stripper.ParseDialect(target.Dialect)
	if err != nil {
		// LoadProjectTargets validates dialects; this only guards callers that skip it.
		rep.Failure(fileHelper.TargetPath(target.Path), target.Name, err)
		return
	}

	base := fileHelper.TargetPath(target.Path)
	rep.StartTarget(target.Name, fmt.Sprintf("Removing comments from %s files in %s...", strings.Join(target.Extensions, "/"), target.Path))

	paths, dirErrs, err := fileHelper.Enumerate(target, skipDirs)
	if errors.Is(err, fs.ErrNotExist) {
		rep.Missing(base)
		return
	}
	if err != nil {
		logger.Warn("failed to enumerate target", zap.String("target", target.Name), zap.Error(err))
		rep.Failure(base, target.Name, err)
		return
	}
	for _, dirErr := range dirErrs {
		rep.Failure(dirErr.Path, target.Name, dirErr)
	}

	logger.Debug("processing target",
		zap.String("target", target.Name),
		zap.Stringer("dialect", dialect),
		zap.Int("files", len(paths)),
	)

	for _, path := range paths {
		if err := stripFile(fileHelper, path, dialect, newline); err != nil {
			logger.Warn("failed to strip comments", zap.String("path", path), zap.Error(err))
			rep.Failure(path, target.Name, err)
			continue
		}
		rep.Success(files.RelPath(base, path), target.Name)
	}
}

func stripFile(fileHelper *files.FileHelper, path string, dialect stripper.Dialect, newline files.Newline) error {
	text, err := fileHelper.ReadText(path)
	if err != nil {
		return err
	}
	return fileHelper.WriteText(path, stripper.Process(text, dialect), newline)
}
