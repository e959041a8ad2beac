package files

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/grafana/strip-comments/internal/stripper"
	"github.com/grafana/strip-comments/internal/types"
)

// DefaultConfigName is looked up in the project root when no config path is given.
const DefaultConfigName = "strip-comments.yaml"

// RootEnvVar overrides the working directory as the project root.
const RootEnvVar = "STRIP_COMMENTS_ROOT"

// ErrInvalidEncoding is returned by ReadText for files that are not valid UTF-8.
var ErrInvalidEncoding = errors.New("file is not valid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Newline is the line ending written back to processed files.
type Newline string

const (
	LF   Newline = "lf"
	CRLF Newline = "crlf"
)

// ParseNewline validates a newline setting. An empty string selects LF.
func ParseNewline(s string) (Newline, error) {
	switch Newline(strings.ToLower(strings.TrimSpace(s))) {
	case "", LF:
		return LF, nil
	case CRLF:
		return CRLF, nil
	default:
		return "", fmt.Errorf("unknown newline %q (expected 'lf' or 'crlf')", s)
	}
}

func (n Newline) sequence() string {
	if n == CRLF {
		return "\r\n"
	}
	return "\n"
}

type FileHelper struct {
	// ProjectRoot is the directory target paths are resolved against.
	ProjectRoot string

	// ConfigPath is the absolute path to the targets file. It may not exist.
	ConfigPath string

	logger *zap.Logger
}

// NewFileHelper resolves root and configPath to absolute paths. An empty root
// falls back to $STRIP_COMMENTS_ROOT and then the working directory; an empty
// configPath selects strip-comments.yaml inside the root.
func NewFileHelper(root, configPath string, logger *zap.Logger) (*FileHelper, error) {
	if root == "" {
		root = os.Getenv(RootEnvVar)
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}

	projectRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root %s: %w", root, err)
	}

	if configPath == "" {
		configPath = filepath.Join(projectRoot, DefaultConfigName)
	}
	absConfigPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", configPath, err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &FileHelper{
		ProjectRoot: projectRoot,
		ConfigPath:  absConfigPath,
		logger:      logger,
	}, nil
}

// DefaultProjectTargets mirrors the layout the tool was first written for: a
// TypeScript frontend, SQL migrations and TypeScript edge functions.
func DefaultProjectTargets() *types.ProjectTargets {
	return &types.ProjectTargets{
		Newline:  string(LF),
		SkipDirs: []string{".git", "node_modules"},
		Targets: []types.Target{
			{Name: "frontend", Path: "src", Dialect: stripper.CLike.String(), Extensions: []string{"ts", "tsx"}},
			{Name: "migrations", Path: filepath.Join("supabase", "migrations"), Dialect: stripper.DashLine.String(), Extensions: []string{"sql"}},
			{Name: "functions", Path: filepath.Join("supabase", "functions"), Dialect: stripper.CLike.String(), Extensions: []string{"ts"}},
		},
	}
}

// LoadProjectTargets reads and validates the targets file. A missing file
// yields DefaultProjectTargets.
func (d *FileHelper) LoadProjectTargets() (*types.ProjectTargets, error) {
	data, err := os.ReadFile(d.ConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		d.logger.Debug("config file not found, using defaults", zap.String("path", d.ConfigPath))
		return DefaultProjectTargets(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", d.ConfigPath, err)
	}

	var projectTargets types.ProjectTargets
	if err := yaml.Unmarshal(data, &projectTargets); err != nil {
		return nil, fmt.Errorf("parse %s: %w", d.ConfigPath, err)
	}

	if err := Validate(&projectTargets); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", d.ConfigPath, err)
	}

	return &projectTargets, nil
}

// Validate checks every target and normalizes extensions to lower case
// without a leading dot.
func Validate(p *types.ProjectTargets) error {
	if _, err := ParseNewline(p.Newline); err != nil {
		return err
	}
	if len(p.Targets) == 0 {
		return errors.New("no targets defined")
	}

	seen := make(map[string]bool, len(p.Targets))
	for i := range p.Targets {
		t := &p.Targets[i]
		if t.Name == "" {
			return fmt.Errorf("target %d: missing name", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("target %q: duplicate name", t.Name)
		}
		seen[t.Name] = true

		if t.Path == "" {
			return fmt.Errorf("target %q: missing path", t.Name)
		}
		if _, err := stripper.ParseDialect(t.Dialect); err != nil {
			return fmt.Errorf("target %q: %w", t.Name, err)
		}
		if len(t.Extensions) == 0 {
			return fmt.Errorf("target %q: no extensions", t.Name)
		}
		for j, ext := range t.Extensions {
			t.Extensions[j] = normalizeExtension(ext)
		}
	}
	return nil
}

func (d *FileHelper) TargetPath(targetPath string) string {
	if filepath.IsAbs(targetPath) {
		return targetPath
	}
	return filepath.Join(d.ProjectRoot, targetPath)
}

// DirError is a directory below a target that could not be read. Enumerate
// skips it and keeps walking.
type DirError struct {
	Path string
	Err  error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("read directory %s: %v", e.Path, e.Err)
}

func (e *DirError) Unwrap() error {
	return e.Err
}

// Enumerate walks the target directory and returns, sorted, every regular
// file whose extension is listed by the target. Directories named in skipDirs
// are not descended into. Unreadable subdirectories are returned as DirErrors
// alongside the files that could be found. A missing target directory is
// reported as an error wrapping fs.ErrNotExist.
func (d *FileHelper) Enumerate(target types.Target, skipDirs []string) ([]string, []*DirError, error) {
	base := d.TargetPath(target.Path)

	info, err := os.Stat(base)
	if err != nil {
		return nil, nil, fmt.Errorf("path not found %s: %w", base, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("target path %s is not a directory", base)
	}

	wanted := make(map[string]bool, len(target.Extensions))
	for _, ext := range target.Extensions {
		wanted[normalizeExtension(ext)] = true
	}
	skip := make(map[string]bool, len(skipDirs))
	for _, dir := range skipDirs {
		skip[dir] = true
	}

	var (
		paths   []string
		dirErrs []*DirError
	)
	err = filepath.WalkDir(base, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == base || entry == nil || !entry.IsDir() {
				return err
			}
			d.logger.Warn("skipping unreadable directory", zap.String("path", path), zap.Error(err))
			dirErrs = append(dirErrs, &DirError{Path: path, Err: err})
			return filepath.SkipDir
		}
		if entry.IsDir() {
			if path != base && skip[entry.Name()] {
				d.logger.Debug("skipping directory", zap.String("path", path))
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		if wanted[normalizeExtension(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", base, err)
	}

	sort.Strings(paths)
	return paths, dirErrs, nil
}

// ReadText returns the UTF-8 contents of path with any byte order mark
// removed and CRLF or lone CR line endings converted to LF.
func (d *FileHelper) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read %s: %w", path, ErrInvalidEncoding)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	d.logger.Debug("read file", zap.String("path", path), zap.Int("bytes", len(data)))
	return text, nil
}

// WriteText overwrites path with text, converting LF line endings to the
// requested newline. The file keeps its permission bits.
func (d *FileHelper) WriteText(path, text string, newline Newline) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if seq := newline.sequence(); seq != "\n" {
		text = strings.ReplaceAll(text, "\n", seq)
	}

	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	d.logger.Debug("wrote file", zap.String("path", path), zap.Int("bytes", len(text)))
	return nil
}

// RelPath returns path relative to base, or path itself when that is not possible.
func RelPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
