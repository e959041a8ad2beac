// Package report collects per-file outcomes of a run and renders the console
// summary.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Failure is a file that could not be processed.
type Failure struct {
	Path   string
	Target string
	Err    error
}

// Reporter prints one line per processed file as it happens and keeps the
// counts and failures for the summary.
type Reporter struct {
	out io.Writer

	success *color.Color
	failure *color.Color
	heading *color.Color
	faint   *color.Color

	order    []string
	counts   map[string]int
	failures []Failure
}

func New(out io.Writer, withColor bool) *Reporter {
	r := &Reporter{
		out:     out,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed, color.Bold),
		heading: color.New(color.Bold),
		faint:   color.New(color.Faint),
		counts:  make(map[string]int),
	}
	for _, c := range []*color.Color{r.success, r.failure, r.heading, r.faint} {
		if withColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// StartTarget announces a target. Targets are summarized in the order they
// are started.
func (r *Reporter) StartTarget(name, description string) {
	if _, ok := r.counts[name]; !ok {
		r.order = append(r.order, name)
		r.counts[name] = 0
	}
	r.heading.Fprintf(r.out, "\n%s\n", description)
}

// Missing notes a target whose directory does not exist. It is not a failure.
func (r *Reporter) Missing(path string) {
	r.faint.Fprintf(r.out, "Path not found: %s\n", path)
}

func (r *Reporter) Success(relPath, target string) {
	r.counts[target]++
	r.success.Fprint(r.out, "✓ ")
	fmt.Fprintln(r.out, relPath)
}

func (r *Reporter) Failure(path, target string, err error) {
	r.failures = append(r.failures, Failure{Path: path, Target: target, Err: err})
	r.failure.Fprint(r.out, "✗ ")
	fmt.Fprintln(r.out, path)
}

// Total is the number of files processed successfully.
func (r *Reporter) Total() int {
	total := 0
	for _, n := range r.counts {
		total += n
	}
	return total
}

// Count is the number of files processed successfully for target.
func (r *Reporter) Count(target string) int {
	return r.counts[target]
}

func (r *Reporter) Failures() []Failure {
	return r.failures
}

func (r *Reporter) HasFailures() bool {
	return len(r.failures) > 0
}

// Summary prints the per-target counts followed by every failure.
func (r *Reporter) Summary() {
	total := r.Total()
	r.success.Fprintf(r.out, "\nDone! Processed %d %s total.\n", total, Plural(total, "file", "files"))
	for _, name := range r.order {
		fmt.Fprintf(r.out, "  - %s: %d\n", name, r.counts[name])
	}

	if !r.HasFailures() {
		return
	}

	r.failure.Fprintf(r.out, "\n%d %s:\n", len(r.failures), Plural(len(r.failures), "error", "errors"))
	for _, f := range r.failures {
		fmt.Fprintf(r.out, "  - %s: %v\n", f.Path, f.Err)
	}
}

// Plural returns singular when n is 1 and plural otherwise.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
