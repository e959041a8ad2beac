package stripper

import (
	"fmt"
	"strings"
)

// Dialect selects the comment syntax of a file.
type Dialect int

const (
	// CLike is // line comments plus /* */ block comments.
	CLike Dialect = iota
	// DashLine is -- line comments, as used by SQL.
	DashLine
)

// Dialects lists every supported dialect in display order.
var Dialects = []Dialect{CLike, DashLine}

func (d Dialect) String() string {
	switch d {
	case CLike:
		return "c_like"
	case DashLine:
		return "dash_line"
	}
	return fmt.Sprintf("unknown_dialect_%d", int(d))
}

// Markers returns a human readable description of the comment markers.
func (d Dialect) Markers() string {
	r := d.rules()
	if r.blockOpen == "" {
		return r.lineMarker
	}
	return fmt.Sprintf("%s, %s ... %s", r.lineMarker, r.blockOpen, r.blockClose)
}

func (d Dialect) rules() rules {
	switch d {
	case DashLine:
		return rules{lineMarker: "--"}
	default:
		return rules{lineMarker: "//", blockOpen: "/*", blockClose: "*/"}
	}
}

// ParseDialect converts a config value into a Dialect. Language shorthands
// such as "ts" or "sql" are accepted as aliases.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c_like", "clike", "c", "ts", "tsx", "js", "typescript":
		return CLike, nil
	case "dash_line", "dashline", "dash", "sql":
		return DashLine, nil
	default:
		return 0, fmt.Errorf("unknown dialect %q (expected 'c_like' or 'dash_line')", s)
	}
}
