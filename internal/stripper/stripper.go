// Package stripper removes line and block comments from source text one line
// at a time.
package stripper

import (
	"strings"
	"unicode"
)

// rules describes the comment markers of a dialect. An empty blockOpen means
// the dialect has no block comments.
type rules struct {
	lineMarker string
	blockOpen  string
	blockClose string
}

// Process returns text with the comments of dialect d removed. Runs of blank
// lines left behind collapse to a single blank line and trailing blank lines
// are dropped. Process never fails.
func Process(text string, d Dialect) string {
	r := d.rules()

	var (
		result  []string
		inBlock bool
	)

	for _, line := range strings.Split(text, "\n") {
		if inBlock {
			idx := strings.Index(line, r.blockClose)
			if idx == -1 {
				continue
			}
			line = line[idx+len(r.blockClose):]
			inBlock = false
		}

		if r.blockOpen != "" {
			line, inBlock = removeBlocks(line, r.blockOpen, r.blockClose)
		}

		if idx := strings.Index(line, r.lineMarker); idx != -1 {
			line = line[:idx]
		}

		if strings.TrimSpace(line) != "" {
			result = append(result, strings.TrimRightFunc(line, unicode.IsSpace))
		} else if len(result) > 0 && result[len(result)-1] != "" {
			result = append(result, "")
		}
	}

	for len(result) > 0 && result[len(result)-1] == "" {
		result = result[:len(result)-1]
	}

	return strings.Join(result, "\n")
}

// StripCLike removes // line comments and /* */ block comments.
func StripCLike(text string) string {
	return Process(text, CLike)
}

// StripDashLine removes -- line comments.
func StripDashLine(text string) string {
	return Process(text, DashLine)
}

// removeBlocks drops every complete open..close span from line. If an open
// marker is left without a close after it, the rest of the line is cut and
// the returned flag reports that a block comment is still open.
//
// The line is rescanned from the start after each removal so markers formed
// by joining the text around a removed span are also handled.
func removeBlocks(line, open, closeMarker string) (string, bool) {
	for {
		start := strings.Index(line, open)
		if start == -1 {
			return line, false
		}

		end := strings.Index(line[start+len(open):], closeMarker)
		if end == -1 {
			return line[:start], true
		}

		line = line[:start] + line[start+len(open)+end+len(closeMarker):]
	}
}
