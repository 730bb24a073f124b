// Package report lays out section-tagged summary text onto fixed-size,
// branded pages.
package report

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const (
	HeadingTag  = "### "
	BulletTag   = "- "
	BulletGlyph = "• "
	boldMarker  = "**"
)

var reEmphasis = regexp.MustCompile(`\*\*.*?\*\*`)

type LineKind int

const (
	Plain LineKind = iota
	Heading
	Bullet
	Blank
)

func (k LineKind) String() string {
	switch k {
	case Heading:
		return "heading"
	case Bullet:
		return "bullet"
	case Blank:
		return "blank"
	default:
		return "plain"
	}
}

// Line is one input line with its tag removed.
type Line struct {
	Kind LineKind
	Text string
}

// Document is the flat, ordered list of lines to lay out.
type Document struct {
	Lines []Line
}

// Run is a piece of text drawn in a single face.
type Run struct {
	Text string
	Bold bool
}

// ParseDocument classifies each trimmed input line by its leading tag.
func ParseDocument(r io.Reader) (Document, error) {
	var doc Document

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		doc.Lines = append(doc.Lines, classify(strings.TrimSpace(scanner.Text())))
	}
	if err := scanner.Err(); err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	return doc, nil
}

func classify(line string) Line {
	switch {
	case strings.HasPrefix(line, HeadingTag):
		return Line{Kind: Heading, Text: strings.TrimPrefix(line, HeadingTag)}
	case strings.HasPrefix(line, BulletTag):
		return Line{Kind: Bullet, Text: strings.TrimPrefix(line, BulletTag)}
	case line == "":
		return Line{Kind: Blank}
	default:
		return Line{Kind: Plain, Text: line}
	}
}

// SplitEmphasis cuts text at **bold** spans. Pieces alternate between the
// text around matches and the matches themselves, including empty pieces at
// either end; a piece is bold iff it starts and ends with the marker.
func SplitEmphasis(text string) []Run {
	var pieces []string
	prev := 0
	for _, loc := range reEmphasis.FindAllStringIndex(text, -1) {
		pieces = append(pieces, text[prev:loc[0]], text[loc[0]:loc[1]])
		prev = loc[1]
	}
	pieces = append(pieces, text[prev:])

	runs := make([]Run, 0, len(pieces))
	for _, p := range pieces {
		if strings.HasPrefix(p, boldMarker) && strings.HasSuffix(p, boldMarker) {
			inner := ""
			if len(p) >= 2*len(boldMarker) {
				inner = p[len(boldMarker) : len(p)-len(boldMarker)]
			}
			runs = append(runs, Run{Text: inner, Bold: true})
			continue
		}
		runs = append(runs, Run{Text: p})
	}
	return runs
}
