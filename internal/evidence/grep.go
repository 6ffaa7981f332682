package evidence

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Match is a single pattern hit with surrounding context, formatted
// for use as finding evidence.
type Match struct {
	LineNumber    int
	Line          string
	Pattern       string
	ContextBefore []string
	ContextAfter  []string
	FilePath      string
}

// Format renders the match as an evidence-ready string.
func (m *Match) Format(showContext bool) string {
	var parts []string
	if m.FilePath != "" {
		parts = append(parts, "File: "+m.FilePath)
	}
	if showContext {
		for i, line := range m.ContextBefore {
			lineno := m.LineNumber - len(m.ContextBefore) + i
			parts = append(parts, fmt.Sprintf("  %d: %s", lineno, line))
		}
	}
	parts = append(parts, fmt.Sprintf("> %d: %s", m.LineNumber, m.Line))
	if showContext {
		for i, line := range m.ContextAfter {
			parts = append(parts, fmt.Sprintf("  %d: %s", m.LineNumber+i+1, line))
		}
	}
	return strings.Join(parts, "\n")
}

// Grep searches text or files for regex or literal patterns, returning
// matches with context lines. Critics cite its output as evidence.
type Grep struct {
	ContextLines int
}

// NewGrep returns a Grep with two lines of context.
func NewGrep() *Grep {
	return &Grep{ContextLines: 2}
}

// SearchOptions tune a single search.
type SearchOptions struct {
	IgnoreCase   bool
	Literal      bool // treat the pattern as a plain string, not regex
	ContextLines int  // overrides the Grep default when > -1; -1 keeps it
}

// SearchText searches a text string line by line.
func (g *Grep) SearchText(text, pattern string, opts SearchOptions) ([]Match, error) {
	ctx := g.ContextLines
	if opts.ContextLines > -1 {
		ctx = opts.ContextLines
	}

	expr := pattern
	if opts.Literal {
		expr = regexp.QuoteMeta(pattern)
	}
	if opts.IgnoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	lines := strings.Split(text, "\n")
	var matches []Match
	for i, line := range lines {
		if !re.MatchString(line) {
			continue
		}
		lo := i - ctx
		if lo < 0 {
			lo = 0
		}
		hi := i + 1 + ctx
		if hi > len(lines) {
			hi = len(lines)
		}
		matches = append(matches, Match{
			LineNumber:    i + 1,
			Line:          line,
			Pattern:       pattern,
			ContextBefore: append([]string(nil), lines[lo:i]...),
			ContextAfter:  append([]string(nil), lines[i+1:hi]...),
		})
	}
	return matches, nil
}

// SearchFile searches a file's content. A missing file yields zero
// matches, not an error, so absence can itself be evidence.
func (g *Grep) SearchFile(filePath, pattern string, opts SearchOptions) ([]Match, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", filePath, err)
	}
	matches, err := g.SearchText(string(data), pattern, opts)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		matches[i].FilePath = filePath
	}
	return matches, nil
}

// FindMissing reports which required patterns are absent from text.
// Useful for completeness checks: "does this artifact mention X?"
func (g *Grep) FindMissing(text string, requiredPatterns []string) []string {
	var missing []string
	for _, pattern := range requiredPatterns {
		matches, err := g.SearchText(text, pattern, SearchOptions{IgnoreCase: true, ContextLines: -1})
		if err != nil || len(matches) == 0 {
			missing = append(missing, pattern)
		}
	}
	return missing
}

// SummarizeMatches produces a compact evidence string, truncating once
// maxChars is reached so evidence stays readable.
func (g *Grep) SummarizeMatches(matches []Match, maxChars int) string {
	if len(matches) == 0 {
		return "(no matches found)"
	}

	var parts []string
	total := 0
	for i := range matches {
		formatted := matches[i].Format(true)
		if total+len(formatted) > maxChars {
			parts = append(parts, fmt.Sprintf("... and %d more matches", len(matches)-len(parts)))
			break
		}
		parts = append(parts, formatted)
		total += len(formatted)
	}
	return strings.Join(parts, "\n---\n")
}
