package pipeline

import (
	"context"
	"regexp"
	"strings"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor prepares Markdown for goldmark.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown normalizes line endings, strips a leading BOM and
// compresses runs of blank lines outside fenced code blocks. Table structure
// and code content are never altered.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, "\ufeff")
	content = crlfOrCR.ReplaceAllString(content, "\n")
	return compressBlankLines(content)
}

// compressBlankLines keeps at most one empty line between blocks. Lines
// inside a fenced code block are copied as-is.
func compressBlankLines(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	var fence string // opening marker of the current code block, "" outside
	blanks := 0
	for _, line := range lines {
		if fence != "" {
			out = append(out, line)
			if closesFence(line, fence) {
				fence = ""
			}
			continue
		}
		if line == "" {
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		fence = openingFence(line)
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// openingFence returns the fence marker (``` or ~~~, possibly longer) that
// line opens, or "".
func openingFence(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return ""
	}
	ch := trimmed[0]
	if ch != '`' && ch != '~' {
		return ""
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == ch {
		n++
	}
	if n < 3 {
		return ""
	}
	// A backtick fence's info string cannot contain backticks.
	if ch == '`' && strings.ContainsRune(trimmed[n:], '`') {
		return ""
	}
	return trimmed[:n]
}

// closesFence reports whether line ends the block opened by fence: the same
// character, at least as long, nothing but spaces after it.
func closesFence(line, fence string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	rest := strings.TrimLeft(trimmed, fence[:1])
	if len(trimmed)-len(rest) < len(fence) {
		return false
	}
	return strings.TrimSpace(rest) == ""
}
