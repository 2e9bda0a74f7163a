package chunk

import (
	"regexp"
	"strings"
)

// headingPattern matches ATX-style headings at any level.
var headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)

// Split partitions the line-split content of one file into spans.
// Doc files split on heading structure, everything else into fixed
// line windows. Spans without a heading-derived title carry an empty
// Title; callers substitute the file's base name.
func Split(lines []string, kind Kind, windowLines int) []Span {
	if windowLines <= 0 {
		windowLines = DefaultWindowLines
	}
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return []Span{{StartLine: 1, EndLine: 1}}
	}

	if kind == KindDoc {
		if spans := splitByHeadings(lines); spans != nil {
			return spans
		}
		// A doc with no headings stays one whole-file span.
		return []Span{{StartLine: 1, EndLine: len(lines)}}
	}
	return splitByWindows(len(lines), windowLines)
}

// splitByHeadings opens a span at every heading line and closes it at
// the line before the next heading. Returns nil when the file has no
// headings at all.
func splitByHeadings(lines []string) []Span {
	var spans []Span
	for i, line := range lines {
		match := headingPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if len(spans) > 0 {
			prev := &spans[len(spans)-1]
			prev.EndLine = i // line before this heading, 1-based
			if prev.EndLine < prev.StartLine {
				prev.EndLine = prev.StartLine
			}
		}
		spans = append(spans, Span{
			Title:     strings.TrimSpace(match[2]),
			StartLine: i + 1,
		})
	}
	if spans == nil {
		return nil
	}

	last := &spans[len(spans)-1]
	last.EndLine = len(lines)
	if last.EndLine < last.StartLine {
		last.EndLine = last.StartLine
	}

	// Content before the first heading still needs a home.
	if first := spans[0].StartLine; first > 1 {
		spans = append([]Span{{StartLine: 1, EndLine: first - 1}}, spans...)
	}
	return spans
}

func splitByWindows(total, window int) []Span {
	var spans []Span
	for start := 1; start <= total; start += window {
		end := start + window - 1
		if end > total {
			end = total
		}
		spans = append(spans, Span{StartLine: start, EndLine: end})
	}
	return spans
}
