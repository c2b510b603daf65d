// Package frontmatter extracts and parses YAML front matter from markdown
// documentation files, and models the test configuration it carries.
//
// A front-matter block is recognized only when the opening "---" delimiter
// sits at column 0 of the first line and a closing "---" line follows. The
// distinct failure states (no front matter, unclosed block, indented
// delimiter, malformed YAML) each produce a specific guidance message with a
// 1-based line number so they can be surfaced as CI annotations.
package frontmatter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// ParseIssue describes why front matter could not be parsed.
type ParseIssue struct {
	// Message is the guidance text for the failure.
	Message string
	// Line is the 1-based line number the issue refers to (0 if unknown).
	Line int
}

const noFrontMatterGuidance = `No front matter found. Add YAML front matter between --- delimiters at the start of the file.
Example:
---
layout: default
description: Your description here
---`

const commonYAMLIssues = `

Common YAML issues:
- Inconsistent indentation (use spaces, not tabs)
- Unclosed quotes or brackets
- Missing colons after keys`

// yamlLinePattern extracts the line number go-yaml embeds in its error text.
var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

// Parse extracts and parses the YAML front matter from markdown content.
//
// On success it returns the decoded metadata mapping and a nil issue. On
// failure the metadata is nil and the issue carries a guidance message and,
// where available, a line number. An empty front-matter block decodes to nil
// metadata with a nil issue; callers that require front matter treat that the
// same as an absent block.
func Parse(content string) (map[string]any, *ParseIssue) {
	body, ok := extractBlock(content)
	if !ok {
		return nil, classifyMissing(content)
	}

	var metadata map[string]any
	if err := yaml.Unmarshal([]byte(body), &metadata); err != nil {
		return nil, yamlIssue(err)
	}
	return metadata, nil
}

// extractBlock returns the text between the front-matter delimiters.
// The opening delimiter must be "---" at column 0 of the first line, with
// nothing but spaces or tabs before the newline. The closing delimiter is the
// next "---" line after at least one enclosed line.
func extractBlock(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	if len(lines) < 2 || !isDelimiter(lines[0]) {
		return "", false
	}

	// The closing delimiter cannot be the line immediately after the opener;
	// the block must enclose at least one line (possibly blank).
	for i := 2; i < len(lines); i++ {
		if isDelimiter(lines[i]) {
			return strings.Join(lines[1:i], "\n"), true
		}
	}
	return "", false
}

// isDelimiter reports whether a line is a front-matter delimiter:
// "---" at column 0 followed only by spaces or tabs.
func isDelimiter(line string) bool {
	rest, found := strings.CutPrefix(line, "---")
	return found && strings.TrimRight(rest, " \t") == ""
}

// classifyMissing produces the guidance issue for content with no valid
// front-matter block, in priority order: indented delimiter, unclosed block,
// then no front matter at all.
func classifyMissing(content string) *ParseIssue {
	trimmed := strings.TrimLeft(content, " \t\r\n")
	if len(trimmed) < len(content) && strings.HasPrefix(trimmed, "---") {
		return &ParseIssue{
			Message: "Front matter delimiter has leading whitespace. " +
				"The '---' must be at the start of the line with no spaces or tabs before it.",
			Line: 1,
		}
	}

	if strings.HasPrefix(strings.TrimSpace(content), "---") {
		return &ParseIssue{
			Message: "Front matter opening delimiter found but no closing delimiter could be found. " +
				"Ensure front matter ends with '---' on its own line.",
			Line: 1,
		}
	}

	return &ParseIssue{Message: noFrontMatterGuidance, Line: 1}
}

// yamlIssue builds the issue for a YAML syntax error inside the block.
// The line number go-yaml reports is relative to the enclosed text, so the
// skipped opening delimiter line is added back to point into the document.
func yamlIssue(err error) *ParseIssue {
	line := 0
	if m := yamlLinePattern.FindStringSubmatch(err.Error()); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			line = n + 1
		}
	}

	msg := fmt.Sprintf("Invalid YAML syntax in front matter: %s", err)
	if line > 0 {
		msg += fmt.Sprintf("\nError on or near line %d.", line)
	}
	msg += commonYAMLIssues

	return &ParseIssue{Message: msg, Line: line}
}
