// Package section locates a named example's request and response blocks
// inside free-form markdown prose.
//
// An example section is anchored by a level-3 or level-4 heading of the form
// "<example name> request" or "<example name> response". Authors habitually
// wrap words of the example name in backtick emphasis ("### `GET` example
// request"), so the heading match tolerates optional backticks around every
// word. The fenced code block that follows the heading carries the payload:
// a shell block for requests, a json block for responses.
//
// The scan is a small line lexer rather than one document-wide regex: lines
// are classified as heading, fence-open, fence-close, or other, and the
// locator walks them with two states (searching for the fence, collecting
// inside it). Hitting another heading before a fence opens means the section
// has no block of the expected kind.
package section

import (
	"encoding/json"
	"regexp"
	"strings"
)

// includeHeadersFlag is injected into documented curl commands so the
// response status line and headers appear in the captured output.
const includeHeadersFlag = "-i"

// serverURLPlaceholder is replaced with the configured server URL.
const serverURLPlaceholder = "{server_url}"

// ExtractRequest returns the shell command documented in the
// "<exampleName> request" section, or "" when no such section with a
// shell code block exists.
//
// The command is post-processed for execution: if it does not already request
// response headers (-i or --include), the -i flag is injected right after the
// first curl invocation; the {server_url} placeholder is replaced with
// serverURL when one is configured.
func ExtractRequest(content, serverURL, exampleName string) string {
	lines, found := extractBlock(content, exampleName, "request", isShellFence)
	if !found {
		return ""
	}

	cmd := strings.TrimSpace(strings.Join(lines, "\n"))
	if cmd == "" {
		return ""
	}

	if !strings.Contains(cmd, "-i") && !strings.Contains(cmd, "--include") {
		cmd = strings.Replace(cmd, "curl", "curl "+includeHeadersFlag, 1)
	}
	if serverURL != "" {
		cmd = strings.ReplaceAll(cmd, serverURLPlaceholder, serverURL)
	}
	return cmd
}

// ExtractResponse returns the decoded JSON documented in the
// "<exampleName> response" section. It returns nil when the section or its
// json code block is missing, and also when the block's contents do not parse
// as JSON; the caller reports the latter as a malformed documented response,
// not an execution error.
func ExtractResponse(content, exampleName string) any {
	lines, found := extractBlock(content, exampleName, "response", isJSONFence)
	if !found {
		return nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(strings.Join(lines, "\n")), &decoded); err != nil {
		return nil
	}
	return decoded
}

// extractBlock finds the section heading and collects the lines of the first
// matching fenced code block after it.
func extractBlock(content, exampleName, section string, isFence func(string) bool) ([]string, bool) {
	heading := headingPattern(exampleName, section)

	lines := strings.Split(content, "\n")
	inSection := false
	inFence := false
	var collected []string

	for _, line := range lines {
		if !inSection {
			if heading.MatchString(line) {
				inSection = true
			}
			continue
		}

		if inFence {
			if strings.TrimSpace(line) == "```" {
				return collected, true
			}
			collected = append(collected, line)
			continue
		}

		if isFence(line) {
			inFence = true
			continue
		}
		// Another heading before any fence: this section has no block.
		if strings.HasPrefix(line, "#") {
			return nil, false
		}
	}

	// An unterminated fence at end of document still yields its contents.
	if inFence && len(collected) > 0 {
		return collected, true
	}
	return nil, false
}

// headingPattern builds the flexible heading matcher for a section kind.
// Each word of the example name may be wrapped in backticks, so
// "GET example" matches "GET example", "`GET` example", "GET `example`",
// and "`GET` `example`". Headings at ### and #### level are accepted.
func headingPattern(exampleName, section string) *regexp.Regexp {
	words := strings.Fields(exampleName)
	flexible := make([]string, 0, len(words))
	for _, word := range words {
		flexible = append(flexible, "`?"+regexp.QuoteMeta(word)+"`?")
	}
	pattern := `(?i)^###\#?\s+` + strings.Join(flexible, `\s+`) + `\s+` + section
	return regexp.MustCompile(pattern)
}

// isShellFence reports whether a line opens a shell-tagged code fence.
func isShellFence(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "```bash") || strings.HasPrefix(trimmed, "```sh")
}

// isJSONFence reports whether a line opens a json-tagged code fence.
func isJSONFence(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```json")
}
