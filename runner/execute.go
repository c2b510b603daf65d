package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/docwright/doctest/docerrors"
)

// DefaultTimeout bounds each example execution. A request that has not
// completed within it is a failure, never retried.
const DefaultTimeout = 10 * time.Second

// statusLine matches "<protocol>/<version> <status>" at the start of the
// captured header block. The first match wins; redirect-following commands
// that capture several header blocks are out of contract.
var statusLine = regexp.MustCompile(`HTTP/[\d.]+ (\d+)`)

// Outcome is the parsed result of one executed request.
//
// Err is non-nil exactly when no status code could be determined: the process
// failed or timed out, the output had no header/body boundary, or the status
// line did not parse. Callers must treat Err as a hard failure, not as
// missing data.
type Outcome struct {
	StatusCode int
	Headers    string
	Body       string
	Err        error
}

// Execute runs command through the shell and parses its combined output into
// a status code, header block, and body. The output must include response
// headers (the section locator injects -i into curl commands for this) with
// headers and body separated by a blank line.
func Execute(ctx context.Context, command string, timeout time.Duration) Outcome {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "bash", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Outcome{Err: &docerrors.ExecutionError{
			Command:  command,
			TimedOut: true,
			Message:  fmt.Sprintf("Request timed out after %s", timeout),
		}}
	}
	if runErr != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = runErr.Error()
		}
		return Outcome{Err: &docerrors.ExecutionError{
			Command: command,
			Message: fmt.Sprintf("Command failed: %s", msg),
			Cause:   runErr,
		}}
	}

	headers, body, found := splitResponse(stdout.String())
	if !found {
		return Outcome{Err: &docerrors.ExecutionError{
			Command: command,
			Message: "Could not split response into headers and body (no blank line found)",
		}}
	}

	status, ok := parseStatus(headers)
	if !ok {
		return Outcome{Err: &docerrors.ExecutionError{
			Command: command,
			Message: "Could not parse status code from response headers",
		}}
	}
	return Outcome{StatusCode: status, Headers: headers, Body: body}
}

// splitResponse cuts the captured output at the first blank line, trying the
// bare-newline convention before CRLF.
func splitResponse(output string) (headers, body string, found bool) {
	if h, b, ok := strings.Cut(output, "\n\n"); ok {
		return h, b, true
	}
	if h, b, ok := strings.Cut(output, "\r\n\r\n"); ok {
		return h, b, true
	}
	return "", "", false
}

func parseStatus(headers string) (int, bool) {
	m := statusLine.FindStringSubmatch(headers)
	if m == nil {
		return 0, false
	}
	status, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return status, true
}
