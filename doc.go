// Package doctest turns API documentation into an executable contract test suite.
//
// doctest parses markdown documentation files whose YAML front matter declares
// testable examples, extracts the request and response code blocks for each
// example, executes the documented request against a live test server, and
// deep-compares the observed JSON response with the documented one.
//
// # Overview
//
// The library consists of five primary packages:
//
//   - frontmatter: Extract and parse YAML front matter and test configuration
//   - schema: Validate front matter against a JSON Schema (draft-07)
//   - section: Locate request/response code blocks for a named example
//   - runner: Execute documented requests and orchestrate per-file test runs
//   - compare: Recursively diff actual vs. documented JSON responses
//
// Supporting packages:
//
//   - report: Severity-tagged logging with optional GitHub Actions annotations
//   - configs: Group documentation files by shared test configuration
//   - testapp: A small JSON REST server that examples can run against
//   - docerrors: Structured error types shared across packages
//
// # Quick Start
//
// Test every declared example in a documentation file:
//
//	import (
//		"github.com/docwright/doctest/report"
//		"github.com/docwright/doctest/runner"
//	)
//
//	r := runner.New(runner.WithSink(report.NewConsole()))
//	summary := r.TestFile("docs/api/users.md")
//	if summary.Failed > 0 {
//		os.Exit(1)
//	}
//
// Parse front matter on its own:
//
//	import "github.com/docwright/doctest/frontmatter"
//
//	meta, issue := frontmatter.Parse(content)
//	if issue != nil {
//		fmt.Printf("line %d: %s\n", issue.Line, issue.Message)
//	}
//
// # Document Format
//
// A testable document carries YAML front matter with a test mapping:
//
//	---
//	layout: page
//	test:
//	  server_url: http://localhost:3000
//	  testable:
//	    - GET example
//	    - POST example / 201
//	---
//
// and, for each declared example, a pair of heading-anchored sections:
//
//	### GET example request
//	```bash
//	curl {server_url}/users
//	```
//
//	### GET example response
//	```json
//	{"id": 1}
//	```
package doctest
