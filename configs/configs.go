// Package configs discovers testable documentation files and groups them by
// the server setup they need, so a CI job can start each test server once and
// run every file that targets it.
//
// Two files land in the same group when their front matter agrees on the
// test_apps list, the server_url, and the local_database path. Output is
// rendered either as JSON (for a workflow matrix) or as shell variable
// assignments (for a setup script to eval).
package configs

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docwright/doctest/frontmatter"
	"github.com/docwright/doctest/report"
)

// Group is one server configuration and the documentation files that test
// against it.
type Group struct {
	TestApps      []string `json:"test_apps"`
	ServerURL     string   `json:"server_url"`
	LocalDatabase string   `json:"local_database"`
	Files         []string `json:"files"`
}

// Collector scans documentation files and builds configuration groups.
type Collector struct {
	sink report.Sink
}

// Option configures a Collector.
type Option func(*Collector)

// WithSink routes scan diagnostics to the given sink.
func WithSink(s report.Sink) Option {
	return func(c *Collector) {
		if s != nil {
			c.sink = s
		}
	}
}

// New creates a Collector with a no-op sink.
func New(opts ...Option) *Collector {
	c := &Collector{sink: report.Nop{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect reads each path's front matter and groups the testable files by
// their server configuration. Files that cannot be read, have no parseable
// front matter, or declare no testable examples are skipped with a notice;
// a skipped file never fails the collection.
//
// Groups are ordered by their configuration key, files within a group in the
// order given, so output is deterministic for a fixed input list.
func (c *Collector) Collect(paths []string) []Group {
	grouped := make(map[string]*Group)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			c.skip(path, fmt.Sprintf("unreadable: %v", err))
			continue
		}
		metadata, issue := frontmatter.Parse(string(data))
		if issue != nil || metadata == nil {
			c.skip(path, "no usable front matter")
			continue
		}
		cfg := frontmatter.TestConfigFrom(metadata)
		if cfg == nil || len(cfg.Testable()) == 0 {
			continue
		}

		apps := cfg.TestApps()
		key := strings.Join(apps, ",") + "|" + cfg.ServerURL() + "|" + cfg.LocalDatabase()
		g, ok := grouped[key]
		if !ok {
			g = &Group{
				TestApps:      apps,
				ServerURL:     cfg.ServerURL(),
				LocalDatabase: cfg.LocalDatabase(),
			}
			grouped[key] = g
		}
		g.Files = append(g.Files, path)
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, *grouped[k])
	}
	return groups
}

// CollectDir walks root for markdown files and collects them. Hidden
// directories and anything under node_modules are skipped.
func (c *Collector) CollectDir(root string) ([]Group, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(name, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return c.Collect(paths), nil
}

func (c *Collector) skip(path, reason string) {
	c.sink.Log(report.Entry{
		Severity: report.SeverityNotice,
		Message:  fmt.Sprintf("Skipping %s: %s", path, reason),
		File:     path,
	})
}

// RenderJSON renders groups as indented JSON, suitable for a workflow matrix
// include list.
func RenderJSON(groups []Group) (string, error) {
	out, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// RenderShell renders each group as a block of shell variable assignments
// separated by blank lines, for consumption by eval-style setup scripts.
// Values are single-quoted; embedded single quotes are escaped.
func RenderShell(groups []Group) string {
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "test_apps=%s\n", shellQuote(strings.Join(g.TestApps, " ")))
		fmt.Fprintf(&b, "server_url=%s\n", shellQuote(g.ServerURL))
		fmt.Fprintf(&b, "local_database=%s\n", shellQuote(g.LocalDatabase))
		fmt.Fprintf(&b, "files=%s\n", shellQuote(strings.Join(g.Files, " ")))
	}
	return b.String()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
