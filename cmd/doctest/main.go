package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/docwright/doctest"
	"github.com/docwright/doctest/configs"
	"github.com/docwright/doctest/docerrors"
	"github.com/docwright/doctest/frontmatter"
	"github.com/docwright/doctest/internal/mcpserver"
	"github.com/docwright/doctest/report"
	"github.com/docwright/doctest/runner"
	"github.com/docwright/doctest/schema"
	"github.com/docwright/doctest/testapp"
	"go.yaml.in/yaml/v4"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("doctest v%s\n", doctest.Version())
	case "help", "-h", "--help":
		printUsage()
	case "test":
		if err := handleTest(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "frontmatter":
		if err := handleFrontMatter(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "configs":
		if err := handleConfigs(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := handleServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := mcpserver.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// testFlags contains flags for the test command
type testFlags struct {
	schemaPath string
	annotate   bool
	action     string
	timeout    time.Duration
}

func setupTestFlags() (*flag.FlagSet, *testFlags) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := &testFlags{}

	defaultAction := os.Getenv("DOCTEST_ANNOTATION_THRESHOLD")
	if defaultAction == "" {
		defaultAction = "warning"
	}

	fs.StringVar(&flags.schemaPath, "schema", envOr("DOCTEST_SCHEMA_PATH", schema.DefaultPath), "front-matter schema path")
	fs.BoolVar(&flags.annotate, "annotate", false, "emit GitHub Actions annotations")
	fs.StringVar(&flags.action, "action", defaultAction, "minimum severity to annotate: all, warning, or error")
	fs.DurationVar(&flags.timeout, "timeout", runner.DefaultTimeout, "per-example execution timeout")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: doctest test [flags] <file>...\n\n")
		_, _ = fmt.Fprintf(output, "Run the examples documented in markdown files against the live test server.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  doctest test docs/users.md\n")
		_, _ = fmt.Fprintf(output, "  doctest test --annotate --action error docs/*.md\n")
		_, _ = fmt.Fprintf(output, "  doctest test --schema schemas/front-matter.json docs/users.md\n")
	}

	return fs, flags
}

func handleTest(args []string) error {
	fs, flags := setupTestFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("test command requires at least one file path")
	}

	threshold, err := report.ParseThreshold(flags.action)
	if err != nil {
		return err
	}
	sink := report.NewConsole()
	if flags.annotate {
		sink = report.NewAnnotating(threshold)
	}

	r := runner.New(
		runner.WithSink(sink),
		runner.WithSchemaPath(flags.schemaPath),
		runner.WithTimeout(flags.timeout),
	)

	var run runner.FileSummary
	blocked := 0
	for _, path := range fs.Args() {
		summary, err := r.TestFile(context.Background(), path)
		if err != nil {
			blocked++
		}
		run.Add(summary)
	}

	fmt.Printf("\nTotal: %d, Passed: %d, Failed: %d\n", run.Total, run.Passed, run.Failed)

	if blocked > 0 {
		return fmt.Errorf("%d file(s) had blocking errors", blocked)
	}
	if run.Failed > 0 {
		return fmt.Errorf("%d example(s) failed", run.Failed)
	}
	if run.Total == 0 {
		fmt.Println("No tests were run")
	}
	return nil
}

// frontMatterFlags contains flags for the frontmatter command
type frontMatterFlags struct {
	schemaPath string
	verbose    bool
}

func setupFrontMatterFlags() (*flag.FlagSet, *frontMatterFlags) {
	fs := flag.NewFlagSet("frontmatter", flag.ContinueOnError)
	flags := &frontMatterFlags{}

	fs.StringVar(&flags.schemaPath, "schema", envOr("DOCTEST_SCHEMA_PATH", schema.DefaultPath), "front-matter schema path")
	fs.BoolVar(&flags.verbose, "verbose", false, "print the parsed front matter")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: doctest frontmatter [flags] <file>...\n\n")
		_, _ = fmt.Fprintf(output, "Parse and schema-validate the YAML front matter of markdown files.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  doctest frontmatter docs/users.md\n")
		_, _ = fmt.Fprintf(output, "  doctest frontmatter --schema schemas/front-matter.json docs/*.md\n")
	}

	return fs, flags
}

func handleFrontMatter(args []string) error {
	fs, flags := setupFrontMatterFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("frontmatter command requires at least one file path")
	}

	sink := report.NewConsole()
	validator := schema.New(schema.WithSink(sink))

	invalid := 0
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			sink.Log(report.Entry{
				Severity: report.SeverityError,
				Message:  fmt.Sprintf("Error reading file: %v", err),
				File:     path,
			})
			invalid++
			continue
		}

		metadata, issue := frontmatter.Parse(string(data))
		if issue != nil {
			sink.Log(report.Entry{
				Severity: report.SeverityError,
				Message:  issue.Message,
				File:     path,
				Line:     issue.Line,
			})
			invalid++
			continue
		}
		if metadata == nil {
			sink.Log(report.Entry{
				Severity: report.SeverityWarning,
				Message:  "Front matter block is empty",
				File:     path,
				Line:     1,
			})
			continue
		}

		if flags.verbose {
			dump, err := yaml.Marshal(metadata)
			if err == nil {
				fmt.Printf("--- %s\n%s", path, dump)
			}
		}

		if result := validator.Validate(metadata, flags.schemaPath, path); !result.Valid {
			invalid++
		}
	}

	if invalid > 0 {
		return &docerrors.ParseError{Message: fmt.Sprintf("%d file(s) have invalid front matter", invalid)}
	}
	return nil
}

// configsFlags contains flags for the configs command
type configsFlags struct {
	output string
	root   string
}

func setupConfigsFlags() (*flag.FlagSet, *configsFlags) {
	fs := flag.NewFlagSet("configs", flag.ContinueOnError)
	flags := &configsFlags{}

	fs.StringVar(&flags.output, "output", "json", "output format: json or shell")
	fs.StringVar(&flags.root, "root", ".", "directory to scan when no files are given")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: doctest configs [flags] [<file>...]\n\n")
		_, _ = fmt.Fprintf(output, "Group testable documentation files by the server configuration they need.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  doctest configs --root docs\n")
		_, _ = fmt.Fprintf(output, "  doctest configs --output shell docs/users.md docs/orders.md\n")
	}

	return fs, flags
}

func handleConfigs(args []string) error {
	fs, flags := setupConfigsFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	collector := configs.New(configs.WithSink(report.NewConsole()))

	var groups []configs.Group
	if fs.NArg() > 0 {
		groups = collector.Collect(fs.Args())
	} else {
		var err error
		groups, err = collector.CollectDir(flags.root)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", flags.root, err)
		}
	}

	switch flags.output {
	case "json":
		out, err := configs.RenderJSON(groups)
		if err != nil {
			return err
		}
		fmt.Println(out)
	case "shell":
		fmt.Print(configs.RenderShell(groups))
	default:
		return fmt.Errorf("unknown output format %q; valid formats: json, shell", flags.output)
	}
	return nil
}

// serveFlags contains flags for the serve command
type serveFlags struct {
	addr string
	db   string
}

func setupServeFlags() (*flag.FlagSet, *serveFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &serveFlags{}

	fs.StringVar(&flags.addr, "addr", ":3000", "address to listen on")
	fs.StringVar(&flags.db, "db", "db.json", "JSON database file to serve")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: doctest serve [flags]\n\n")
		_, _ = fmt.Fprintf(output, "Run the local JSON REST server documentation examples execute against.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  doctest serve --db db/users.json\n")
		_, _ = fmt.Fprintf(output, "  doctest serve --addr :4000 --db db/payments.json\n")
	}

	return fs, flags
}

func handleServe(args []string) error {
	fs, flags := setupServeFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	fmt.Printf("Serving %s on %s\n", flags.db, flags.addr)
	return testapp.Serve(flags.addr, flags.db)
}

// envOr returns the environment variable's value, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printUsage() {
	fmt.Printf(`doctest v%s - executable documentation testing

Usage: doctest <command> [flags] [arguments]

Commands:
  test         Run documented examples against the live test server
  frontmatter  Parse and schema-validate front matter
  configs      Group testable files by server configuration
  serve        Run the local JSON REST server for examples
  mcp          Start the MCP server (stdio)
  version      Show version information
  help         Show this help message

Use "doctest <command> -h" for details on a command.
`, doctest.Version())
}
