package report

import "os"

// defaultWikiBase is the wiki used for help links when DOCTEST_WIKI_BASE is unset.
const defaultWikiBase = "https://github.com/docwright/doctest/wiki"

// Help topics referenced from diagnostics.
const (
	// TopicFrontMatter documents the required front-matter format.
	TopicFrontMatter = "Front-Matter-Format"
	// TopicExampleFormat documents the request/response section format.
	TopicExampleFormat = "Example-Format"
	// TopicFileLocations documents where documentation files must live.
	TopicFileLocations = "File-Locations"
)

// HelpURL returns the wiki URL for a help topic. The base URL can be
// overridden with the DOCTEST_WIKI_BASE environment variable, which CI
// workflows set to point at the project's own wiki.
func HelpURL(topic string) string {
	base := os.Getenv("DOCTEST_WIKI_BASE")
	if base == "" {
		base = defaultWikiBase
	}
	return base + "/" + topic
}
