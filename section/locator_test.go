package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = "---\nlayout: api\n---\n" +
	"## Users\n" +
	"\n" +
	"### Get user request\n" +
	"\n" +
	"Fetch a single user by id.\n" +
	"\n" +
	"```bash\n" +
	"curl {server_url}/users/1\n" +
	"```\n" +
	"\n" +
	"### Get user response\n" +
	"\n" +
	"```json\n" +
	"{\n" +
	"  \"id\": 1,\n" +
	"  \"name\": \"Ada\"\n" +
	"}\n" +
	"```\n"

func TestExtractRequestBasic(t *testing.T) {
	cmd := ExtractRequest(sampleDoc, "http://localhost:3000", "Get user")
	assert.Equal(t, "curl -i http://localhost:3000/users/1", cmd)
}

func TestExtractRequestKeepsPlaceholderWithoutServerURL(t *testing.T) {
	cmd := ExtractRequest(sampleDoc, "", "Get user")
	assert.Equal(t, "curl -i {server_url}/users/1", cmd)
}

func TestExtractRequestDoesNotDoubleInjectIncludeFlag(t *testing.T) {
	doc := "### List request\n```bash\ncurl -i http://example.test/items\n```\n"
	assert.Equal(t, "curl -i http://example.test/items", ExtractRequest(doc, "", "List"))

	doc = "### List request\n```bash\ncurl --include http://example.test/items\n```\n"
	assert.Equal(t, "curl --include http://example.test/items", ExtractRequest(doc, "", "List"))
}

func TestExtractRequestBacktickedHeadingWords(t *testing.T) {
	docs := []string{
		"### `GET` user request\n```bash\ncurl -i http://x/u\n```\n",
		"### GET `user` request\n```bash\ncurl -i http://x/u\n```\n",
		"### `GET` `user` request\n```bash\ncurl -i http://x/u\n```\n",
		"#### GET user request\n```bash\ncurl -i http://x/u\n```\n",
		"### get USER Request\n```bash\ncurl -i http://x/u\n```\n",
	}
	for _, doc := range docs {
		assert.Equal(t, "curl -i http://x/u", ExtractRequest(doc, "", "GET user"), "doc: %q", doc)
	}
}

func TestExtractRequestShFence(t *testing.T) {
	doc := "### Ping request\n```sh\ncurl -i http://x/ping\n```\n"
	assert.Equal(t, "curl -i http://x/ping", ExtractRequest(doc, "", "Ping"))
}

func TestExtractRequestMultiline(t *testing.T) {
	doc := "### Create request\n```bash\ncurl -X POST http://x/items \\\n" +
		"  -H 'Content-Type: application/json' \\\n" +
		"  -d '{\"name\": \"widget\"}'\n```\n"
	cmd := ExtractRequest(doc, "", "Create")
	require.NotEmpty(t, cmd)
	assert.Contains(t, cmd, "curl -i -X POST")
	assert.Contains(t, cmd, "-d '{\"name\": \"widget\"}'")
}

func TestExtractRequestMissingSection(t *testing.T) {
	assert.Empty(t, ExtractRequest(sampleDoc, "", "Delete user"))
}

func TestExtractRequestStopsAtNextHeading(t *testing.T) {
	// The prose under the heading has no shell fence; the next heading ends
	// the search even though a later section carries one.
	doc := "### Get user request\n\nNo code here.\n\n### Other request\n```bash\ncurl -i http://x\n```\n"
	assert.Empty(t, ExtractRequest(doc, "", "Get user"))
}

func TestExtractRequestProseBeforeFence(t *testing.T) {
	doc := "### Get user request\n\nSome intro prose.\n\n```bash\ncurl -i http://x/u\n```\n"
	assert.Equal(t, "curl -i http://x/u", ExtractRequest(doc, "", "Get user"))
}

func TestExtractRequestIgnoresJSONFence(t *testing.T) {
	// A json fence between the heading and the shell fence is skipped, not
	// collected.
	doc := "### Get user request\n```json\n{}\n```\n```bash\ncurl -i http://x/u\n```\n"
	assert.Equal(t, "curl -i http://x/u", ExtractRequest(doc, "", "Get user"))
}

func TestExtractRequestUnterminatedFence(t *testing.T) {
	doc := "### Get user request\n```bash\ncurl -i http://x/u"
	assert.Equal(t, "curl -i http://x/u", ExtractRequest(doc, "", "Get user"))
}

func TestExtractRequestEmptyFence(t *testing.T) {
	doc := "### Get user request\n```bash\n```\n"
	assert.Empty(t, ExtractRequest(doc, "", "Get user"))
}

func TestExtractRequestRegexMetacharactersInName(t *testing.T) {
	doc := "### Get user (v2) request\n```bash\ncurl -i http://x/v2/u\n```\n"
	assert.Equal(t, "curl -i http://x/v2/u", ExtractRequest(doc, "", "Get user (v2)"))
}

func TestExtractResponseBasic(t *testing.T) {
	got := ExtractResponse(sampleDoc, "Get user")
	require.NotNil(t, got)
	assert.Equal(t, map[string]any{"id": float64(1), "name": "Ada"}, got)
}

func TestExtractResponseArray(t *testing.T) {
	doc := "### List response\n```json\n[{\"id\": 1}, {\"id\": 2}]\n```\n"
	got := ExtractResponse(doc, "List")
	require.NotNil(t, got)
	assert.Equal(t, []any{map[string]any{"id": float64(1)}, map[string]any{"id": float64(2)}}, got)
}

func TestExtractResponseMissingSection(t *testing.T) {
	assert.Nil(t, ExtractResponse(sampleDoc, "Delete user"))
}

func TestExtractResponseMalformedJSON(t *testing.T) {
	doc := "### Get user response\n```json\n{\"id\": 1,,}\n```\n"
	assert.Nil(t, ExtractResponse(doc, "Get user"))
}

func TestExtractResponseIgnoresShellFence(t *testing.T) {
	doc := "### Get user response\n```bash\necho hi\n```\n```json\n{\"ok\": true}\n```\n"
	assert.Equal(t, map[string]any{"ok": true}, ExtractResponse(doc, "Get user"))
}
