package testapp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureStore() *Store {
	return NewStore(map[string][]map[string]any{
		"users": {
			{"id": float64(1), "name": "Ada"},
			{"id": float64(2), "name": "Grace"},
		},
	})
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListCollection(t *testing.T) {
	w := do(t, NewRouter(fixtureStore()), http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)
	assert.Equal(t, "Ada", items[0]["name"])
}

func TestListUnknownCollection(t *testing.T) {
	w := do(t, NewRouter(fixtureStore()), http.MethodGet, "/ghosts", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetByID(t *testing.T) {
	w := do(t, NewRouter(fixtureStore()), http.MethodGet, "/users/2", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var item map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, "Grace", item["name"])
}

func TestGetMissingID(t *testing.T) {
	w := do(t, NewRouter(fixtureStore()), http.MethodGet, "/users/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAssignsID(t *testing.T) {
	r := NewRouter(fixtureStore())
	w := do(t, r, http.MethodPost, "/users", `{"name": "Lin"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var item map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, float64(3), item["id"])

	w = do(t, r, http.MethodGet, "/users/3", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateRejectsBadBody(t *testing.T) {
	w := do(t, NewRouter(fixtureStore()), http.MethodPost, "/users", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePreservesID(t *testing.T) {
	r := NewRouter(fixtureStore())
	w := do(t, r, http.MethodPut, "/users/1", `{"name": "Ada Lovelace"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var item map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, float64(1), item["id"])
	assert.Equal(t, "Ada Lovelace", item["name"])
}

func TestUpdateMissing(t *testing.T) {
	w := do(t, NewRouter(fixtureStore()), http.MethodPut, "/users/99", `{"name": "x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDelete(t *testing.T) {
	r := NewRouter(fixtureStore())
	w := do(t, r, http.MethodDelete, "/users/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/users/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoadStoreFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"posts": [{"id": 1, "title": "hello"}]}`), 0o600))

	store, err := LoadStore(path)
	require.NoError(t, err)

	items, ok := store.List("posts")
	require.True(t, ok)
	assert.Equal(t, "hello", items[0]["title"])
}

func TestLoadStoreErrors(t *testing.T) {
	_, err := LoadStore(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1,2,3]`), 0o600))
	_, err = LoadStore(path)
	assert.Error(t, err)
}
