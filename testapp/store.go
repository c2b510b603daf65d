// Package testapp runs the local JSON REST server that documented examples
// execute against. It mimics the json-server convention: a single JSON file
// maps collection names to arrays of objects, and each collection gets
// list/get/create/update/delete routes.
package testapp

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/docwright/doctest/docerrors"
)

// Store holds the database file's collections in memory. Mutations are not
// written back to disk; every server start begins from the file's state so
// documentation tests are repeatable.
type Store struct {
	mu          sync.Mutex
	collections map[string][]map[string]any
}

// LoadStore reads a database file of the form
// {"users": [{"id": 1, ...}, ...], "posts": [...]}.
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &docerrors.ConfigError{
			Option:  "local_database",
			Value:   path,
			Message: "database file could not be read",
			Cause:   err,
		}
	}

	var raw map[string][]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &docerrors.ConfigError{
			Option:  "local_database",
			Value:   path,
			Message: "database file is not a JSON object of collections",
			Cause:   err,
		}
	}
	if raw == nil {
		raw = make(map[string][]map[string]any)
	}
	return &Store{collections: raw}, nil
}

// NewStore creates a store from in-memory collections. Used by tests and by
// callers that assemble fixtures programmatically.
func NewStore(collections map[string][]map[string]any) *Store {
	if collections == nil {
		collections = make(map[string][]map[string]any)
	}
	return &Store{collections: collections}
}

// List returns a copy of the named collection and whether it exists.
func (s *Store) List(collection string) ([]map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.collections[collection]
	if !ok {
		return nil, false
	}
	out := make([]map[string]any, len(items))
	copy(out, items)
	return out, true
}

// Get returns the item whose id renders equal to id.
func (s *Store) Get(collection, id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.collections[collection] {
		if idMatches(item, id) {
			return item, true
		}
	}
	return nil, false
}

// Create appends item to the collection, assigning the next numeric id when
// the item carries none. The collection is created on first write.
func (s *Store) Create(collection string, item map[string]any) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := item["id"]; !ok {
		item["id"] = s.nextID(collection)
	}
	s.collections[collection] = append(s.collections[collection], item)
	return item
}

// Update replaces the item with the given id, preserving the id field.
func (s *Store) Update(collection, id string, item map[string]any) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.collections[collection]
	for i, existing := range items {
		if idMatches(existing, id) {
			item["id"] = existing["id"]
			items[i] = item
			return item, true
		}
	}
	return nil, false
}

// Delete removes the item with the given id.
func (s *Store) Delete(collection, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.collections[collection]
	for i, existing := range items {
		if idMatches(existing, id) {
			s.collections[collection] = append(items[:i], items[i+1:]...)
			return true
		}
	}
	return false
}

// idMatches compares the item's id with the path parameter by rendered text,
// so numeric ids in the database match string ids from the URL.
func idMatches(item map[string]any, id string) bool {
	v, ok := item["id"]
	if !ok {
		return false
	}
	return renderID(v) == id
}

func renderID(v any) string {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(v)
}

func (s *Store) nextID(collection string) float64 {
	var max float64
	for _, item := range s.collections[collection] {
		if f, ok := item["id"].(float64); ok && f > max {
			max = f
		}
	}
	return max + 1
}
