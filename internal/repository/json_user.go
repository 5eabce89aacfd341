package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/alexanderramin/xpledger/internal/domain"
)

const jsonStoreVersion = 1

type jsonDocument struct {
	Version int                     `json:"version"`
	Users   map[string]*domain.User `json:"users"`
}

// JSONUserStore keeps every user in a single JSON document on disk.
// Writes go to a temporary file that replaces the original.
type JSONUserStore struct {
	path string
	mu   sync.Mutex
}

func NewJSONUserStore(path string) *JSONUserStore {
	return &JSONUserStore{path: path}
}

func (s *JSONUserStore) read() (*jsonDocument, error) {
	doc := &jsonDocument{Version: jsonStoreVersion, Users: map[string]*domain.User{}}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, fmt.Errorf("reading store: %w", err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing store %s: %w", s.path, err)
	}
	if doc.Users == nil {
		doc.Users = map[string]*domain.User{}
	}
	return doc, nil
}

func (s *JSONUserStore) write(doc *jsonDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing store: %w", err)
	}
	return nil
}

func (s *JSONUserStore) LoadUser(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	u, ok := doc.Users[username]
	if !ok || u == nil {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	u.Username = username
	return u, nil
}

func (s *JSONUserStore) SaveUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Version = jsonStoreVersion
	doc.Users[u.Username] = u
	return s.write(doc)
}

func (s *JSONUserStore) ListUsers(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(doc.Users))
	for name := range doc.Users {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

var _ UserStore = (*JSONUserStore)(nil)
