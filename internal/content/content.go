package content

import (
	"encoding/json"
	"fmt"
	"os"
)

// Catalog is the parsed shape of the content blob. The HTTP layer serves
// the raw bytes verbatim; parsing exists for lookups only.
type Catalog struct {
	Categories []Category `json:"categories"`
	Practices  []Practice `json:"practices"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Practice struct {
	ID            string `json:"id"`
	CategoryID    string `json:"category_id"`
	Title         string `json:"title"`
	AudioURL      string `json:"audio_url"`
	AudioTitle    string `json:"audio_title"`
	DescriptionMD string `json:"description_md"`
}

func (c *Catalog) FindPractice(id string) (*Practice, bool) {
	for i := range c.Practices {
		if c.Practices[i].ID == id {
			return &c.Practices[i], true
		}
	}
	return nil, false
}

func (c *Catalog) FindCategory(id string) (*Category, bool) {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i], true
		}
	}
	return nil, false
}

// Store reads the catalog file on every call so edits show up without a
// restart. The file is the source of truth; nothing is cached.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Raw returns the blob exactly as stored.
func (s *Store) Raw() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return data, nil
}

func (s *Store) Catalog() (*Catalog, error) {
	raw, err := s.Raw()
	if err != nil {
		return nil, err
	}

	var catalog Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("parse content file: %w", err)
	}

	return &catalog, nil
}
