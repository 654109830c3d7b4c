// Package templates stores push message templates in a JSON file in the
// data directory.
package templates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/parsepush/internal/filex"
	"github.com/dmitrijs2005/parsepush/internal/logging"
	"github.com/dmitrijs2005/parsepush/internal/models"
)

const FileName = "templates.json"

var ErrIndexOutOfRange = errors.New("templates: index out of range")

// Store loads the file once and rewrites it after every change. Write
// failures are logged; the in-memory list stays authoritative.
type Store struct {
	path      string
	logger    logging.Logger
	templates []models.PushMessageTemplate
}

// NewStore reads path. A missing or corrupt file gives an empty store. An
// empty path keeps templates in memory only.
func NewStore(ctx context.Context, path string, logger logging.Logger) *Store {
	s := &Store{path: path, logger: logger}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	if s.path == "" {
		return
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		s.logger.Warn(ctx, "failed to read templates", "path", s.path, "error", err)
		return
	}

	var list []models.PushMessageTemplate
	if err := json.Unmarshal(data, &list); err != nil {
		s.logger.Warn(ctx, "ignoring corrupt templates file", "path", s.path, "error", err)
		return
	}
	s.templates = list
}

func (s *Store) save(ctx context.Context) {
	if s.path == "" {
		return
	}

	list := s.templates
	if list == nil {
		list = []models.PushMessageTemplate{}
	}
	data, err := json.Marshal(list)
	if err == nil {
		err = filex.WriteFileAtomic(s.path, data)
	}
	if err != nil {
		s.logger.Error(ctx, "failed to save templates", "path", s.path, "error", err)
	}
}

func (s *Store) List() []models.PushMessageTemplate {
	out := make([]models.PushMessageTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

func (s *Store) At(i int) (models.PushMessageTemplate, error) {
	if i < 0 || i >= len(s.templates) {
		return models.PushMessageTemplate{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return s.templates[i], nil
}

func (s *Store) Add(ctx context.Context, t models.PushMessageTemplate) {
	s.templates = append(s.templates, t)
	s.save(ctx)
}

// Update replaces the template with the same ID or appends it.
func (s *Store) Update(ctx context.Context, t models.PushMessageTemplate) {
	for i := range s.templates {
		if s.templates[i].ID == t.ID {
			s.templates[i] = t
			s.save(ctx)
			return
		}
	}
	s.Add(ctx, t)
}

func (s *Store) Delete(ctx context.Context, ids []uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := make([]models.PushMessageTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		if _, ok := drop[t.ID]; !ok {
			kept = append(kept, t)
		}
	}
	s.templates = kept
	s.save(ctx)
}
