// Package bake persists authored scenes so a runtime pass can pick them up
// and preserve them instead of regenerating.
package bake

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/ChicagoDave/roadgen/pkg/scene"
)

// levelsObject is the gdata object holding one property per level.
const levelsObject = "levels"

// Store saves and loads baked scene graphs. The gdata manager may be nil, in
// which case the store only keeps scenes in memory for the life of the
// process.
type Store struct {
	manager *gdata.Manager
	memory  map[string][]byte
	log     *slog.Logger
}

// Open creates a Store backed by the per-user data directory of appName.
func Open(appName string, log *slog.Logger) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("opening bake store %q: %w", appName, err)
	}
	return NewStore(m, log), nil
}

// NewStore wraps an existing manager. A nil manager gives a memory-only store.
func NewStore(m *gdata.Manager, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{manager: m, memory: make(map[string][]byte), log: log}
}

// Persistent reports whether saved scenes outlive the process.
func (s *Store) Persistent() bool {
	return s.manager != nil
}

// Save encodes g as YAML under levelID.
func (s *Store) Save(levelID string, g *scene.Graph) error {
	key, err := propKey(levelID)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(g)
	if err != nil {
		return fmt.Errorf("encoding scene %q: %w", levelID, err)
	}

	if s.manager == nil {
		s.memory[key] = data
		s.log.Debug("scene kept in memory", "level", levelID, "bytes", len(data))
		return nil
	}
	if err := s.manager.SaveObjectProp(levelsObject, key, data); err != nil {
		return fmt.Errorf("saving scene %q: %w", levelID, err)
	}
	s.log.Info("scene baked", "level", levelID, "nodes", g.Len(), "bytes", len(data))
	return nil
}

// Exists reports whether a scene is stored under levelID.
func (s *Store) Exists(levelID string) bool {
	key, err := propKey(levelID)
	if err != nil {
		return false
	}
	if s.manager == nil {
		_, ok := s.memory[key]
		return ok
	}
	return s.manager.ObjectPropExists(levelsObject, key)
}

// Load returns the scene stored under levelID. found is false, with a nil
// error, when nothing was saved.
func (s *Store) Load(levelID string) (g *scene.Graph, found bool, err error) {
	key, err := propKey(levelID)
	if err != nil {
		return nil, false, err
	}

	var data []byte
	if s.manager == nil {
		d, ok := s.memory[key]
		if !ok {
			return nil, false, nil
		}
		data = d
	} else {
		if !s.manager.ObjectPropExists(levelsObject, key) {
			return nil, false, nil
		}
		data, err = s.manager.LoadObjectProp(levelsObject, key)
		if err != nil {
			return nil, false, fmt.Errorf("loading scene %q: %w", levelID, err)
		}
	}

	g = &scene.Graph{}
	if err := yaml.Unmarshal(data, g); err != nil {
		return nil, false, fmt.Errorf("decoding scene %q: %w", levelID, err)
	}
	return g, true, nil
}

// propKey maps a level ID to a storage-safe property name.
func propKey(levelID string) (string, error) {
	id := strings.TrimSpace(levelID)
	if id == "" {
		return "", fmt.Errorf("level ID is empty")
	}
	var b strings.Builder
	for _, r := range strings.ToLower(id) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String(), nil
}
