package schemastore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/rulekit/pkg/loader"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/schema"
)

// DefaultCacheSize is the number of parsed schemas kept in memory.
const DefaultCacheSize = 128

var nameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Parser turns a raw schema document into an execution plan.
// *rulekit.Validator and *schema.Parser both satisfy it.
type Parser interface {
	Parse(raw any) (*schema.Schema, error)
}

// Store resolves schema names to parsed schemas. Schemas registered with
// Register take precedence over files found in the directory; file-backed
// schemas are parsed on first use and cached.
type Store struct {
	dir    string
	parser Parser
	cache  *lru[string, *schema.Schema]
	logger *slog.Logger

	mu     sync.RWMutex
	static map[string]*schema.Schema
}

// Option configures a Store.
type Option func(*Store)

// WithCacheSize sets the number of cached file-backed schemas.
func WithCacheSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.cache = newLRU[string, *schema.Schema](n)
		}
	}
}

// WithLogger sets the logger used to report schema loads.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store reading "<name>.json", "<name>.yaml" or "<name>.yml"
// from dir. An empty dir gives a store holding registered schemas only.
func New(dir string, parser Parser, opts ...Option) *Store {
	s := &Store{
		dir:    dir,
		parser: parser,
		cache:  newLRU[string, *schema.Schema](DefaultCacheSize),
		logger: logger.Nop(),
		static: make(map[string]*schema.Schema),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a schema built in code under name.
func (s *Store) Register(name string, sc *schema.Schema) error {
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.static[name] = sc
	return nil
}

// Get returns the schema named name.
func (s *Store) Get(name string) (*schema.Schema, error) {
	if !nameRegex.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	s.mu.RLock()
	sc, ok := s.static[name]
	s.mu.RUnlock()
	if ok {
		return sc, nil
	}

	if sc, ok := s.cache.get(name); ok {
		return sc, nil
	}

	path, err := s.find(name)
	if err != nil {
		return nil, err
	}
	obj, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err = s.parser.Parse(obj)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", name, err)
	}

	s.cache.put(name, sc)
	s.logger.Debug("schema loaded", logger.Schema(name), slog.String("path", path))
	return sc, nil
}

// Names lists registered and file-backed schema names, sorted.
func (s *Store) Names() ([]string, error) {
	s.mu.RLock()
	names := make([]string, 0, len(s.static))
	for name := range s.static {
		names = append(names, name)
	}
	s.mu.RUnlock()

	if s.dir != "" {
		entries, err := os.ReadDir(s.dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !slices.Contains(loader.Extensions, strings.ToLower(filepath.Ext(e.Name()))) {
				continue
			}
			name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
			if nameRegex.MatchString(name) {
				names = append(names, name)
			}
		}
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}

// Invalidate drops a cached file-backed schema so the next Get re-reads it.
func (s *Store) Invalidate(name string) {
	s.cache.remove(name)
}

// Reset drops every cached file-backed schema.
func (s *Store) Reset() {
	s.cache.clear()
}

// Cached returns the number of cached file-backed schemas.
func (s *Store) Cached() int {
	return s.cache.len()
}

func (s *Store) find(name string) (string, error) {
	if s.dir == "" {
		return "", fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}
	for _, ext := range loader.Extensions {
		path := filepath.Join(s.dir, name+ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
}
