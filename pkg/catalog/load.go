package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// LoadErrorMessage is what users see when the catalog could not be
// loaded.
const LoadErrorMessage = "Error loading games data. Please try again later."

// LoadError is returned when the catalog document cannot be read or
// decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading catalog %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Decode reads a JSON array of games from r.
func Decode(r io.Reader) ([]Game, error) {
	var games []Game
	if err := json.NewDecoder(r).Decode(&games); err != nil {
		return nil, err
	}
	if games == nil {
		games = []Game{}
	}
	return games, nil
}

// LoadFile reads the catalog at path. Any failure is a *LoadError.
func LoadFile(path string) ([]Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	games, err := Decode(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return games, nil
}

// Store holds the loaded catalog. The game list is never modified in
// place; a reload swaps the whole slice.
type Store struct {
	path string

	mu     sync.RWMutex
	games  []Game
	err    error
	loaded bool
}

// NewStore returns an empty store reading from path. Call Load to fill
// it.
func NewStore(path string) *Store {
	return &Store{path: path, games: []Game{}}
}

// Path is the catalog file the store reads from.
func (s *Store) Path() string { return s.path }

// Load reads the catalog file. On the first load a failure leaves the
// store empty with the error recorded; on later loads a failure keeps
// the previous games.
func (s *Store) Load() error {
	games, err := LoadFile(s.path)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if !s.loaded {
			s.err = err
		}
		return err
	}
	s.games = games
	s.err = nil
	s.loaded = true
	return nil
}

// Snapshot returns the current games and the load error, if the store
// has never loaded successfully.
func (s *Store) Snapshot() ([]Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.games, s.err
}
