package content

import (
	"sync"
	"time"
)

// Store holds the current catalog and notifies watchers when it is
// replaced. Readers get a consistent snapshot; a reload never mutates a
// catalog already handed out.
type Store struct {
	path     string
	catalog  *Catalog
	loadedAt time.Time
	mutex    sync.RWMutex
	watchers []chan Event
}

// Event reports a catalog replacement.
type Event struct {
	Catalog   *Catalog
	Timestamp time.Time
}

// NewStore loads the catalog at path (embedded default when empty).
func NewStore(path string) (*Store, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, catalog: c, loadedAt: time.Now()}, nil
}

// NewStoreFrom wraps an already loaded catalog.
func NewStoreFrom(c *Catalog) *Store {
	return &Store{catalog: c, loadedAt: time.Now()}
}

// Path returns the file the store reloads from, or "".
func (s *Store) Path() string {
	return s.path
}

// Catalog returns the current snapshot.
func (s *Store) Catalog() *Catalog {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.catalog
}

// LoadedAt returns when the current snapshot was installed.
func (s *Store) LoadedAt() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.loadedAt
}

// Reload re-reads the backing file. On error the previous catalog stays
// in place.
func (s *Store) Reload() error {
	c, err := Load(s.path)
	if err != nil {
		return err
	}
	s.Replace(c)
	return nil
}

// Replace installs c and notifies watchers.
func (s *Store) Replace(c *Catalog) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.catalog = c
	s.loadedAt = time.Now()

	event := Event{Catalog: c, Timestamp: s.loadedAt}
	for _, watcher := range s.watchers {
		select {
		case watcher <- event:
		default:
			// Slow watcher; it will see the newest catalog via Catalog().
		}
	}
}

// Watch returns a channel that receives replacement events.
func (s *Store) Watch() <-chan Event {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	ch := make(chan Event, 4)
	s.watchers = append(s.watchers, ch)
	return ch
}

// Unwatch stops delivery to ch and closes it.
func (s *Store) Unwatch(ch <-chan Event) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, w := range s.watchers {
		if w == ch {
			close(w)
			s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
			return
		}
	}
}
