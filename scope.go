package inject

import "sync"

// ── Scope ─────────────────────────────────────────────────────────────────────

// Scope is the lifetime policy of a Binding's instances.
type Scope int

const (
	// Unscoped bindings produce a new instance on every resolution.
	//
	//	// Guice: no scope (the default)
	Unscoped Scope = iota

	// SingletonScope bindings produce one instance per Injector, created on
	// first resolution and cached for the Injector's lifetime.
	//
	//	// Guice: bind(Cache.class).in(SINGLETON)
	SingletonScope
)

func (s Scope) String() string {
	switch s {
	case Unscoped:
		return "Unscoped"
	case SingletonScope:
		return "Singleton"
	default:
		return "Unknown"
	}
}

// ── Singleton cache ───────────────────────────────────────────────────────────

// singletonScope caches one canonical instance per Key. A per-Key mutex
// serializes first materialization, so racing callers block until the winner
// commits and then observe the same instance. A failed construction commits
// nothing.
type singletonScope struct {
	instances sync.Map // Key → any
	locks     sync.Map // Key → *sync.Mutex
}

func (s *singletonScope) get(key Key) (any, bool) {
	return s.instances.Load(key)
}

func (s *singletonScope) put(key Key, instance any) {
	s.instances.Store(key, instance)
}

// lock returns the mutex guarding first materialization of key.
func (s *singletonScope) lock(key Key) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
