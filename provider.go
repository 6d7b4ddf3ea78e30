package inject

// ── Provider ──────────────────────────────────────────────────────────────────

// Provider defers resolution of a Key until Get is called. Each Get performs
// a full resolution pass, so unscoped targets yield a fresh instance per call
// while singletons keep returning the canonical instance.
//
// A constructor parameter declared as Provider[X] instead of X is a deferred
// dependency edge: it does not participate in cycle detection, which makes it
// the tool for breaking dependency cycles and for delaying expensive
// construction.
//
//	// Guice:
//	// @Inject ServiceWithProvider(Provider<DependencyService> p) { ... }
//	// p.get()
//	func NewService(dep inject.Provider[*Dependency]) *Service { ... }
//	d, err := dep.Get()
type Provider[T any] struct {
	key Key
	in  *Injector
}

// Get resolves the provider's Key. Safe for concurrent use once the injector
// is built.
//
// Do not call Get from inside the constructor of a singleton that received
// this provider as a parameter: if the call resolves back to that singleton,
// directly or transitively, it blocks on the singleton's own lock and
// deadlocks. Store the provider and call Get after construction.
func (p Provider[T]) Get() (T, error) {
	v, err := p.in.Get(p.key)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Key returns the Key this provider resolves.
func (p Provider[T]) Key() Key { return p.key }

// ProviderOf returns a Provider for the unqualified Key of T.
//
//	// Guice: injector.getProvider(DependencyService.class)
func ProviderOf[T any](in *Injector) Provider[T] {
	return ProviderFor[T](in, KeyOf[T]())
}

// ProviderFor returns a Provider for an arbitrary Key of type T.
func ProviderFor[T any](in *Injector, key Key) Provider[T] {
	return Provider[T]{key: key, in: in.root()}
}
