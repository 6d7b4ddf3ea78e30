package inject

import "reflect"

// ── Registry ──────────────────────────────────────────────────────────────────

// Registry maps Keys to Bindings. It is append-only while modules compose and
// read-only after Freeze. Composition is single-threaded by contract, so the
// write path carries no lock; the resolution engine only ever reads a frozen
// registry.
type Registry struct {
	bindings map[Key]*Binding
	frozen   bool

	// providerMakers maps the reflected type of Provider[X] to the element
	// type X and a factory for the concrete Provider value. Populated by the
	// generic bind functions, so it lives per-registry instead of in process
	// globals.
	providerMakers map[reflect.Type]providerMaker
}

type providerMaker struct {
	elem reflect.Type
	make func(in *Injector, key Key) reflect.Value
}

// NewRegistry returns an empty, unfrozen registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings:       make(map[Key]*Binding),
		providerMakers: make(map[reflect.Type]providerMaker),
	}
}

// Register installs a binding for key. It fails with RegistryFrozenError after
// Freeze and with DuplicateBindingError if key already has a binding.
func (r *Registry) Register(key Key, b *Binding) error {
	if r.frozen {
		return RegistryFrozenError{Key: key}
	}
	if _, exists := r.bindings[key]; exists {
		return DuplicateBindingError{Key: key}
	}
	b.key = key
	r.bindings[key] = b
	return nil
}

// AggregateFor returns the aggregate binding for setKey, creating it if
// absent. An aggregate with no elements resolves to an empty slice. It fails
// with RegistryFrozenError after Freeze and with DuplicateBindingError if
// setKey already has a non-aggregate binding.
func (r *Registry) AggregateFor(setKey Key, elemType reflect.Type) (*Binding, error) {
	if r.frozen {
		return nil, RegistryFrozenError{Key: setKey}
	}
	agg, exists := r.bindings[setKey]
	if exists && agg.kind != kindAggregate {
		return nil, DuplicateBindingError{Key: setKey}
	}
	if !exists {
		agg = &Binding{key: setKey, kind: kindAggregate, elemType: elemType}
		r.bindings[setKey] = agg
	}
	return agg, nil
}

// RegisterElement appends elemKey to the aggregate binding for setKey,
// creating the aggregate if absent. Aggregate order follows registration
// order and additions are never deduplicated: each call contributes one
// element.
func (r *Registry) RegisterElement(setKey Key, elemType reflect.Type, elemKey Key) error {
	agg, err := r.AggregateFor(setKey, elemType)
	if err != nil {
		return err
	}
	agg.elemKeys = append(agg.elemKeys, elemKey)
	return nil
}

// Lookup returns the binding for key, if any.
func (r *Registry) Lookup(key Key) (*Binding, bool) {
	b, ok := r.bindings[key]
	return b, ok
}

// Freeze makes the registry read-only. Any later Register fails with
// RegistryFrozenError.
func (r *Registry) Freeze() { r.frozen = true }

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool { return r.frozen }

// Keys returns all registered Keys (for debugging and diagnostics).
func (r *Registry) Keys() []Key {
	out := make([]Key, 0, len(r.bindings))
	for k := range r.bindings {
		out = append(out, k)
	}
	return out
}

// finalize computes constructor dependency edges once all modules have
// contributed their bindings and provider type registrations.
func (r *Registry) finalize() []error {
	var errs []error
	for _, b := range r.bindings {
		if err := b.finalize(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// registerProviderType records the Provider[T] ↔ T mapping so reflected
// constructor parameters of type Provider[T] are recognized as deferred
// edges. Called by the generic bind functions; idempotent.
func registerProviderType[T any](r *Registry) {
	pt := reflect.TypeFor[Provider[T]]()
	if _, ok := r.providerMakers[pt]; ok {
		return
	}
	r.providerMakers[pt] = providerMaker{
		elem: reflect.TypeFor[T](),
		make: func(in *Injector, key Key) reflect.Value {
			return reflect.ValueOf(Provider[T]{key: key, in: in})
		},
	}
}
