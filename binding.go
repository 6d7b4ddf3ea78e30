package inject

import (
	"fmt"
	"reflect"
	"sync"
)

// ── Binding ───────────────────────────────────────────────────────────────────

// bindingKind is the tagged variant over a Binding's target.
type bindingKind int

const (
	// kindInstance returns a stored value directly.
	kindInstance bindingKind = iota
	// kindConstructor invokes a reflected function with resolved arguments.
	kindConstructor
	// kindProvider invokes a provider function that resolves its own
	// dependencies through the injector handle it receives.
	kindProvider
	// kindLinked delegates resolution to another Key.
	kindLinked
	// kindAggregate collects the elements contributed through a SetBinder
	// into one slice-typed instance.
	kindAggregate
)

// dependency is one constructor edge. Direct edges are resolved eagerly and
// participate in cycle detection; deferred edges inject a Provider that
// resolves on demand and sit outside cycle detection.
type dependency struct {
	key      Key
	deferred bool
	// paramType is the constructor parameter type the resolved value (or
	// Provider) must be assignable to.
	paramType reflect.Type
}

// Binding maps a Key to how its instance is produced and at what scope.
// Bindings are owned by the Registry once installed and must not be mutated
// after the registry freezes.
type Binding struct {
	key   Key
	kind  bindingKind
	scope Scope

	// kindInstance
	instance any
	// instance bindings pass through the observation pipeline once: the
	// stored value is never freshly constructed again. A failed pass is
	// retried on the next resolution instead of being marked done, so a
	// partially-injected value never escapes with a nil error.
	observeMu  sync.Mutex
	observedOK bool

	// kindConstructor
	ctor     reflect.Value
	params   []reflect.Type
	explicit []Key        // optional caller-declared dependency Keys
	deps     []dependency // computed during composition finalize

	// kindProvider
	provide func(*Injector) (any, error)

	// kindLinked
	linked Key

	// kindAggregate
	elemType reflect.Type
	elemKeys []Key
}

// InstanceBinding returns an unscoped Binding whose target is a pre-built
// value. Most code should declare bindings through a Binder; this exists for
// working with a Registry directly.
func InstanceBinding(v any) *Binding {
	return &Binding{kind: kindInstance, instance: v}
}

// ProviderBinding returns a Binding whose target is a provider function.
func ProviderBinding(scope Scope, fn func(*Injector) (any, error)) *Binding {
	return &Binding{kind: kindProvider, scope: scope, provide: fn}
}

// LinkedBinding returns a Binding that delegates resolution to another Key.
func LinkedBinding(k Key) *Binding {
	return &Binding{kind: kindLinked, linked: k}
}

// Key returns the Key this binding was registered under.
func (b *Binding) Key() Key { return b.key }

// Scope returns the binding's lifetime policy.
func (b *Binding) Scope() Scope { return b.scope }

// finalize turns raw constructor parameter types into dependency edges.
// It runs once per binding after all modules have configured, so Provider
// parameter types registered by any module are visible.
func (b *Binding) finalize(r *Registry) error {
	if b.kind != kindConstructor {
		return nil
	}
	b.deps = make([]dependency, len(b.params))
	for i, param := range b.params {
		d := dependency{paramType: param}
		if maker, ok := r.providerMakers[param]; ok {
			// Parameter declared as Provider[X]: a deferred edge on X
			// unless the caller supplied an explicit element Key.
			d.deferred = true
			d.key = Key{Type: maker.elem}
			if b.explicit != nil {
				d.key = b.explicit[i]
			}
			if !d.key.Type.AssignableTo(maker.elem) {
				return fmt.Errorf("inject: constructor for %v: dependency %v cannot satisfy parameter %v", b.key, d.key, param)
			}
		} else {
			d.key = Key{Type: param}
			if b.explicit != nil {
				d.key = b.explicit[i]
			}
			if !d.key.Type.AssignableTo(param) {
				return fmt.Errorf("inject: constructor for %v: dependency %v cannot satisfy parameter %v", b.key, d.key, param)
			}
		}
		b.deps[i] = d
	}
	return nil
}
