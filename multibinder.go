package inject

import (
	"fmt"
	"reflect"
)

// ── SetBinder ─────────────────────────────────────────────────────────────────

// SetBinder lets multiple independent bindings contribute elements to one
// aggregate binding of type []T. Each AddBinding mints a fresh,
// internally-qualified element Key which is then bound like any other
// binding; the aggregate Key is KeyOf[[]T]() and resolves to one element per
// contribution, in registration order, stable across resolutions. A set
// binder with no contributions resolves to an empty slice.
//
//	// Guice:
//	// Multibinder<Plugin> plugins = Multibinder.newSetBinder(binder(), Plugin.class);
//	// plugins.addBinding().to(PluginA.class);
//
//	plugins := inject.NewSetBinder[Plugin](b)
//	plugins.AddBinding().ToConstructor(NewPluginA)
//	plugins.AddBinding().ToConstructor(NewPluginB)
//	...
//	all, err := inject.Get[[]Plugin](in)
type SetBinder[T any] struct {
	binder *Binder
	agg    *Binding
}

// NewSetBinder returns the set binder for element type T. Calling it twice
// for the same T contributes to the same aggregate binding.
func NewSetBinder[T any](b *Binder) *SetBinder[T] {
	registerProviderType[T](b.registry)
	registerProviderType[[]T](b.registry)
	agg, err := b.registry.AggregateFor(KeyOf[[]T](), reflect.TypeFor[T]())
	if err != nil {
		b.AddError(err)
	}
	return &SetBinder[T]{binder: b, agg: agg}
}

// In sets the scope of the aggregate binding itself. A singleton-scoped
// aggregate assembles its slice once and returns the cached slice on every
// resolution; element bindings keep whatever scope they were given.
func (s *SetBinder[T]) In(scope Scope) *SetBinder[T] {
	if s.agg != nil {
		s.agg.scope = scope
	}
	return s
}

// AddBinding returns a builder for one new element. Duplicate contributions
// are not collapsed: every AddBinding adds exactly one element to the
// aggregate.
func (s *SetBinder[T]) AddBinding() *Builder[T] {
	s.binder.elemSeq++
	elemKey := KeyNamed[T](fmt.Sprintf("multibinder-element#%d", s.binder.elemSeq))
	return &Builder[T]{
		binder: s.binder,
		key:    elemKey,
		isElem: true,
		setKey: KeyOf[[]T](),
	}
}
