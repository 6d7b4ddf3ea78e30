package inject

import (
	"fmt"
	"reflect"
)

// ── Binder ────────────────────────────────────────────────────────────────────

// Binder collects binding declarations while modules compose. Errors raised
// during configuration are accumulated and reported together by New, so a
// module author sees every problem in one pass instead of one at a time.
type Binder struct {
	registry  *Registry
	installed map[any]bool
	listeners []boundListener
	elemSeq   int
	errs      []error
}

func newBinder(r *Registry) *Binder {
	return &Binder{
		registry:  r,
		installed: make(map[any]bool),
	}
}

// Install composes another module into this one. A module (by identity) is
// installed at most once across the whole composition; later installs are
// silently skipped, which keeps diamond-shaped module graphs free of
// duplicate-binding errors.
//
//	// Guice: install(new ChildModule())
func (b *Binder) Install(m Module) {
	id := moduleID(m)
	if b.installed[id] {
		return
	}
	b.installed[id] = true
	m.Configure(b)
}

// AddError records a configuration error to be reported by New.
//
//	// Guice: binder().addError(...)
func (b *Binder) AddError(err error) {
	b.errs = append(b.errs, err)
}

// BindListener registers a type listener whose matcher is consulted the first
// time each distinct type is materialized by the injector.
//
//	// Guice: bindListener(Matchers.any(), listener)
func (b *Binder) BindListener(m Matcher, l TypeListener) {
	b.listeners = append(b.listeners, boundListener{matcher: m, listener: l})
}

// ── Binding builders ──────────────────────────────────────────────────────────

// Bind starts a binding declaration for the unqualified Key of T.
//
//	// Guice: bind(Cache.class).to(RedisCache.class).in(SINGLETON)
//	inject.Bind[Cache](b).ToConstructor(NewRedisCache).In(inject.SingletonScope)
func Bind[T any](b *Binder) *Builder[T] {
	registerProviderType[T](b.registry)
	return &Builder[T]{binder: b, key: KeyOf[T]()}
}

// BindNamed starts a binding declaration for the Key of T qualified by name.
//
//	// Guice: bind(String.class).annotatedWith(Names.named("config")).toInstance(...)
//	inject.BindNamed[string](b, "config").ToInstance("test-config")
func BindNamed[T any](b *Binder, name string) *Builder[T] {
	registerProviderType[T](b.registry)
	return &Builder[T]{binder: b, key: KeyNamed[T](name)}
}

// Builder is the fluent declaration for one binding of type T. Exactly one
// target method (ToInstance, ToConstructor, ToProvider, ToKey) must be called;
// scope defaults to Unscoped and is set with In on the returned handle.
type Builder[T any] struct {
	binder *Binder
	key    Key

	// set when this builder declares a multibinder element
	isElem bool
	setKey Key
}

func (bb *Builder[T]) register(binding *Binding) *ScopedBinding {
	if err := bb.binder.registry.Register(bb.key, binding); err != nil {
		bb.binder.AddError(err)
		return &ScopedBinding{}
	}
	if bb.isElem {
		if err := bb.binder.registry.RegisterElement(bb.setKey, reflect.TypeFor[T](), bb.key); err != nil {
			bb.binder.AddError(err)
		}
	}
	return &ScopedBinding{binding: binding}
}

// ToInstance binds the Key to a pre-built value.
//
//	// Guice: bind(Config.class).toInstance(config)
func (bb *Builder[T]) ToInstance(v T) {
	bb.register(&Binding{kind: kindInstance, instance: v})
}

// ToConstructor binds the Key to a constructor function. fn must return
// exactly one value, or a value and an error, and the value type must be
// assignable to T.
//
// By default each parameter resolves by its unqualified type Key; a parameter
// of type Provider[X] becomes a deferred edge on X. Passing explicit deps
// (one Key per parameter, in order) overrides the derived Keys, which is how
// qualified dependencies are declared.
//
//	// Guice: @Inject ServiceWithJavaxInject(DependencyService dependency)
//	inject.Bind[*Service](b).ToConstructor(NewService)
func (bb *Builder[T]) ToConstructor(fn any, deps ...Key) *ScopedBinding {
	ctor := reflect.ValueOf(fn)
	if ctor.Kind() != reflect.Func {
		bb.binder.AddError(fmt.Errorf("inject: constructor for %v must be a function, got %T", bb.key, fn))
		return &ScopedBinding{}
	}
	ct := ctor.Type()
	if ct.NumOut() < 1 || ct.NumOut() > 2 {
		bb.binder.AddError(fmt.Errorf("inject: constructor for %v must return one value, or a value and an error", bb.key))
		return &ScopedBinding{}
	}
	if ct.NumOut() == 2 && !ct.Out(1).AssignableTo(reflect.TypeFor[error]()) {
		bb.binder.AddError(fmt.Errorf("inject: constructor for %v must return one value, or a value and an error", bb.key))
		return &ScopedBinding{}
	}
	if !ct.Out(0).AssignableTo(reflect.TypeFor[T]()) {
		bb.binder.AddError(fmt.Errorf("inject: constructor for %v returns %v, not assignable to %v", bb.key, ct.Out(0), reflect.TypeFor[T]()))
		return &ScopedBinding{}
	}
	if len(deps) > 0 && len(deps) != ct.NumIn() {
		bb.binder.AddError(fmt.Errorf("inject: constructor for %v takes %d parameters but %d dependency keys were declared", bb.key, ct.NumIn(), len(deps)))
		return &ScopedBinding{}
	}
	params := make([]reflect.Type, ct.NumIn())
	for i := range params {
		params[i] = ct.In(i)
	}
	var explicit []Key
	if len(deps) > 0 {
		explicit = deps
	}
	return bb.register(&Binding{
		kind:     kindConstructor,
		ctor:     ctor,
		params:   params,
		explicit: explicit,
	})
}

// ToProvider binds the Key to a provider function. The function receives an
// injector handle scoped to the current resolution, so dependencies it
// resolves still participate in cycle detection.
//
//	// Guice: bind(Cache.class).toProvider(CacheProvider.class)
//	inject.Bind[Cache](b).ToProvider(func(in *inject.Injector) (Cache, error) {
//	    cfg, err := inject.Get[*Config](in)
//	    ...
//	})
func (bb *Builder[T]) ToProvider(fn func(*Injector) (T, error)) *ScopedBinding {
	if fn == nil {
		bb.binder.AddError(fmt.Errorf("inject: provider for %v must not be nil", bb.key))
		return &ScopedBinding{}
	}
	return bb.register(&Binding{
		kind: kindProvider,
		provide: func(in *Injector) (any, error) {
			v, err := fn(in)
			return v, err
		},
	})
}

// ToKey links the Key to another Key: resolving this binding resolves the
// linked Key instead. The linked Key's type must be assignable to T.
//
//	// Guice: bind(Plugin.class).to(PluginA.class)
//	inject.Bind[Plugin](b).ToKey(inject.KeyOf[*PluginA]())
func (bb *Builder[T]) ToKey(k Key) *ScopedBinding {
	if k.Type == nil || !k.Type.AssignableTo(reflect.TypeFor[T]()) {
		bb.binder.AddError(fmt.Errorf("inject: linked key %v is not assignable to %v", k, bb.key))
		return &ScopedBinding{}
	}
	return bb.register(&Binding{kind: kindLinked, linked: k})
}

// ScopedBinding finishes a binding declaration by assigning its scope.
type ScopedBinding struct {
	binding *Binding
}

// In sets the binding's scope.
//
//	// Guice: .in(SINGLETON)
func (s *ScopedBinding) In(scope Scope) {
	if s.binding != nil {
		s.binding.scope = scope
	}
}
