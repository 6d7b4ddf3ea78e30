package inject

import (
	"errors"
	"fmt"
	"reflect"
)

// ── Injector ──────────────────────────────────────────────────────────────────

// Injector is the resolution engine: given a Key it materializes a fully
// constructed, dependency-satisfied instance from the frozen registry.
//
// Build one with New, then resolve:
//
//	// Guice: Injector injector = Guice.createInjector(new AppModule());
//	//        injector.getInstance(SimpleService.class)
//	in, err := inject.New(AppModule{})
//	svc, err := inject.Get[*SimpleService](in)
//
// Concurrent Get calls are safe once New returns. The injector always
// resolves its own Key, so providers and members injectors can perform
// further lookups through it.
type Injector struct {
	registry *Registry
	scope    *singletonScope
	pipeline *observationPipeline

	// base points at the root injector when this value is a call-scoped
	// view handed to a provider function; nil on the root itself.
	base *Injector
	// rc is the resolution context a call-scoped view continues. It is only
	// valid for the duration of the provider call that received the view.
	rc *resolution
}

// New composes the given modules into a registry, freezes it, and returns
// the resolution engine. Composition is single-threaded: modules are
// processed in order, depth-first through Install, with duplicate installs
// of the same module identity skipped. All configuration errors are
// collected and reported together.
//
//	// Guice: Guice.createInjector(new ParentModule())
func New(modules ...Module) (*Injector, error) {
	r := NewRegistry()
	b := newBinder(r)
	registerProviderType[*Injector](r)

	for _, m := range modules {
		b.Install(m)
	}

	in := &Injector{
		registry: r,
		scope:    &singletonScope{},
		pipeline: newObservationPipeline(b.listeners),
	}

	// The engine itself is always resolvable; user modules must not bind it.
	if err := r.Register(KeyOf[*Injector](), &Binding{kind: kindInstance, instance: in}); err != nil {
		b.AddError(fmt.Errorf("inject: *inject.Injector is bound by the engine itself: %w", err))
	}

	b.errs = append(b.errs, r.finalize()...)
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	r.Freeze()
	return in, nil
}

// root returns the canonical injector behind a call-scoped view.
func (in *Injector) root() *Injector {
	if in.base != nil {
		return in.base
	}
	return in
}

// scoped returns a view of the injector that continues an in-flight
// resolution, so lookups made by provider functions and listeners keep
// participating in cycle detection.
func (in *Injector) scoped(rc *resolution) *Injector {
	return &Injector{
		registry: in.registry,
		scope:    in.scope,
		pipeline: in.pipeline,
		base:     in.root(),
		rc:       rc,
	}
}

// Bindings returns the Keys of all registered bindings (for debugging).
func (in *Injector) Bindings() []Key {
	return in.registry.Keys()
}

// ── Resolution ────────────────────────────────────────────────────────────────

// resolution tracks one Get call. The stack of Keys currently under
// construction is call-local: it detects cycles without being shared across
// goroutines.
type resolution struct {
	stack []Key
}

func (rc *resolution) contains(key Key) bool {
	for _, k := range rc.stack {
		if k == key {
			return true
		}
	}
	return false
}

// Get materializes the instance for key.
//
//	// Guice: injector.getInstance(Key.get(String.class, Names.named("config")))
func (in *Injector) Get(key Key) (any, error) {
	rc := in.rc
	if rc == nil {
		rc = &resolution{}
	}
	return in.resolve(rc, key)
}

func (in *Injector) resolve(rc *resolution, key Key) (any, error) {
	b, ok := in.registry.Lookup(key)
	if !ok {
		return nil, MissingBindingError{Key: key}
	}

	if b.scope == SingletonScope {
		if v, cached := in.scope.get(key); cached {
			return v, nil
		}
	}

	if rc.contains(key) {
		// Report only the cycle itself: keys resolved on the way in, before
		// the first occurrence of key, are not part of it.
		path := append([]Key{}, rc.stack...)
		for i, k := range path {
			if k == key {
				path = path[i:]
				break
			}
		}
		return nil, CircularDependencyError{Path: append(path, key)}
	}
	rc.stack = append(rc.stack, key)
	defer func() { rc.stack = rc.stack[:len(rc.stack)-1] }()

	if b.scope == SingletonScope {
		// Block racing callers until the first materialization commits, so
		// every caller observes the same canonical instance. A failed
		// construction commits nothing.
		mu := in.scope.lock(key)
		mu.Lock()
		defer mu.Unlock()
		if v, cached := in.scope.get(key); cached {
			return v, nil
		}
	}

	v, err := in.build(rc, b)
	if err != nil {
		return nil, err
	}

	if b.scope == SingletonScope {
		in.scope.put(key, v)
	}
	return v, nil
}

// build resolves a binding's target and runs the observation pipeline over
// freshly constructed instances.
func (in *Injector) build(rc *resolution, b *Binding) (any, error) {
	switch b.kind {
	case kindInstance:
		// The stored value is only ever materialized once.
		b.observeMu.Lock()
		defer b.observeMu.Unlock()
		if !b.observedOK {
			if err := in.pipeline.observe(in, b.instance); err != nil {
				return nil, err
			}
			b.observedOK = true
		}
		return b.instance, nil

	case kindLinked:
		return in.resolve(rc, b.linked)

	case kindProvider:
		v, err := b.provide(in.scoped(rc))
		if err != nil {
			return nil, err
		}
		return v, in.pipeline.observe(in, v)

	case kindConstructor:
		v, err := in.construct(rc, b)
		if err != nil {
			return nil, err
		}
		return v, in.pipeline.observe(in, v)

	case kindAggregate:
		return in.aggregate(rc, b)

	default:
		return nil, fmt.Errorf("inject: unknown binding kind for %v", b.key)
	}
}

// construct resolves each declared dependency and invokes the constructor.
// Direct edges resolve eagerly through the current resolution context;
// deferred edges receive a Provider bound to the root injector.
func (in *Injector) construct(rc *resolution, b *Binding) (any, error) {
	args := make([]reflect.Value, len(b.deps))
	for i, d := range b.deps {
		if d.deferred {
			maker := in.registry.providerMakers[d.paramType]
			args[i] = maker.make(in.root(), d.key)
			continue
		}
		v, err := in.resolve(rc, d.key)
		if err != nil {
			var cyc CircularDependencyError
			if errors.As(err, &cyc) {
				return nil, err
			}
			return nil, fmt.Errorf("inject: resolving dependency %v of %v: %w", d.key, b.key, err)
		}
		args[i] = argValue(v, d.paramType)
	}

	out := b.ctor.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, fmt.Errorf("inject: constructor for %v failed: %w", b.key, out[1].Interface().(error))
	}
	return out[0].Interface(), nil
}

// aggregate materializes the slice for a multibound Key, resolving every
// contributed element in registration order.
func (in *Injector) aggregate(rc *resolution, b *Binding) (any, error) {
	slice := reflect.MakeSlice(reflect.SliceOf(b.elemType), len(b.elemKeys), len(b.elemKeys))
	for i, elemKey := range b.elemKeys {
		v, err := in.resolve(rc, elemKey)
		if err != nil {
			return nil, err
		}
		slice.Index(i).Set(argValue(v, b.elemType))
	}
	return slice.Interface(), nil
}

// argValue converts a resolved any back to a reflect.Value assignable to the
// target type, handling typed and untyped nils.
func argValue(v any, t reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(v)
}

// ── Generic helpers ───────────────────────────────────────────────────────────

// Get resolves the unqualified Key of T and type-asserts the result.
//
//	svc, err := inject.Get[*SimpleService](in)
func Get[T any](in *Injector) (T, error) {
	return getAs[T](in, KeyOf[T]())
}

// GetNamed resolves the Key of T qualified by name.
//
//	cfg, err := inject.GetNamed[string](in, "config")
func GetNamed[T any](in *Injector, name string) (T, error) {
	return getAs[T](in, KeyNamed[T](name))
}

// MustGet is Get for wiring code where a failure is fatal; it panics on
// error.
func MustGet[T any](in *Injector) T {
	v, err := Get[T](in)
	if err != nil {
		panic(err)
	}
	return v
}

func getAs[T any](in *Injector, key Key) (T, error) {
	var zero T
	v, err := in.Get(key)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("inject: %v resolved to %T, want %T", key, v, zero)
	}
	return typed, nil
}
