package inject_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject"
)

// ── Singleton scope ───────────────────────────────────────────────────────────

func TestInjector_SingletonBinding_ReturnsSameInstance(t *testing.T) {
	in, err := inject.New(inject.ModuleFunc(func(b *inject.Binder) {
		inject.Bind[*SimpleService](b).ToConstructor(NewSimpleService).In(inject.SingletonScope)
	}))
	require.NoError(t, err)

	first, err := inject.Get[*SimpleService](in)
	require.NoError(t, err)
	second, err := inject.Get[*SimpleService](in)
	require.NoError(t, err)

	require.NotNil(t, first)
	require.Same(t, first, second, "singleton binding should return same instance")
}

func TestInjector_UnscopedBinding_ReturnsFreshInstances(t *testing.T) {
	in, err := inject.New(inject.ModuleFunc(func(b *inject.Binder) {
		inject.Bind[*SimpleService](b).ToConstructor(NewSimpleService)
	}))
	require.NoError(t, err)

	first, err := inject.Get[*SimpleService](in)
	require.NoError(t, err)
	second, err := inject.Get[*SimpleService](in)
	require.NoError(t, err)

	require.NotSame(t, first, second, "unscoped binding should build per resolution")
}

// ── Constructor injection ─────────────────────────────────────────────────────

func TestInjector_ConstructorDependency_Resolved(t *testing.T) {
	in, err := inject.New(inject.ModuleFunc(func(b *inject.Binder) {
		inject.Bind[*DependencyService](b).ToConstructor(NewDependencyService).In(inject.SingletonScope)
		inject.Bind[*ServiceWithDependency](b).ToConstructor(NewServiceWithDependency).In(inject.SingletonScope)
	}))
	require.NoError(t, err)

	svc, err := inject.Get[*ServiceWithDependency](in)
	require.NoError(t, err)
	require.NotNil(t, svc.Dep)

	dep, err := inject.Get[*DependencyService](in)
	require.NoError(t, err)
	require.Same(t, dep, svc.Dep, "singleton dependency should be shared")
}

func TestInjector_ConstructorError_Propagates(t *testing.T) {
	var calls atomic.Int32
	in, err := inject.New(inject.ModuleFunc(func(b *inject.Binder) {
		inject.Bind[*SimpleService](b).ToProvider(func(*inject.Injector) (*SimpleService, error) {
			if calls.Add(1) == 1 {
				return nil, fmt.Errorf("database unreachable")
			}
			return NewSimpleService(), nil
		}).In(inject.SingletonScope)
	}))
	require.NoError(t, err)

	_, err = inject.Get[*SimpleService](in)
	require.ErrorContains(t, err, "database unreachable")

	// A failed construction must not poison the singleton cache.
	first, err := inject.Get[*SimpleService](in)
	require.NoError(t, err)
	second, err := inject.Get[*SimpleService](in)
	require.NoError(t, err)
	require.Same(t, first, second)
}

// ── Instance and named bindings ───────────────────────────────────────────────

func TestInjector_NamedBinding_Resolved(t *testing.T) {
	in, err := inject.New(inject.ModuleFunc(func(b *inject.Binder) {
		inject.BindNamed[string](b, "config").ToInstance("test-config")
	}))
	require.NoError(t, err)

	got, err := inject.GetNamed[string](in, "config")
	require.NoError(t, err)
	require.Equal(t, "test-config", got)
}

func TestInjector_NamedAndUnqualifiedKeys_AreDistinct(t *testing.T) {
	in, err := inject.New(inject.ModuleFunc(func(b *inject.Binder) {
		inject.Bind[string](b).ToInstance("default")
		inject.BindNamed[string](b, "config").ToInstance("test-config")
	}))
	require.NoError(t, err)

	plain, err := inject.Get[string](in)
	require.NoError(t, err)
	named, err := inject.GetNamed[string](in, "config")
	require.NoError(t, err)

	require.Equal(t, "default", plain)
	require.Equal(t, "test-config", named)

	// A qualifier with no binding stays unresolvable even though the
	// unqualified key is bound.
	_, err = inject.GetNamed[string](in, "other")
	var missing inject.MissingBindingError
	require.ErrorAs(t, err, &missing)
}

// ── Linked keys ───────────────────────────────────────────────────────────────

func TestInjector_LinkedKey_DelegatesResolution(t *testing.T) {
	in, err := inject.New(inject.ModuleFunc(func(b *inject.Binder) {
		inject.Bind[*ConcreteService](b).ToConstructor(NewConcreteService).In(inject.SingletonScope)
		inject.Bind[Service](b).ToKey(inject.KeyOf[*ConcreteService]())
	}))
	require.NoError(t, err)

	svc, err := inject.Get[Service](in)
	require.NoError(t, err)
	require.Equal(t, "concrete", svc.Name())

	concrete, err := inject.Get[*ConcreteService](in)
	require.NoError(t, err)
	require.Same(t, concrete, svc.(*ConcreteService), "linked key should reach the concrete singleton")
}

// ── Missing bindings ──────────────────────────────────────────────────────────

func TestInjector_MissingBinding_Fails(t *testing.T) {
	in, err := inject.New()
	require.NoError(t, err)

	_, err = inject.Get[*SimpleService](in)
	var missing inject.MissingBindingError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, inject.KeyOf[*SimpleService](), missing.Key)
}

// ── Self binding ──────────────────────────────────────────────────────────────

func TestInjector_ResolvesItself(t *testing.T) {
	in, err := inject.New()
	require.NoError(t, err)

	got, err := inject.Get[*inject.Injector](in)
	require.NoError(t, err)
	require.Same(t, in, got, "the engine's own Key should resolve to the engine")
}

// ── Concurrency ───────────────────────────────────────────────────────────────

func TestInjector_ConcurrentSingletonResolution_OneCanonicalInstance(t *testing.T) {
	var constructions atomic.Int32
	in, err := inject.New(inject.ModuleFunc(func(b *inject.Binder) {
		inject.Bind[*SimpleService](b).ToProvider(func(*inject.Injector) (*SimpleService, error) {
			constructions.Add(1)
			time.Sleep(10 * time.Millisecond)
			return NewSimpleService(), nil
		}).In(inject.SingletonScope)
	}))
	require.NoError(t, err)

	const n = 16
	results := make([]*SimpleService, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc, err := inject.Get[*SimpleService](in)
			require.NoError(t, err)
			results[i] = svc
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, constructions.Load(), "racing callers should block, not rebuild")
	for i := 1; i < n; i++ {
		require.Same(t, results[0], results[i], "all callers should observe the canonical instance")
	}
}

func TestInjector_ConcurrentUnscopedResolution_IsSafe(t *testing.T) {
	in, err := inject.New(inject.ModuleFunc(func(b *inject.Binder) {
		inject.Bind[*DependencyService](b).ToConstructor(NewDependencyService)
		inject.Bind[*ServiceWithDependency](b).ToConstructor(NewServiceWithDependency)
	}))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc, err := inject.Get[*ServiceWithDependency](in)
			if err != nil || svc == nil {
				t.Error("unscoped resolution failed under concurrency")
			}
		}()
	}
	wg.Wait()
}
