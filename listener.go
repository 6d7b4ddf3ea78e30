package inject

import (
	"reflect"
	"sync"
)

// ── Matchers ──────────────────────────────────────────────────────────────────

// Matcher is a pure predicate over a materialized instance's type. Matchers
// must not mutate state during matching; they may run on any goroutine.
type Matcher func(t reflect.Type) bool

// Any matches every type.
//
//	// Guice: Matchers.any()
func Any() Matcher {
	return func(reflect.Type) bool { return true }
}

// Exactly matches the concrete type T and nothing else.
func Exactly[T any]() Matcher {
	want := reflect.TypeFor[T]()
	return func(t reflect.Type) bool { return t == want }
}

// SubclassesOf matches types assignable to T. With an interface T this is an
// implements check, the Go rendition of Guice's subclass matching.
//
//	// Guice: BaseService.class.isAssignableFrom(t.getRawType())
//	inject.SubclassesOf[Service]()
func SubclassesOf[T any]() Matcher {
	base := reflect.TypeFor[T]()
	return func(t reflect.Type) bool {
		if base.Kind() == reflect.Interface {
			return t.Implements(base)
		}
		return t.AssignableTo(base)
	}
}

// ── Type listeners ────────────────────────────────────────────────────────────

// MembersInjector is a deferred side-effecting action applied to a freshly
// constructed instance before it is returned to the caller.
//
//	// Guice: encounter.register((MembersInjector<I>) instance -> { ... })
type MembersInjector func(instance any) error

// TypeListener observes the first materialization of each matching type. It
// may register MembersInjectors on the encounter; once registered they run
// for every instance of that type, including instances created later.
//
//	// Guice: public <I> void hear(TypeLiteral<I> type, TypeEncounter<I> encounter)
type TypeListener func(t reflect.Type, encounter *Encounter)

// boundListener pairs a matcher with its listener, in registration order.
type boundListener struct {
	matcher  Matcher
	listener TypeListener
}

// Encounter is the handle a TypeListener receives for one distinct type.
type Encounter struct {
	typ     reflect.Type
	in      *Injector
	members []MembersInjector
}

// Type returns the type being encountered.
func (e *Encounter) Type() reflect.Type { return e.typ }

// Injector returns the engine itself, for deferred lookups inside a
// MembersInjector.
//
//	// Guice: encounter.getProvider(Injector.class)
func (e *Encounter) Injector() *Injector { return e.in }

// Register attaches a MembersInjector to the encountered type.
func (e *Encounter) Register(mi MembersInjector) {
	e.members = append(e.members, mi)
}

// ── Pipeline ──────────────────────────────────────────────────────────────────

// observationPipeline fires listeners exactly once per distinct type and
// replays the collected MembersInjectors on every later instance of that
// type.
type observationPipeline struct {
	listeners []boundListener

	mu      sync.Mutex
	records map[reflect.Type]*typeRecord
}

type typeRecord struct {
	once    sync.Once
	members []MembersInjector
}

func newObservationPipeline(listeners []boundListener) *observationPipeline {
	return &observationPipeline{
		listeners: listeners,
		records:   make(map[reflect.Type]*typeRecord),
	}
}

// observe runs the pipeline for one freshly constructed instance. Listener
// invocation happens under the record's once, so concurrent materializations
// of the same type still fire each listener a single time.
func (p *observationPipeline) observe(in *Injector, instance any) error {
	if len(p.listeners) == 0 || instance == nil {
		return nil
	}
	t := reflect.TypeOf(instance)

	p.mu.Lock()
	rec, ok := p.records[t]
	if !ok {
		rec = &typeRecord{}
		p.records[t] = rec
	}
	p.mu.Unlock()

	rec.once.Do(func() {
		enc := &Encounter{typ: t, in: in.root()}
		for _, bl := range p.listeners {
			if bl.matcher(t) {
				bl.listener(t, enc)
			}
		}
		rec.members = enc.members
	})

	for _, mi := range rec.members {
		if err := mi(instance); err != nil {
			return err
		}
	}
	return nil
}
