// Package inject provides a Guice-compatible dependency-injection runtime
// for Go: a binding registry, declarative module composition, a lazily
// resolving object graph builder with scope management, type observation
// hooks, and set multibinding.
//
// It mirrors the public API of Google Guice as closely as Go's type system
// allows. Because Go has no annotations or constructor reflection, injection
// points are declared explicitly: constructors are plain functions whose
// parameters name their dependencies, and qualified dependencies are spelled
// out as Keys. The registry is built once from modules and frozen; resolution
// never scans or generates code.
//
// # Injector lifecycle
//
//  1. Declare modules: func (m AppModule) Configure(b *inject.Binder)
//  2. Compose:         in, err := inject.New(AppModule{}, DBModule{})
//  3. Resolve:         svc, err := inject.Get[*Service](in)
//
// # Bindings
//
//	// Guice: bind(Config.class).toInstance(cfg)
//	inject.Bind[*Config](b).ToInstance(cfg)
//
//	// Guice: bind(UserService.class).in(SINGLETON)
//	inject.Bind[*UserService](b).ToConstructor(NewUserService).In(inject.SingletonScope)
//
//	// Guice: bind(String.class).annotatedWith(Names.named("config")).toInstance("x")
//	inject.BindNamed[string](b, "config").ToInstance("x")
//
//	// Guice: bind(Plugin.class).to(PluginA.class)
//	inject.Bind[Plugin](b).ToKey(inject.KeyOf[*PluginA]())
//
// # Providers
//
// A constructor parameter of type Provider[X] is resolved lazily: each Get()
// performs a fresh lookup, and the edge is excluded from cycle detection.
//
//	// Guice: @Inject Service(Provider<Dep> dep) { ... }
//	func NewService(dep inject.Provider[*Dep]) *Service { ... }
//
// # Multibinding
//
//	// Guice: Multibinder.newSetBinder(binder(), Plugin.class).addBinding().to(PluginA.class)
//	plugins := inject.NewSetBinder[Plugin](b)
//	plugins.AddBinding().ToConstructor(NewPluginA)
//	all, err := inject.Get[[]Plugin](in)
//
// # Type listeners
//
//	// Guice: bindListener(Matchers.any(), listener)
//	b.BindListener(inject.Any(), func(t reflect.Type, e *inject.Encounter) {
//	    e.Register(func(instance any) error { ... })
//	})
//
// Listeners fire once per distinct type the first time it is materialized;
// the MembersInjectors they register run for every instance of that type.
//
// # Errors
//
// Composition fails with DuplicateBindingError when two modules bind the same
// Key; resolution fails with MissingBindingError for unregistered Keys and
// CircularDependencyError for non-Provider cycles. Registration after the
// registry freezes fails with RegistryFrozenError. All are matchable with
// errors.As.
package inject
