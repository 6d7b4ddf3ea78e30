package inject

import "reflect"

// ── Module ────────────────────────────────────────────────────────────────────

// Module is a declarative unit of binding specifications. Configure declares
// bindings on the Binder and may install other modules; the composition step
// deduplicates installs by module identity, so diamond-shaped module graphs
// are safe.
//
//	// Guice:
//	// class DatabaseModule extends AbstractModule {
//	//     protected void configure() { bind(...); install(new PoolModule()); }
//	// }
//
//	type DatabaseModule struct{}
//
//	func (DatabaseModule) Configure(b *inject.Binder) {
//	    inject.Bind[*Pool](b).ToConstructor(NewPool).In(inject.SingletonScope)
//	    b.Install(PoolModule{})
//	}
type Module interface {
	Configure(b *Binder)
}

// ModuleFunc adapts a plain function to the Module interface.
//
//	m := inject.ModuleFunc(func(b *inject.Binder) { ... })
type ModuleFunc func(b *Binder)

func (f ModuleFunc) Configure(b *Binder) { f(b) }

// moduleID derives a comparable identity for install deduplication. Pointer
// and comparable-value modules dedup naturally; function modules dedup by
// code pointer; anything non-comparable is treated as unique.
func moduleID(m Module) any {
	v := reflect.ValueOf(m)
	switch v.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice:
		return v.Pointer()
	default:
		if v.Comparable() {
			return m
		}
		return new(int)
	}
}
