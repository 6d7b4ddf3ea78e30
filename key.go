package inject

import (
	"fmt"
	"reflect"
)

// ── Key ───────────────────────────────────────────────────────────────────────

// Key identifies an injectable slot: a target type plus an optional qualifier.
// Keys are immutable values, comparable with ==, and serve as the registry's
// map key. A qualified Key and the unqualified Key of the same type are
// distinct slots.
//
//	// Guice: Key.get(DataSource.class)
//	k := inject.KeyOf[DataSource]()
//
//	// Guice: Key.get(String.class, Names.named("config"))
//	k := inject.KeyNamed[string]("config")
type Key struct {
	Type      reflect.Type
	Qualifier string
}

// KeyOf returns the unqualified Key for type T.
func KeyOf[T any]() Key {
	return Key{Type: reflect.TypeFor[T]()}
}

// KeyNamed returns the Key for type T qualified by name.
//
//	// Guice: bind(String.class).annotatedWith(Names.named("config"))
func KeyNamed[T any](name string) Key {
	return Key{Type: reflect.TypeFor[T](), Qualifier: name}
}

// KeyForType returns the unqualified Key for a reflected type.
func KeyForType(t reflect.Type) Key {
	return Key{Type: t}
}

// String renders the Key for error messages: "main.Service" or
// "string[config]".
func (k Key) String() string {
	if k.Qualifier == "" {
		return fmt.Sprintf("%v", k.Type)
	}
	return fmt.Sprintf("%v[%s]", k.Type, k.Qualifier)
}
