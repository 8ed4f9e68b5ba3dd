package helpers

import "reflect"

// NilPanic returns v, or panics with msg when v holds no value: a nil pointer, slice, map, chan,
// func or interface, including an interface wrapping a typed nil.
//
// Called from the constructors of pools, probes, routers, servicers, stores and the admin server.
func NilPanic[T any](v T, msg string) T {
	rv := reflect.ValueOf(&v).Elem()
	for rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		if rv.IsNil() {
			panic(msg)
		}
	}
	return v
}
