package cval

import (
	"encoding"
	"net/url"
	"reflect"
)

// ValueOf is the mirror of GetAs[T] (spec §4.6, final paragraph):
// "writing a record into a Value is the mirror" of the read bridge.
// It walks x's shape with the same rules extractInto uses to read,
// producing scalar Values via the canonical mapping of §4.4.
func ValueOf(x any) Value {
	return valueOfReflect(reflect.ValueOf(x))
}

func valueOfReflect(rv reflect.Value) Value {
	if !rv.IsValid() {
		return None()
	}
	if rv.Type() == valueType {
		return rv.Interface().(Value)
	}
	if rv.CanInterface() {
		if tm, ok := rv.Interface().(encoding.TextMarshaler); ok {
			text, err := tm.MarshalText()
			if err != nil {
				return None()
			}
			return NewString(string(text))
		}
	}
	switch rv.Type() {
	case durationTy:
		return NewTimespan(rv.Int())
	case urlPtrTy:
		if rv.IsNil() {
			return None()
		}
		return NewURI(rv.Interface().(*url.URL))
	}

	switch rv.Kind() {
	case reflect.Bool:
		return NewBoolean(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInteger(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewInteger(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return NewReal(rv.Float())
	case reflect.String:
		return NewString(rv.String())
	case reflect.Pointer:
		if rv.IsNil() {
			return None()
		}
		return valueOfReflect(rv.Elem())
	case reflect.Slice, reflect.Array:
		elems := make([]Value, rv.Len())
		for i := range elems {
			elems[i] = valueOfReflect(rv.Index(i))
		}
		return Value{kind: KindList, list: elems}
	case reflect.Map:
		out := NewDictionary()
		h := out.AsDictionary()
		for _, k := range rv.MapKeys() {
			h.Set(k.String(), valueOfReflect(rv.MapIndex(k)))
		}
		return out
	case reflect.Struct:
		return structToValue(rv)
	}
	return None()
}

// structToValue implements the write half of case 7: a Fielder's
// slots are read back and converted; otherwise the same `cval` tag
// convention structFields uses for reading drives the field names.
//
// rv arrives unaddressable whenever ValueOf was called with a plain
// value (the common case, since reflect.ValueOf(x) never yields an
// addressable Value) so the *T method-set check against Fielder needs
// an addressable copy rather than rv itself.
func structToValue(rv reflect.Value) Value {
	out := NewDictionary()
	h := out.AsDictionary()
	addr := rv
	if !addr.CanAddr() {
		tmp := reflect.New(rv.Type())
		tmp.Elem().Set(rv)
		addr = tmp.Elem()
	}
	if addr.Addr().Type().Implements(fielderTy) {
		for _, field := range addr.Addr().Interface().(Fielder).Fields() {
			h.Set(field.Name, valueOfReflect(reflect.ValueOf(field.Slot).Elem()))
		}
		return out
	}
	for _, sf := range structFields(rv.Type()) {
		h.Set(sf.name, valueOfReflect(rv.FieldByIndex(sf.index)))
	}
	return out
}
