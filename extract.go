package cval

import (
	"encoding"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Fielder is the inspection protocol of spec §4.6: a user type
// advertises its shape by returning the field list the bridge should
// drive its generic reader/writer against, instead of falling back to
// the tag-based reflection walk in structFields.
type Fielder interface {
	Fields() []Field
}

// Field names one slot of a Fielder-advertising record: Slot must be
// a pointer to the field's storage.
type Field struct {
	Name     string
	Slot     any
	Optional bool
}

var (
	valueType         = reflect.TypeFor[Value]()
	textUnmarshalerTy = reflect.TypeFor[encoding.TextUnmarshaler]()
	durationTy        = reflect.TypeFor[time.Duration]()
	urlPtrTy          = reflect.TypeFor[*url.URL]()
	fielderTy         = reflect.TypeFor[Fielder]()
)

// GetAs implements get_as<T> (spec §4.5): coerce v into the Go type T,
// dispatching on T's shape to the corresponding coercion, a recursive
// walk over a container's elements, or the inspection-protocol
// bridge for a user record.
func GetAs[T any](v Value) (T, error) {
	var out T
	if err := extractInto(v, reflect.ValueOf(&out).Elem()); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// extractInto is the reflection-driven core shared by GetAs[T] and
// the inspection bridge, which must recurse into slot types that are
// only known at run time.
func extractInto(v Value, rv reflect.Value) error {
	rt := rv.Type()

	if rt == valueType {
		rv.Set(reflect.ValueOf(v))
		return nil
	}

	// Case 8 (enumeration by name) and the scalar extension point for
	// external types (uuid.UUID, decimal.Decimal, time.Time, ...):
	// both are driven by encoding.TextUnmarshaler, mirroring the
	// teacher's own field-unpacking bridge.
	if addr := rv.Addr(); addr.Type().Implements(textUnmarshalerTy) {
		if v.Kind() != KindString {
			return conversionErr("get_as: %s target requires a string source, got %s", rt, v.kind)
		}
		return addr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(v.ToString()))
	}

	switch rt {
	case durationTy:
		ns, err := v.ToTimespan()
		if err != nil {
			return err
		}
		rv.SetInt(ns)
		return nil
	case urlPtrTy:
		u, err := v.URI()
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(u))
		return nil
	}

	switch rt.Kind() {
	case reflect.Bool:
		b, err := v.ToBoolean()
		if err != nil {
			return err
		}
		rv.SetBool(b)
		return nil

	case reflect.Int64:
		n, err := v.ToInteger()
		if err != nil {
			return err
		}
		rv.SetInt(n)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		lo, hi, _ := intBounds(rt.Kind())
		n, err := v.ToIntegerBounded(true, lo, hi)
		if err != nil {
			return err
		}
		rv.SetInt(n)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		_, hi, _ := intBounds(rt.Kind())
		n, err := v.ToIntegerBounded(false, 0, hi)
		if err != nil {
			return err
		}
		rv.SetUint(uint64(n))
		return nil

	case reflect.Float64:
		f, err := v.ToReal()
		if err != nil {
			return err
		}
		rv.SetFloat(f)
		return nil

	case reflect.Float32:
		f, err := v.ToReal32()
		if err != nil {
			return err
		}
		rv.SetFloat(float64(f))
		return nil

	case reflect.String:
		rv.SetString(v.ToString())
		return nil

	case reflect.Slice, reflect.Array:
		return extractSequenceInto(v, rv)

	case reflect.Map:
		return extractMapInto(v, rv)

	case reflect.Pointer:
		if rv.IsNil() {
			rv.Set(reflect.New(rt.Elem()))
		}
		return extractInto(v, rv.Elem())

	case reflect.Struct:
		return extractStructInto(v, rv)
	}
	return conversionErr("get_as: unsupported target type %s", rt)
}

// intBounds mirrors the teacher's intLimits: the inclusive [lo, hi]
// range for a narrower integer Kind, used to drive ToIntegerBounded.
func intBounds(k reflect.Kind) (lo int64, hi uint64, ok bool) {
	switch k {
	case reflect.Int:
		return math.MinInt, math.MaxInt, true
	case reflect.Int8:
		return math.MinInt8, math.MaxInt8, true
	case reflect.Int16:
		return math.MinInt16, math.MaxInt16, true
	case reflect.Int32:
		return math.MinInt32, math.MaxInt32, true
	case reflect.Uint:
		return 0, math.MaxUint, true
	case reflect.Uint8:
		return 0, math.MaxUint8, true
	case reflect.Uint16:
		return 0, math.MaxUint16, true
	case reflect.Uint32:
		return 0, math.MaxUint32, true
	case reflect.Uint64:
		return 0, math.MaxUint64, true
	}
	return 0, 0, false
}

// extractSequenceInto implements case 4 (sequence container) for a
// slice target, and the homogeneous instance of case 6 (fixed-size
// tuple) for an array target, whose length must match exactly.
func extractSequenceInto(v Value, rv reflect.Value) error {
	elems, err := v.ToList()
	if err != nil {
		return err
	}
	rt := rv.Type()
	if rt.Kind() == reflect.Array {
		if len(elems) != rt.Len() {
			return conversionErr("get_as: expected %d elements, got %d", rt.Len(), len(elems))
		}
	} else {
		rv.Set(reflect.MakeSlice(rt, len(elems), len(elems)))
	}
	for i, e := range elems {
		if err := extractInto(e, rv.Index(i)); err != nil {
			return withFieldPath(indexPath(i), err)
		}
	}
	return nil
}

// extractMapInto implements case 5 (associative container from
// string to U): only string-keyed maps are supported, matching
// to_dictionary's key type.
func extractMapInto(v Value, rv reflect.Value) error {
	rt := rv.Type()
	if rt.Key().Kind() != reflect.String {
		return conversionErr("get_as: map target must be keyed by string, got %s", rt.Key())
	}
	d, err := v.ToDictionary()
	if err != nil {
		return err
	}
	out := reflect.MakeMapWithSize(rt, d.Len())
	var walkErr error
	d.Each(func(k string, val Value) bool {
		elem := reflect.New(rt.Elem()).Elem()
		if err := extractInto(val, elem); err != nil {
			walkErr = withFieldPath(k, err)
			return false
		}
		out.SetMapIndex(reflect.ValueOf(k).Convert(rt.Key()), elem)
		return true
	})
	if walkErr != nil {
		return walkErr
	}
	rv.Set(out)
	return nil
}

// extractStructInto implements case 7 via the Fielder protocol when
// the target advertises it, and otherwise falls back to a reflection
// walk over exported fields tagged `cval:"name,omitempty"`, matching
// the teacher's tag-driven fieldMap/unpackStruct but generalized to
// this package's GetAs instead of a fixed set of Go primitives.
func extractStructInto(v Value, rv reflect.Value) error {
	if rv.CanAddr() && rv.Addr().Type().Implements(fielderTy) {
		return driveFielder(v, rv.Addr().Interface().(Fielder))
	}
	d, err := v.ToDictionary()
	if err != nil {
		return err
	}
	for _, sf := range structFields(rv.Type()) {
		val, found := d.Get(sf.name)
		if !found {
			if sf.optional {
				continue
			}
			return &Error{Kind: MissingField, Path: sf.name, Message: "required field not present"}
		}
		if err := extractInto(val, rv.FieldByIndex(sf.index)); err != nil {
			return withFieldPath(sf.name, err)
		}
	}
	return nil
}

func driveFielder(v Value, f Fielder) error {
	d, err := v.ToDictionary()
	if err != nil {
		return err
	}
	for _, field := range f.Fields() {
		val, found := d.Get(field.Name)
		if !found {
			if field.Optional {
				continue
			}
			return &Error{Kind: MissingField, Path: field.Name, Message: "required field not present"}
		}
		rv := reflect.ValueOf(field.Slot).Elem()
		if err := extractInto(val, rv); err != nil {
			return withFieldPath(field.Name, err)
		}
	}
	return nil
}

type structFieldSpec struct {
	name     string
	index    []int
	optional bool
}

// structFields flattens rt's exported fields into a name-addressed
// list, following a `cval:"name,omitempty"` tag when present and the
// Go field name otherwise. It does not recurse into embedded structs:
// a nested record is just another field whose value is itself
// extracted via extractInto, the same way the spec's bridge recurses
// on a field's slot type.
func structFields(rt reflect.Type) []structFieldSpec {
	var out []structFieldSpec
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		optional := false
		if tag, ok := f.Tag.Lookup("cval"); ok {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
			for _, opt := range parts[1:] {
				if opt == "omitempty" {
					optional = true
				}
			}
		}
		out = append(out, structFieldSpec{name: name, index: f.Index, optional: optional})
	}
	return out
}

func indexPath(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
