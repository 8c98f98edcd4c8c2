package fixture

import (
	"reflect"
)

// Descriptor identifies one entry of a PlaceholderMap.
type Descriptor int

const (
	DescInt Descriptor = iota
	DescInt8
	DescInt16
	DescInt32
	DescInt64
	DescUint
	DescUint8
	DescUint16
	DescUint32
	DescUint64
	DescFloat32
	DescFloat64
	DescBool
	DescString
	DescOptional
	DescEnum
	DescSet
	DescMapping
	DescList
	DescSequence
)

var descriptorNames = [...]string{
	DescInt:      "int",
	DescInt8:     "int8",
	DescInt16:    "int16",
	DescInt32:    "int32",
	DescInt64:    "int64",
	DescUint:     "uint",
	DescUint8:    "uint8",
	DescUint16:   "uint16",
	DescUint32:   "uint32",
	DescUint64:   "uint64",
	DescFloat32:  "float32",
	DescFloat64:  "float64",
	DescBool:     "bool",
	DescString:   "string",
	DescOptional: "optional",
	DescEnum:     "enum",
	DescSet:      "set",
	DescMapping:  "mapping",
	DescList:     "list",
	DescSequence: "sequence",
}

func (d Descriptor) String() string {
	if d < 0 || int(d) >= len(descriptorNames) {
		return "unknown"
	}
	return descriptorNames[d]
}

// StringPlaceholder is the value every string parameter resolves to.
const StringPlaceholder = "dummy"

var (
	anyType   = reflect.TypeFor[any]()
	errorType = reflect.TypeFor[error]()
	emptyType = reflect.TypeFor[struct{}]()
)

// predeclared maps each predeclared primitive to its descriptor. Lookup is by
// type identity, so defined types such as `type Port int` never match.
var predeclared = map[reflect.Type]Descriptor{
	reflect.TypeFor[int]():     DescInt,
	reflect.TypeFor[int8]():    DescInt8,
	reflect.TypeFor[int16]():   DescInt16,
	reflect.TypeFor[int32]():   DescInt32,
	reflect.TypeFor[int64]():   DescInt64,
	reflect.TypeFor[uint]():    DescUint,
	reflect.TypeFor[uint8]():   DescUint8,
	reflect.TypeFor[uint16]():  DescUint16,
	reflect.TypeFor[uint32]():  DescUint32,
	reflect.TypeFor[uint64]():  DescUint64,
	reflect.TypeFor[float32](): DescFloat32,
	reflect.TypeFor[float64](): DescFloat64,
	reflect.TypeFor[bool]():    DescBool,
	reflect.TypeFor[string]():  DescString,
	anyType:                    DescOptional,
}

// placeholderFunc produces the placeholder for t, which is guaranteed to be
// described by the descriptor the func is stored under.
type placeholderFunc func(t reflect.Type) reflect.Value

// PlaceholderMap maps each Descriptor to one fixed placeholder value. It is
// immutable; DefaultPlaceholders returns the shared instance.
type PlaceholderMap struct {
	values map[Descriptor]placeholderFunc
}

var defaultPlaceholders = &PlaceholderMap{
	values: map[Descriptor]placeholderFunc{
		DescInt:      one,
		DescInt8:     one,
		DescInt16:    one,
		DescInt32:    one,
		DescInt64:    one,
		DescUint:     one,
		DescUint8:    one,
		DescUint16:   one,
		DescUint32:   one,
		DescUint64:   one,
		DescFloat32:  one,
		DescFloat64:  one,
		DescBool:     falseValue,
		DescString:   dummy,
		DescOptional: reflect.Zero,
		DescEnum:     enumMarker,
		DescSet:      emptyMap,
		DescMapping:  emptyMap,
		DescList:     emptyList,
		DescSequence: emptySequence,
	},
}

// DefaultPlaceholders returns the fixed placeholder table.
func DefaultPlaceholders() *PlaceholderMap {
	return defaultPlaceholders
}

// Describe returns the descriptor t exactly matches. Defined types are
// reported as not matching, except iter.Seq and iter.Seq2.
func Describe(t reflect.Type) (Descriptor, bool) {
	if d, ok := predeclared[t]; ok {
		return d, true
	}
	if isSequence(t) {
		return DescSequence, true
	}
	if t.Name() != "" {
		return 0, false
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return DescList, true
	case reflect.Map:
		if t.Elem() == emptyType {
			return DescSet, true
		}
		return DescMapping, true
	}
	return 0, false
}

// Lookup returns the placeholder for an exact descriptor match.
func (m *PlaceholderMap) Lookup(t reflect.Type) (reflect.Value, bool) {
	d, ok := Describe(t)
	if !ok {
		return reflect.Value{}, false
	}
	return m.values[d](t), true
}

// underlying reports whether the defined type t has an underlying type that
// a placeholder exists for, and which descriptor applies to t.
func underlying(t reflect.Type) (Descriptor, bool) {
	if t.Name() == "" {
		return 0, false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Bool, reflect.String:
		return DescEnum, true
	case reflect.Slice, reflect.Array:
		return DescList, true
	case reflect.Map:
		if t.Elem() == emptyType {
			return DescSet, true
		}
		return DescMapping, true
	}
	return 0, false
}

// value returns the placeholder stored under d, built for t.
func (m *PlaceholderMap) value(d Descriptor, t reflect.Type) reflect.Value {
	return m.values[d](t)
}

func isSequence(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.PkgPath() != "iter" {
		return false
	}
	name := t.Name()
	return len(name) >= 3 && name[:3] == "Seq"
}

func one(t reflect.Type) reflect.Value {
	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(1)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.SetUint(1)
	case reflect.Float32, reflect.Float64:
		v.SetFloat(1.0)
	}
	return v
}

func falseValue(t reflect.Type) reflect.Value {
	return reflect.New(t).Elem()
}

func dummy(t reflect.Type) reflect.Value {
	v := reflect.New(t).Elem()
	v.SetString(StringPlaceholder)
	return v
}

// enumMarker never picks a declared constant: Go keeps no record of which
// constants belong to a type. It yields the kind placeholder converted to t.
func enumMarker(t reflect.Type) reflect.Value {
	switch t.Kind() {
	case reflect.Bool:
		return falseValue(t)
	case reflect.String:
		return dummy(t)
	}
	return one(t)
}

func emptyMap(t reflect.Type) reflect.Value {
	return reflect.MakeMap(t)
}

func emptyList(t reflect.Type) reflect.Value {
	if t.Kind() == reflect.Array {
		return reflect.New(t).Elem()
	}
	return reflect.MakeSlice(t, 0, 0)
}

func emptySequence(t reflect.Type) reflect.Value {
	return reflect.MakeFunc(t, func([]reflect.Value) []reflect.Value { return nil })
}
