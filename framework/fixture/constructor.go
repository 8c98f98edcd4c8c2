package fixture

import (
	"fmt"
	"reflect"
)

// ConstructorKind tells how a Constructor produces its value.
type ConstructorKind int

const (
	// KindFunc calls a registered constructor function.
	KindFunc ConstructorKind = iota
	// KindLiteral assigns every exported field of a struct.
	KindLiteral
	// KindAddress builds the element type and returns a pointer to it.
	KindAddress
	// KindPlaceholder returns the placeholder for the type.
	KindPlaceholder
)

func (k ConstructorKind) String() string {
	switch k {
	case KindFunc:
		return "func"
	case KindLiteral:
		return "literal"
	case KindAddress:
		return "address"
	case KindPlaceholder:
		return "placeholder"
	}
	return "unknown"
}

// Constructor describes one way of producing a value of Type from Params.
type Constructor struct {
	Type   reflect.Type
	Params []reflect.Type
	Kind   ConstructorKind

	fn       reflect.Value
	fields   []int
	desc     Descriptor
	fallible bool
}

// String renders the constructor as a signature, e.g. "func(string, int) *app.User".
func (c Constructor) String() string {
	s := c.Kind.String() + "("
	for i, p := range c.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") " + c.Type.String()
}

// newFuncConstructor validates fn as `func(P...) T` or `func(P...) (T, error)`.
func newFuncConstructor(fn any) (Constructor, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return Constructor{}, fmt.Errorf("fixture: constructor must be a non-nil func, got %T", fn)
	}
	ft := v.Type()
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return Constructor{}, fmt.Errorf("fixture: constructor %s must return T or (T, error)", ft)
	}

	params := make([]reflect.Type, ft.NumIn())
	for i := range params {
		params[i] = ft.In(i)
	}
	return Constructor{
		Type:     ft.Out(0),
		Params:   params,
		Kind:     KindFunc,
		fn:       v,
		fallible: ft.NumOut() == 2,
	}, nil
}

// implicitConstructor returns the constructor Go itself offers for t, if any.
func implicitConstructor(t reflect.Type) (Constructor, bool) {
	if d, ok := Describe(t); ok {
		return Constructor{Type: t, Kind: KindPlaceholder, desc: d}, true
	}
	if d, ok := underlying(t); ok {
		return Constructor{Type: t, Kind: KindPlaceholder, desc: d}, true
	}

	switch t.Kind() {
	case reflect.Pointer:
		return Constructor{Type: t, Params: []reflect.Type{t.Elem()}, Kind: KindAddress}, true
	case reflect.Struct:
		var (
			params []reflect.Type
			fields []int
		)
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				return Constructor{}, false
			}
			params = append(params, f.Type)
			fields = append(fields, i)
		}
		return Constructor{Type: t, Params: params, Kind: KindLiteral, fields: fields}, true
	}
	return Constructor{}, false
}

// invoke runs the constructor with fully resolved arguments. An error
// returned by a constructor function is passed through untouched.
func (c Constructor) invoke(args []reflect.Value, placeholders *PlaceholderMap) (reflect.Value, error) {
	switch c.Kind {
	case KindPlaceholder:
		return placeholders.value(c.desc, c.Type), nil

	case KindAddress:
		p := reflect.New(c.Type.Elem())
		p.Elem().Set(args[0])
		return p, nil

	case KindLiteral:
		v := reflect.New(c.Type).Elem()
		for i, idx := range c.fields {
			v.Field(idx).Set(args[i])
		}
		return v, nil
	}

	var out []reflect.Value
	if c.fn.Type().IsVariadic() {
		out = c.fn.CallSlice(args)
	} else {
		out = c.fn.Call(args)
	}
	if c.fallible && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}
	return out[0], nil
}
