package fixture

import (
	"fmt"
	"reflect"

	fxerrors "github.com/km-arc/go-fixture/framework/errors"
)

// Sentinels for errors.Is. Returned errors carry the offending type in their
// message and Context; they match the sentinel by code.
var (
	ErrUnresolvableAbstractType = fxerrors.New(fxerrors.ErrCodeUnresolvableAbstractType, "unresolvable abstract type")
	ErrNoConstructor            = fxerrors.New(fxerrors.ErrCodeNoConstructor, "no constructors available")
	ErrDepthExceeded            = fxerrors.New(fxerrors.ErrCodeDepthExceeded, "construction depth exceeded")
)

func unresolvable(t reflect.Type) error {
	return fxerrors.NewWithContext(fxerrors.ErrCodeUnresolvableAbstractType,
		"don't know how to instantiate "+t.String(),
		map[string]any{"type": t.String()})
}

func noConstructor(t reflect.Type) error {
	return fxerrors.NewWithContext(fxerrors.ErrCodeNoConstructor,
		"no constructors available for "+t.String(),
		map[string]any{"type": t.String()})
}

func depthExceeded(t reflect.Type, depth, limit int) error {
	return fxerrors.NewWithContext(fxerrors.ErrCodeDepthExceeded,
		fmt.Sprintf("building %s at depth %d exceeds limit %d", t, depth, limit),
		map[string]any{"type": t.String(), "depth": depth, "limit": limit})
}
