package golg

import (
	"fmt"
	"reflect"
)

// renderValue converts an argument or return value to its log
// representation. Slices, arrays and maps collapse to a length marker
// when the corresponding option is set, since their full contents are
// often large and rarely interesting at call boundaries.
func renderValue(cfg Config, value any) string {
	if value != nil {
		switch reflect.ValueOf(value).Kind() {
		case reflect.Slice, reflect.Array:
			if cfg.CollapseSlices {
				return fmt.Sprintf("[ len=%d ]", reflect.ValueOf(value).Len())
			}
		case reflect.Map:
			if cfg.CollapseMaps {
				return fmt.Sprintf("{ len=%d }", reflect.ValueOf(value).Len())
			}
		}
	}

	return fmt.Sprintf("%v", value)
}

// typeName returns the runtime type name of value, for return-type
// annotations and exception categories.
func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}
