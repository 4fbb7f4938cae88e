package memory

import "fmt"

// setField assigns value to dst when it holds a T.
func setField[T any](dst *T, field string, value interface{}) error {
	v, ok := value.(T)
	if !ok {
		return fmt.Errorf("field %q: unexpected type %T", field, value)
	}
	*dst = v
	return nil
}
