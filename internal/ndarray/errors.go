package ndarray

import "fmt"

// ShapeError reports a rectangularity, reshape or size mismatch.
type ShapeError struct {
	Op      string
	Details string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: shape error: %s", e.Op, e.Details)
}

// BroadcastError reports operand shapes that cannot be broadcast together.
type BroadcastError struct {
	Op     string
	Shapes []Shape
	Axis   int // output axis where the sizes conflict
}

// Error implements the error interface.
func (e *BroadcastError) Error() string {
	op := e.Op
	if op == "" {
		op = "broadcast"
	}
	return fmt.Sprintf("%s: shapes %v not compatible for broadcasting (axis %d)", op, e.Shapes, e.Axis)
}

// IndexError reports an out-of-bounds index, a wrong rank, or an invalid index array.
type IndexError struct {
	Op      string
	Details string
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index error: %s", e.Op, e.Details)
}

// DtypeError reports element types that an operation cannot combine or accept.
type DtypeError struct {
	Op      string
	DTypes  []DataType
	Details string
}

// Error implements the error interface.
func (e *DtypeError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: dtype error %v: %s", e.Op, e.DTypes, e.Details)
	}
	return fmt.Sprintf("%s: unsupported dtypes %v", e.Op, e.DTypes)
}

// DivisionByZeroError reports integer division (or modulo) by zero.
// Float division never fails; it yields ±Inf or NaN.
type DivisionByZeroError struct {
	Op string
}

// Error implements the error interface.
func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("%s: integer division by zero", e.Op)
}

// ValueError reports an argument with an invalid value
// (zero slice step, percentile out of range, reduction over an empty lane).
type ValueError struct {
	Op      string
	Details string
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Details)
}

// ShapeErrorf builds a *ShapeError with a formatted message.
func ShapeErrorf(op, format string, args ...any) error {
	return &ShapeError{Op: op, Details: fmt.Sprintf(format, args...)}
}

// IndexErrorf builds an *IndexError with a formatted message.
func IndexErrorf(op, format string, args ...any) error {
	return &IndexError{Op: op, Details: fmt.Sprintf(format, args...)}
}

// ValueErrorf builds a *ValueError with a formatted message.
func ValueErrorf(op, format string, args ...any) error {
	return &ValueError{Op: op, Details: fmt.Sprintf(format, args...)}
}
