package ndarray

// Apply computes op(a, other) elementwise with broadcasting.
// other may be an *Array or a Go scalar.
func (a *Array) Apply(op BinaryOp, other any) (*Array, error) {
	rhs, err := a.operand(op.String(), other)
	if err != nil {
		return nil, err
	}
	out, err := a.backend.Binary(op, a.raw, rhs)
	if err != nil {
		return nil, err
	}
	return New(out, a.backend), nil
}

// ApplyUnary computes op(a) elementwise.
func (a *Array) ApplyUnary(op UnaryOp) (*Array, error) {
	out, err := a.backend.Unary(op, a.raw)
	if err != nil {
		return nil, err
	}
	return New(out, a.backend), nil
}

// Compare computes op(a, other) elementwise and returns a bool array.
func (a *Array) Compare(op CompareOp, other any) (*Array, error) {
	rhs, err := a.operand(op.String(), other)
	if err != nil {
		return nil, err
	}
	out, err := a.backend.Compare(op, a.raw, rhs)
	if err != nil {
		return nil, err
	}
	return New(out, a.backend), nil
}

// Add performs element-wise addition with broadcasting.
//
// Example:
//
//	a, _ := ndarray.Ones(ndarray.Shape{3, 1}, ndarray.Float64, backend)
//	b, _ := ndarray.Ones(ndarray.Shape{3, 5}, ndarray.Float64, backend)
//	c, _ := a.Add(b) // Shape: (3, 5)
func (a *Array) Add(other any) (*Array, error) { return a.Apply(Add, other) }

// Sub performs element-wise subtraction with broadcasting.
func (a *Array) Sub(other any) (*Array, error) { return a.Apply(Subtract, other) }

// Mul performs element-wise multiplication with broadcasting.
func (a *Array) Mul(other any) (*Array, error) { return a.Apply(Multiply, other) }

// Div performs true division. Integer operands produce float64.
// Division by zero yields ±Inf or NaN.
func (a *Array) Div(other any) (*Array, error) { return a.Apply(Divide, other) }

// FloorDiv performs floor division. Integer division by zero returns a
// *DivisionByZeroError before any output is produced.
func (a *Array) FloorDiv(other any) (*Array, error) { return a.Apply(FloorDivide, other) }

// Mod computes the remainder with the sign of the divisor (Python semantics).
func (a *Array) Mod(other any) (*Array, error) { return a.Apply(Mod, other) }

// Pow raises a to the power other. Negative integer exponents on integer
// arrays return a *ValueError.
func (a *Array) Pow(other any) (*Array, error) { return a.Apply(Power, other) }

// Minimum returns the element-wise minimum; NaN propagates.
func (a *Array) Minimum(other any) (*Array, error) { return a.Apply(Minimum, other) }

// Maximum returns the element-wise maximum; NaN propagates.
func (a *Array) Maximum(other any) (*Array, error) { return a.Apply(Maximum, other) }

// And computes the element-wise logical AND of bool arrays.
func (a *Array) And(other any) (*Array, error) { return a.Apply(LogicalAnd, other) }

// Or computes the element-wise logical OR of bool arrays.
func (a *Array) Or(other any) (*Array, error) { return a.Apply(LogicalOr, other) }

// Xor computes the element-wise logical XOR of bool arrays.
func (a *Array) Xor(other any) (*Array, error) { return a.Apply(LogicalXor, other) }

// Not computes the element-wise logical NOT.
func (a *Array) Not() (*Array, error) { return a.ApplyUnary(LogicalNot) }

// Neg negates every element.
func (a *Array) Neg() (*Array, error) { return a.ApplyUnary(Negative) }

// Abs computes absolute values.
func (a *Array) Abs() (*Array, error) { return a.ApplyUnary(Absolute) }

// Square computes x*x.
func (a *Array) Square() (*Array, error) { return a.ApplyUnary(Square) }

// Sqrt computes square roots; negative inputs give NaN.
func (a *Array) Sqrt() (*Array, error) { return a.ApplyUnary(Sqrt) }

// Sin computes the sine (radians).
func (a *Array) Sin() (*Array, error) { return a.ApplyUnary(Sin) }

// Cos computes the cosine (radians).
func (a *Array) Cos() (*Array, error) { return a.ApplyUnary(Cos) }

// Tan computes the tangent (radians).
func (a *Array) Tan() (*Array, error) { return a.ApplyUnary(Tan) }

// Exp computes e^x.
func (a *Array) Exp() (*Array, error) { return a.ApplyUnary(Exp) }

// Exp2 computes 2^x.
func (a *Array) Exp2() (*Array, error) { return a.ApplyUnary(Exp2) }

// Log computes the natural logarithm; log(0) is -Inf and negative inputs give NaN.
func (a *Array) Log() (*Array, error) { return a.ApplyUnary(Log) }

// Log2 computes the base-2 logarithm.
func (a *Array) Log2() (*Array, error) { return a.ApplyUnary(Log2) }

// Log10 computes the base-10 logarithm.
func (a *Array) Log10() (*Array, error) { return a.ApplyUnary(Log10) }

// Floor rounds toward negative infinity.
func (a *Array) Floor() (*Array, error) { return a.ApplyUnary(Floor) }

// Ceil rounds toward positive infinity.
func (a *Array) Ceil() (*Array, error) { return a.ApplyUnary(Ceil) }

// Less returns a < other element-wise.
func (a *Array) Less(other any) (*Array, error) { return a.Compare(Less, other) }

// LessEqual returns a <= other element-wise.
func (a *Array) LessEqual(other any) (*Array, error) { return a.Compare(LessEqual, other) }

// Greater returns a > other element-wise.
func (a *Array) Greater(other any) (*Array, error) { return a.Compare(Greater, other) }

// GreaterEqual returns a >= other element-wise.
func (a *Array) GreaterEqual(other any) (*Array, error) { return a.Compare(GreaterEqual, other) }

// Equal returns a == other element-wise.
func (a *Array) Equal(other any) (*Array, error) { return a.Compare(Equal, other) }

// NotEqual returns a != other element-wise.
func (a *Array) NotEqual(other any) (*Array, error) { return a.Compare(NotEqual, other) }

// Lt is an alias for Less.
func (a *Array) Lt(other any) (*Array, error) { return a.Less(other) }

// Le is an alias for LessEqual.
func (a *Array) Le(other any) (*Array, error) { return a.LessEqual(other) }

// Gt is an alias for Greater.
func (a *Array) Gt(other any) (*Array, error) { return a.Greater(other) }

// Ge is an alias for GreaterEqual.
func (a *Array) Ge(other any) (*Array, error) { return a.GreaterEqual(other) }

// Eq is an alias for Equal.
func (a *Array) Eq(other any) (*Array, error) { return a.Equal(other) }

// Ne is an alias for NotEqual.
func (a *Array) Ne(other any) (*Array, error) { return a.NotEqual(other) }
