package dgus

import "dgusbridge/protocol"

type integer interface {
	~int8 | ~int16 | ~int32 | ~int | ~uint8 | ~uint16 | ~uint32
}

type number interface {
	integer | ~float32 | ~float64
}

// Cell is a typed binding from a generic VP to a value owned elsewhere.
// Set is nil for read-only cells.
type Cell[T any] struct {
	Get func(env *Env) T
	Set func(env *Env, v T)
}

// Field binds a cell to a field of the UI context.
func Field[T any](field func(ui *UIContext) *T) Cell[T] {
	return Cell[T]{
		Get: func(env *Env) T { return *field(env.UI) },
		Set: func(env *Env, v T) { *field(env.UI) = v },
	}
}

// Value binds a read-only cell.
func Value[T any](get func(env *Env) T) Cell[T] {
	return Cell[T]{Get: get}
}

// IntegerToExtra stores the unsigned integer of the VP's width into c.
func IntegerToExtra[T integer](c Cell[T]) RxHandler {
	return func(env *Env, vp *VP, data []byte) error {
		if c.Set == nil || len(data) < int(vp.Size) {
			return ErrIgnored
		}
		c.Set(env, T(protocol.DecodeUint(data, vp.Width())))
		return nil
	}
}

// StringToExtra copies up to the VP's size of raw bytes into c.
func StringToExtra(c Cell[[]byte]) RxHandler {
	return func(env *Env, vp *VP, data []byte) error {
		dst := c.Get(env)
		n := int(vp.Size)
		if n > len(dst) {
			n = len(dst)
		}
		copied := copy(dst[:n], data)
		clear(dst[copied:n])
		return nil
	}
}

// ExtraToInteger encodes c with the VP's width.
func ExtraToInteger[T integer](c Cell[T]) TxHandler {
	return func(env *Env, vp *VP) ([]byte, error) {
		return protocol.EncodeUint(uint32(c.Get(env)), vp.Width()), nil
	}
}

// ExtraToFixedPoint encodes c scaled by 10^decimals with the VP's width.
func ExtraToFixedPoint[T number](c Cell[T], decimals uint8) TxHandler {
	return func(env *Env, vp *VP) ([]byte, error) {
		return protocol.EncodeFixed(float64(c.Get(env)), vp.Width(), decimals), nil
	}
}

// ExtraToString writes c zero padded to the VP's size.
func ExtraToString(c Cell[string]) TxHandler {
	return func(env *Env, vp *VP) ([]byte, error) {
		return padString(c.Get(env), int(vp.Size)), nil
	}
}

// FixedPointToExtra decodes a signed fixed-point value into c.
func FixedPointToExtra[T number](c Cell[T], decimals uint8) RxHandler {
	return func(env *Env, vp *VP, data []byte) error {
		if c.Set == nil || len(data) < int(vp.Size) {
			return ErrIgnored
		}
		c.Set(env, T(protocol.DecodeFixed(data, vp.Width(), decimals, true)))
		return nil
	}
}
