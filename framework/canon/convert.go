package canon

import (
	"math/big"
	"reflect"

	"github.com/google/uuid"
)

// From lifts a native Go value into a Value.
//
// Strings become Text, byte slices Bytes, every integer kind Integer,
// float32 and float64 Float, uuid.UUID UniqueID. Slices and arrays of
// any element type become a Sequence, []int{1, 2} and [2]int{1, 2} and
// []interface{}{1, 2} are the same value. Byte arrays other than
// uuid.UUID are sequences of integers, not Bytes. Values which already
// implement Value are returned as they are. Everything else, including
// maps, structs, bools and nil, is an UnsupportedTypeError.
func From(v interface{}) (Value, error) {
	switch t := v.(type) {
	case nil:
		return nil, UnsupportedTypeError{Type: "nil"}
	case Value:
		return t, nil
	case uuid.UUID:
		return UniqueID(t), nil
	case *big.Int:
		if t == nil {
			return nil, UnsupportedTypeError{Type: "*big.Int(nil)"}
		}
		return BigInt(t), nil
	case big.Int:
		return BigInt(&t), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return Text(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(rv.Bytes()), nil
		}
		return fromList(rv)
	case reflect.Array:
		return fromList(rv)
	}
	return nil, UnsupportedTypeError{Type: rv.Type().String()}
}

func fromList(rv reflect.Value) (Value, error) {
	seq := make(Sequence, rv.Len())
	for i := range seq {
		val, err := From(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		seq[i] = val
	}
	return seq, nil
}
