package utils

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rxtech-lab/sugarfunge-integration/internal/constants"
)

// ProcessFunctionArgs coerces args into the Go types expected by the method's inputs
func ProcessFunctionArgs(method abi.Method, args []any) ([]any, error) {
	if len(args) != len(method.Inputs) {
		return nil, fmt.Errorf("method %s expects %d arguments, got %d", method.Name, len(method.Inputs), len(args))
	}

	processedArgs := make([]any, len(args))
	for i, input := range method.Inputs {
		processedArg, err := processArg(input.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("failed to process argument %d (%s): %w", i, input.Name, err)
		}
		processedArgs[i] = processedArg
	}
	return processedArgs, nil
}

func processArg(argType abi.Type, value any) (any, error) {
	switch argType.T {
	case abi.AddressTy:
		switch v := value.(type) {
		case string:
			if !common.IsHexAddress(v) {
				return nil, fmt.Errorf("invalid address: %s", v)
			}
			return common.HexToAddress(v), nil
		case common.Address:
			return v, nil
		default:
			return nil, fmt.Errorf("unsupported address type: %T", value)
		}

	case abi.UintTy, abi.IntTy:
		bigInt, err := toBigInt(value)
		if err != nil {
			return nil, err
		}
		if argType.T == abi.UintTy && bigInt.Sign() < 0 {
			return nil, fmt.Errorf("negative value %s for %s", bigInt, argType)
		}
		if bigInt.Cmp(constants.MaxUint256) > 0 {
			return nil, fmt.Errorf("value %s overflows %s", bigInt, argType)
		}
		return bigInt, nil

	case abi.BoolTy:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			return strings.ToLower(v) == "true", nil
		default:
			return nil, fmt.Errorf("unsupported bool type: %T", value)
		}

	case abi.StringTy:
		switch v := value.(type) {
		case string:
			return v, nil
		default:
			return nil, fmt.Errorf("unsupported string type: %T", value)
		}

	case abi.BytesTy, abi.FixedBytesTy:
		var raw []byte
		switch v := value.(type) {
		case string:
			decoded, err := hex.DecodeString(strings.TrimPrefix(v, "0x"))
			if err != nil {
				return nil, fmt.Errorf("invalid hex string: %w", err)
			}
			raw = decoded
		case []byte:
			raw = v
		default:
			return nil, fmt.Errorf("unsupported bytes type: %T", value)
		}
		if argType.T == abi.BytesTy {
			return raw, nil
		}
		if len(raw) != argType.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", argType.Size, len(raw))
		}
		fixed := reflect.New(argType.GetType()).Elem()
		reflect.Copy(fixed, reflect.ValueOf(raw))
		return fixed.Interface(), nil

	case abi.ArrayTy, abi.SliceTy:
		elems := reflect.ValueOf(value)
		if elems.Kind() != reflect.Slice && elems.Kind() != reflect.Array {
			return nil, fmt.Errorf("expected array, got %T", value)
		}

		// abi.Pack needs the exact Go type, e.g. []*big.Int for uint256[]
		var out reflect.Value
		if argType.T == abi.SliceTy {
			out = reflect.MakeSlice(argType.GetType(), elems.Len(), elems.Len())
		} else {
			if elems.Len() != argType.Size {
				return nil, fmt.Errorf("expected %d elements, got %d", argType.Size, elems.Len())
			}
			out = reflect.New(argType.GetType()).Elem()
		}

		for i := 0; i < elems.Len(); i++ {
			processed, err := processArg(*argType.Elem, elems.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("failed to process array element %d: %w", i, err)
			}
			out.Index(i).Set(reflect.ValueOf(processed))
		}
		return out.Interface(), nil

	default:
		return nil, fmt.Errorf("unsupported argument type: %v", argType)
	}
}

func toBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case string:
		bigInt, ok := new(big.Int).SetString(v, 0)
		if !ok {
			bigInt, ok = new(big.Int).SetString(v, 16)
			if !ok {
				return nil, fmt.Errorf("invalid integer: %s", v)
			}
		}
		return bigInt, nil
	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("nil integer")
		}
		return v, nil
	case int64:
		return big.NewInt(v), nil
	case int:
		return big.NewInt(int64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case json.Number:
		return toBigInt(v.String())
	case float64:
		if v != float64(int64(v)) {
			return nil, fmt.Errorf("non-integer value: %v", v)
		}
		return big.NewInt(int64(v)), nil
	default:
		return nil, fmt.Errorf("unsupported integer type: %T", value)
	}
}
