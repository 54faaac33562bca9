package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rxtech-lab/sugarfunge-integration/internal/constants"
)

// FormatFunctionArgs maps each argument name of method to a printable value.
// Values equal to MAX_UINT256 are rendered as the literal "MAX_UINT256".
// Example:
//
//	args = [account, big.NewInt(3), big.NewInt(50), encodedData]
//	output = {"account": "0x...", "id": "3", "amount": "50", "data": "0x..."}
func FormatFunctionArgs(method abi.Method, args []any) (map[string]string, error) {
	if len(args) != len(method.Inputs) {
		return nil, fmt.Errorf("expected %d arguments for %s, got %d", len(method.Inputs), method.Name, len(args))
	}

	result := make(map[string]string, len(args))
	for i, arg := range args {
		argName := method.Inputs[i].Name
		if argName == "" {
			argName = fmt.Sprintf("arg%d", i)
		}
		result[argName] = formatArgValue(arg)
	}
	return result, nil
}

func formatArgValue(arg any) string {
	switch v := arg.(type) {
	case string:
		if v == constants.MaxUint256.String() {
			return "MAX_UINT256"
		}
		return v
	case *big.Int:
		if v.Cmp(constants.MaxUint256) == 0 {
			return "MAX_UINT256"
		}
		return v.String()
	case []*big.Int:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = formatArgValue(n)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case common.Address:
		return v.Hex()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case []byte:
		return fmt.Sprintf("0x%x", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
