package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/sugarfunge-integration/internal/utils"
)

// EvmService builds contract calls from a resolved contract and loosely typed arguments
type EvmService interface {
	BuildCall(args BuildCallArgs) (*Call, error)
	// DescribeCall maps argument names to printable values for the submission log
	DescribeCall(call *Call) (map[string]string, error)
}

type evmService struct {
	validator *validator.Validate
}

func NewEvmService() EvmService {
	validator := validator.New()
	return &evmService{validator: validator}
}

// BuildCall checks the method exists, coerces every argument to its ABI type
// and packs the calldata. Nothing is sent.
func (s *evmService) BuildCall(args BuildCallArgs) (*Call, error) {
	err := s.validator.Struct(args)
	if err != nil {
		return nil, err
	}

	method, ok := args.Contract.ABI.Methods[args.Method]
	if !ok {
		return nil, fmt.Errorf("method %s not found on %s", args.Method, args.Contract.Name)
	}

	processedArgs, err := utils.ProcessFunctionArgs(method, args.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s.%s: %w", args.Contract.Name, args.Method, err)
	}

	data, err := args.Contract.ABI.Pack(args.Method, processedArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s.%s: %w", args.Contract.Name, args.Method, err)
	}

	return &Call{
		Contract: args.Contract,
		Method:   args.Method,
		Args:     processedArgs,
		Data:     data,
		Signer:   args.Signer,
	}, nil
}

func (s *evmService) DescribeCall(call *Call) (map[string]string, error) {
	method, ok := call.Contract.ABI.Methods[call.Method]
	if !ok {
		return nil, fmt.Errorf("method %s not found on %s", call.Method, call.Contract.Name)
	}
	return utils.FormatFunctionArgs(method, call.Args)
}
