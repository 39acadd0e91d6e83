package errors

import "github.com/muhammadheryan/warehouse-ops/constant"

type CustomError struct {
	errType constant.ErrorType
	details []string
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

// Details carries per-line messages for collect-all validations
// (missing SKUs, insufficient-stock lines).
func (c CustomError) Details() []string {
	return c.details
}

func (c CustomError) Type() constant.ErrorType {
	return c.errType
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

func SetCustomErrorWithDetails(errorType constant.ErrorType, details []string) CustomError {
	return CustomError{
		errType: errorType,
		details: details,
	}
}
