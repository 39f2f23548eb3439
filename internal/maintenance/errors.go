package maintenance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidValue       = errors.New("invalid value")
	ErrOdometerRegression = errors.New("odometer regression")
	ErrFutureDate         = errors.New("future date")
	ErrOutOfOrderDate     = errors.New("out of order date")
	ErrChangeNotDue       = errors.New("oil change not due")
	ErrAlreadyCompleted   = errors.New("service already completed")

	// ErrInsufficientData names a derived metric that cannot be computed.
	// Operations never return it: such metrics are stored as null and the
	// record is still accepted.
	ErrInsufficientData = errors.New("insufficient data")
)

// FieldError scopes a validation failure to one input field. It unwraps to
// one of the sentinel errors above.
type FieldError struct {
	Field   string
	Message string
	Kind    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

func fieldError(kind error, field, format string, args ...any) error {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...), Kind: kind}
}

// CheckCents rejects amounts with more than two decimal places, the precision
// every money and volume column is stored with.
func CheckCents(field string, d decimal.Decimal) error {
	if d.Exponent() < -2 && !d.Equal(d.Truncate(2)) {
		return fieldError(ErrInvalidValue, field, "%s must have at most 2 decimal places, got %s", field, d.String())
	}
	return nil
}
