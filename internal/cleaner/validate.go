package cleaner

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// AmountValid reports whether an expense amount is within the realistic
// range of 100 to 50000 inclusive.
func AmountValid(amount int) bool {
	return validate.Var(amount, "gte=100,lte=50000") == nil
}

// PaymentModeValid reports whether the trimmed payment mode is exactly one
// of the expected modes. Matching is case-sensitive; the "Unknown" default
// is not a valid mode.
func PaymentModeValid(mode string) bool {
	return validate.Var(strings.TrimSpace(mode), "oneof=Cash UPI Card NetBanking") == nil
}
