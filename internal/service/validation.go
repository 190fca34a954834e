package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Registration format checked against the normalized number, e.g. UP25GT0880
var vehicleNumberPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{1,2}[A-Z]{1,2}[0-9]{4}$`)

var normalizeReplacer = strings.NewReplacer(" ", "", "-", "")

// NormalizeVehicleNumber strips spaces and hyphens and uppercases the
// registration. The normalized form is used for comparison and uniqueness
// only; the display value keeps whatever formatting was entered.
func NormalizeVehicleNumber(number string) string {
	return strings.ToUpper(normalizeReplacer.Replace(number))
}

// structErrors runs struct-tag validation and translates each violation
// into a human-readable message.
func structErrors(s interface{}) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", snakeCase(fe.Field())))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", snakeCase(fe.Field()), fe.Tag()))
		}
	}
	return msgs
}

func snakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseDate parses a YYYY-MM-DD value, appending to errs on failure.
// Empty input is not an error; required-ness is checked separately.
func parseDate(field, value string, errs *[]string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s must be a valid date in YYYY-MM-DD format", field))
		return nil
	}
	return &t
}

// requirePositive appends an error unless the value is absent or > 0
func requirePositive(field string, value *decimal.Decimal, errs *[]string) {
	if value != nil && !value.IsPositive() {
		*errs = append(*errs, fmt.Sprintf("%s must be greater than zero", field))
	}
}
