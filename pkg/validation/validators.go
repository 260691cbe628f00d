package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-applytrack-backend/internal/domain"
)

// Regex patterns
var (
	// Loose "looks like a phone number": optional +, digits with common
	// separators, 7-20 significant characters. Deliberately not E.164;
	// normalization reformats, it does not reject.
	phoneRegex = regexp.MustCompile(`^\+?[0-9(][0-9 ().-]{5,19}$`)

	// Year-month date fields: YYYY-MM
	yearMonthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// New builds a validator configured for this service: JSON field names in
// errors, loose scalar types unwrapped, custom tags registered.
func New() *validator.Validate {
	v := validator.New()

	// Report errors under the wire field name so the form layer can key
	// highlights off the response directly.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Treat FlexNumber/FlexBool as their inner value so numeric tags
	// (gte, lte) apply. A nil value validates as absent.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		n := field.Interface().(domain.FlexNumber)
		if n.Value == nil {
			return nil
		}
		return *n.Value
	}, domain.FlexNumber{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		b := field.Interface().(domain.FlexBool)
		if b.Value == nil {
			return nil
		}
		return *b.Value
	}, domain.FlexBool{})

	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("year_month", YearMonth)
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(strings.TrimSpace(val))
}

// YearMonth validates a YYYY-MM date field
func YearMonth(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return yearMonthRegex.MatchString(val)
}
