package utils

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/orris-inc/backoffice/internal/shared/biztime"
	"github.com/orris-inc/backoffice/internal/shared/errors"
)

// Custom binding tags for billing request fields.
const (
	tagBillingCycle  = "billing_cycle"
	tagDate          = "date"
	tagPaymentMethod = "payment_method"
)

var (
	billingCycles  = []string{"monthly", "quarterly", "half_yearly", "yearly"}
	paymentMethods = []string{"cash", "bank_transfer", "upi", "card", "cheque"}
)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	registerValidators(v)
}

func registerValidators(v *validator.Validate) {
	// Report JSON field names in validation errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(tagBillingCycle, oneOfFold(billingCycles))
	_ = v.RegisterValidation(tagPaymentMethod, oneOfFold(paymentMethods))
	_ = v.RegisterValidation(tagDate, func(fl validator.FieldLevel) bool {
		_, err := biztime.ParseDate(fl.Field().String())
		return err == nil
	})
}

func oneOfFold(values []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(fl.Field().String())), "-", "_")
		for _, v := range values {
			if s == v {
				return true
			}
		}
		return false
	}
}

// BindJSON decodes the request body into obj and converts binding failures
// into a validation AppError listing every failing field.
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return ValidationError(err)
	}
	return nil
}

// BindQuery is BindJSON for query string parameters.
func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		return ValidationError(err)
	}
	return nil
}

// ValidationError turns a binding error into a 400 AppError. Unreadable
// bodies are bad requests; everything else is a validation error.
func ValidationError(err error) error {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldErrorMessage(fe))
		}
		return errors.NewValidationError("Validation failed", strings.Join(msgs, "; "))
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &syntaxErr), stderrors.Is(err, io.EOF), stderrors.Is(err, io.ErrUnexpectedEOF):
		return errors.NewBadRequestError("Malformed JSON body")
	case stderrors.As(err, &typeErr):
		return errors.NewValidationError("Invalid field type", fmt.Sprintf("%s must be %s", typeErr.Field, typeErr.Type))
	}
	return errors.NewValidationError("Invalid request", err.Error())
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case tagBillingCycle:
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(billingCycles, " "))
	case tagPaymentMethod:
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(paymentMethods, " "))
	case tagDate:
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}
