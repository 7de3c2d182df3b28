package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

// RegisterCustomValidations installs the project's validation rules on gin's
// binding engine and reports fields by their JSON names.
func RegisterCustomValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form", "uri"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})

		_ = v.RegisterValidation("decimal_gt0", isAmount)
	})
}

// MaxAmount is the exclusive upper bound of a numeric(12,2) money column.
var MaxAmount = decimal.New(1, 10)

// ParseAmount parses a money value that fits a numeric(12,2) column: strictly
// positive, at most two decimal places and below MaxAmount.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, false
	}
	if !d.IsPositive() || !d.Truncate(2).Equal(d) || !d.LessThan(MaxAmount) {
		return decimal.Zero, false
	}
	return d, true
}

// AmountMessage is the client message for a rejected money field.
func AmountMessage(field string) string {
	return fmt.Sprintf("%s must be a positive amount with at most 2 decimal places, below %s", field, MaxAmount.String())
}

func isAmount(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	_, ok := ParseAmount(fl.Field().String())
	return ok
}

func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return "invalid request body"
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", field)
	case "decimal_gt0":
		return AmountMessage(field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"username":     "Username",
		"email":        "Email",
		"password":     "Password",
		"role":         "Role",
		"name":         "Name",
		"description":  "Description",
		"goal_amount":  "Goal amount",
		"status":       "Status",
		"campaign_id":  "Campaign",
		"amount":       "Donation amount",
		"title":        "Event title",
		"date":         "Event date",
		"location":     "Location",
		"volunteer_id": "Volunteer",
		"event_id":     "Event",
		"amount_spent": "Amount spent",
		"id":           "ID",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
