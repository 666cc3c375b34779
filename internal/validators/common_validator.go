package validators

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetflow/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their json names so validator output matches the
	// request payload and the service layer's own field maps.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Decimal amounts validate as their float value so numeric tags
	// (gt, min, max) apply to them directly.
	validate.RegisterCustomTypeFunc(decimalToFloat, decimal.Decimal{})

	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("load_type", validateLoadType)
	validate.RegisterValidation("accessorial_type", validateAccessorialType)
	validate.RegisterValidation("detention_location", validateDetentionLocation)
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("load_ref", validateLoadRef)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Fields flattens the errors into a field-to-message map suitable for
// the domain error surface.
func (v ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(v))
	for _, err := range v {
		if _, ok := fields[err.Field]; !ok {
			fields[err.Field] = err.Message
		}
	}
	return fields
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationError := ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			}
			validationErrors = append(validationErrors, validationError)
		}
	}

	return validationErrors
}

// toDomainError converts tag failures into the typed error the handler
// layer maps to a 400.
func toDomainError(errs ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return &models.ValidationError{Fields: errs.Fields()}
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "load_type":
		return "Unknown load type"
	case "accessorial_type":
		return "Unknown accessorial fee type"
	case "detention_location":
		return "Detention location must be pickup or delivery"
	case "phone_number":
		return "Invalid phone number format"
	case "load_ref":
		return "Invalid load reference"
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

func decimalToFloat(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// Custom validation functions
func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let required tag handle empty values
	}
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

func validateLoadType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.LoadType(value).Valid()
}

func validateAccessorialType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.AccessorialType(value).Valid()
}

func validateDetentionLocation(fl validator.FieldLevel) bool {
	value := models.DetentionLocation(fl.Field().String())
	return value == models.DetentionLocationPickup || value == models.DetentionLocationDelivery
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if phone == "" {
		return true
	}

	// E.164 format validation
	phoneRegex := regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	return phoneRegex.MatchString(phone)
}

// Load references are free-form TMS identifiers, not ObjectIDs. Keep
// them to a sane charset so they are safe in URLs and invoice numbers.
var loadRefRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

func validateLoadRef(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return loadRefRegex.MatchString(value)
}
