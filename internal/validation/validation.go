package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/segyhp/rental-engine/internal/domain"
	customError "github.com/segyhp/rental-engine/pkg/errors"
	"github.com/segyhp/rental-engine/pkg/utils"
	"github.com/shopspring/decimal"
)

// Validator checks request payloads before they reach the services.
// Every failure is returned as a VALIDATION_ERROR business error.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New registers the custom tags used by the domain input types. now decides
// what "today" is for quote validity.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	must(v.RegisterValidation("notblank", validators.NotBlank))
	must(v.RegisterValidation("br_date", func(fl validator.FieldLevel) bool {
		return utils.IsValidBrDate(fl.Field().String())
	}))
	must(v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return utils.IsValidTimeHHmm(fl.Field().String())
	}))
	must(v.RegisterValidation("decimal_gt", decimalRule(func(value, limit decimal.Decimal) bool {
		return value.GreaterThan(limit)
	})))
	must(v.RegisterValidation("decimal_gte", decimalRule(func(value, limit decimal.Decimal) bool {
		return value.GreaterThanOrEqual(limit)
	})))

	return &Validator{validate: v, now: now}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

func decimalRule(compare func(value, limit decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		limit, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return compare(value, limit)
	}
}

// Struct runs the tag rules of any input type.
func (v *Validator) Struct(input any) error {
	if err := v.validate.Struct(input); err != nil {
		return wrap(err)
	}
	return nil
}

// Rental applies the tag rules and then the rules that span fields of a
// rental form. stock maps equipment ids to the units available; equipment
// missing from it is not stock-checked.
func (v *Validator) Rental(input *domain.RentalInput, stock map[int64]int) error {
	if err := v.Struct(input); err != nil {
		return err
	}

	var messages []string

	if utils.CompareBrDateTime(input.StartDate, input.StartTime, input.EndDate, input.EndTime) > 0 {
		messages = append(messages, "end_date: the rental cannot end before it starts")
	}

	if input.IsDelivery() && strings.TrimSpace(input.DeliveryAddress) == "" {
		messages = append(messages, "delivery_address: required for delivery")
	}

	if domain.NormalizeRentalStatus(string(input.Status)) == domain.RentalStatusQuote {
		if msg := v.quoteValidity(input.QuoteValidUntil); msg != "" {
			messages = append(messages, msg)
		}
	}

	requested := make(map[int64]int, len(input.Items))
	for _, item := range input.Items {
		requested[item.EquipmentID] += item.Quantity
	}
	for i, item := range input.Items {
		available, ok := stock[item.EquipmentID]
		if !ok || requested[item.EquipmentID] <= available {
			continue
		}
		messages = append(messages, fmt.Sprintf("items[%d].quantity: only %d unit(s) of equipment %d in stock", i, available, item.EquipmentID))
		delete(requested, item.EquipmentID)
	}

	if !input.Totals().Total.IsPositive() {
		messages = append(messages, "total: must be greater than zero")
	}

	if len(messages) > 0 {
		return customError.WrapValidation(messages...)
	}
	return nil
}

func (v *Validator) quoteValidity(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "quote_valid_until: required for quotes"
	}

	today := v.now()
	date, ok := utils.ParseBrDate(value, today.Location())
	if !ok {
		return "quote_valid_until: must be a DD/MM/YYYY date"
	}
	if date.Before(utils.StartOfDay(today)) {
		return "quote_valid_until: cannot be in the past"
	}
	return ""
}

func wrap(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return customError.WrapValidation(err.Error())
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fieldPath(fe)+": "+describe(fe))
	}
	return customError.WrapValidation(messages...)
}

// fieldPath drops the root struct name: RentalInput.items[0].quantity -> items[0].quantity
func fieldPath(fe validator.FieldError) string {
	namespace := fe.Namespace()
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "required"
	case "br_date":
		return "must be a DD/MM/YYYY date"
	case "hhmm":
		return "must be a HH:MM time"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		return "must have at most " + fe.Param() + " characters"
	case "min":
		return "must have at least " + fe.Param() + " entries"
	case "gt", "decimal_gt":
		return "must be greater than " + fe.Param()
	case "gte", "decimal_gte":
		return "must be at least " + fe.Param()
	case "uri":
		return "must be a valid URI"
	default:
		return "failed " + fe.Tag()
	}
}
