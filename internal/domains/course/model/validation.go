package model

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// MaxNameLength bounds course names, counted in runes
const MaxNameLength = 255

// MaxCapacity is the largest value the INTEGER capacity column holds
const MaxCapacity = math.MaxInt32

// MaxPrice is the largest value the NUMERIC(10,2) price column holds
var MaxPrice = decimal.RequireFromString("99999999.99")

var (
	errNotDecimal     = validation.NewError("validation_not_decimal", "must be a valid amount")
	errNegative       = validation.NewError("validation_negative", "must be greater than or equal to 0")
	errPriceTooHigh   = validation.NewError("validation_price_too_high", "must be no greater than 99999999.99")
	errCapacityTooBig = validation.NewError("validation_capacity_too_high", "must be no greater than 2147483647")
	errNotInteger     = validation.NewError("validation_not_integer", "must be a whole number")
	errEndBeforeStart = validation.NewError("validation_end_before_start", "must be on or after the start date")
	errBadCategory    = validation.NewError("validation_invalid_category", "must be a valid category id")

	// ErrCategoryDoesNotExist is reported on category_id when the id is well formed but unknown
	ErrCategoryDoesNotExist = validation.NewError("validation_category_not_found", "the selected category does not exist")
)

// Validate checks the raw form and returns validation.Errors keyed by form field
func (f CourseForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&f.Price, validation.Required, validation.By(nonNegativeDecimal)),
		validation.Field(&f.Capacity, validation.Required, validation.By(nonNegativeInteger)),
		validation.Field(&f.StartDate, validation.Required, validation.Date(DateLayout)),
		validation.Field(&f.EndDate, validation.Required, validation.Date(DateLayout), validation.By(notBefore(f.StartDate))),
		validation.Field(&f.CategoryID, validation.By(optionalPositiveID)),
	)
}

// Parse validates the form and converts it to a CourseInput
func (f CourseForm) Parse() (*CourseInput, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Price = strings.TrimSpace(f.Price)
	f.Capacity = strings.TrimSpace(f.Capacity)
	f.StartDate = strings.TrimSpace(f.StartDate)
	f.EndDate = strings.TrimSpace(f.EndDate)
	f.CategoryID = strings.TrimSpace(f.CategoryID)

	if err := f.Validate(); err != nil {
		return nil, err
	}

	// Validate guarantees every parse below succeeds
	price, _ := decimal.NewFromString(f.Price)
	capacity, _ := strconv.Atoi(f.Capacity)
	start, _ := time.Parse(DateLayout, f.StartDate)
	end, _ := time.Parse(DateLayout, f.EndDate)

	in := &CourseInput{
		Name:      f.Name,
		Price:     price.Round(2),
		Capacity:  capacity,
		StartDate: start,
		EndDate:   end,
	}

	if desc := strings.TrimSpace(f.Description); desc != "" {
		in.Description = &desc
	}
	if f.CategoryID != "" {
		id, _ := strconv.ParseInt(f.CategoryID, 10, 64)
		in.CategoryID = &id
	}

	return in, nil
}

// FieldMessages flattens validation.Errors into field → message
func FieldMessages(err error) map[string]string {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil
	}
	out := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		if fieldErr != nil {
			out[field] = fieldErr.Error()
		}
	}
	return out
}

func nonNegativeDecimal(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return errNotDecimal
	}
	if d.IsNegative() {
		return errNegative
	}
	// compared after the same rounding Parse applies
	if d.Round(2).GreaterThan(MaxPrice) {
		return errPriceTooHigh
	}
	return nil
}

func nonNegativeInteger(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	var numErr *strconv.NumError
	switch {
	case errors.As(err, &numErr) && numErr.Err == strconv.ErrRange:
		if strings.HasPrefix(s, "-") {
			return errNegative
		}
		return errCapacityTooBig
	case err != nil:
		return errNotInteger
	case n < 0:
		return errNegative
	case n > MaxCapacity:
		return errCapacityTooBig
	}
	return nil
}

func notBefore(start string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		startDate, err := time.Parse(DateLayout, start)
		if err != nil {
			// start_date reports its own error
			return nil
		}
		endDate, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil
		}
		if endDate.Before(startDate) {
			return errEndBeforeStart
		}
		return nil
	}
}

func optionalPositiveID(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return errBadCategory
	}
	return nil
}
