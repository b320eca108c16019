package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/langowen/calibrator/internal/entities"
	"github.com/shopspring/decimal"
)

const DefaultDays = 30

var validate = validator.New()

// NormalizeCode trims and upper-cases a currency code and checks it is three ASCII letters.
// The code is not checked against any list of known currencies.
func NormalizeCode(code string) (entities.CurrencyCode, error) {
	c := strings.ToUpper(strings.TrimSpace(code))

	if err := validate.Var(c, "len=3,alpha"); err != nil {
		return "", entities.ValidationError(
			fmt.Sprintf("invalid currency code: %q. Use ISO 4217 codes like USD, EUR, INR", code))
	}

	return entities.CurrencyCode(c), nil
}

func ParseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, entities.ValidationError(fmt.Sprintf("amount must be a number, got %q", s))
	}

	v := d.InexactFloat64()
	if math.IsInf(v, 0) {
		return 0, entities.ValidationError(fmt.Sprintf("amount is out of range, got %q", s))
	}

	return v, nil
}

// ParseDays returns def for blank input and rejects anything that is not an integer in [1, max].
// A max of zero disables the upper bound.
func ParseDays(s string, def, max int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}

	days, err := strconv.Atoi(s)
	if err != nil {
		return 0, entities.ValidationError(fmt.Sprintf("history days must be a whole number, got %q", s))
	}

	if days < 1 {
		return 0, entities.ValidationError("history days must be >= 1")
	}

	if max > 0 && days > max {
		return 0, entities.ValidationError(fmt.Sprintf("history days must be <= %d", max))
	}

	return days, nil
}
