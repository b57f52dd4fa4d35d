package types

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ------------------------------
// Shared Errors
// ------------------------------

// ErrInvalidInput marks arguments rejected before any request is sent.
var ErrInvalidInput = errors.New("invalid input")

// DefaultTimezone is used when callers pass an empty timezone.
const DefaultTimezone = "UTC"

// DateLayout is the literal YYYY-MM-DD form the service accepts.
const DateLayout = "2006-01-02"

var validate = validator.New()

// ValidateBirthData checks required fields and coordinate ranges.
func ValidateBirthData(b BirthData) error {
	if err := validate.Struct(b); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s fails %q", ErrInvalidInput, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// ValidateDate accepts "" (meaning today) or a YYYY-MM-DD calendar date.
func ValidateDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidInput, date)
	}
	return nil
}

// TimezoneOrDefault returns tz, or DefaultTimezone when tz is empty.
func TimezoneOrDefault(tz string) string {
	if tz == "" {
		return DefaultTimezone
	}
	return tz
}

// ValidateChart ensures the chart carries the fields the horoscope endpoint needs.
func ValidateChart(c *NatalChart) error {
	if c == nil {
		return fmt.Errorf("%w: natal chart is nil", ErrInvalidInput)
	}
	if len(c.Planets) == 0 || len(c.Houses) == 0 {
		return fmt.Errorf("%w: natal chart must contain planets and houses", ErrInvalidInput)
	}
	return nil
}
