// Package check holds the assertions scenarios make on a weather response.
// Every failed check returns an error wrapping ErrAssertion.
package check

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var ErrAssertion = errors.New("assertion failed")

type Failure struct {
	Check    string
	Expected any
	Actual   any
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: expected %v, got %v", f.Check, f.Expected, f.Actual)
}

func (f *Failure) Unwrap() error {
	return ErrAssertion
}

func Status(got, want int) error {
	if got != want {
		return &Failure{Check: "status code", Expected: want, Actual: got}
	}
	return nil
}

// JSONContentType accepts application/json with any parameters.
func JSONContentType(h http.Header) error {
	ct := h.Get("Content-Type")
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil || mt != "application/json" {
		return &Failure{Check: "content type", Expected: "application/json", Actual: strconv.Quote(ct)}
	}
	return nil
}

func FieldEquals(body []byte, path, want string) error {
	r := gjson.GetBytes(body, path)
	if !r.Exists() {
		return &Failure{Check: path, Expected: strconv.Quote(want), Actual: "missing"}
	}
	if r.String() != want {
		return &Failure{Check: path, Expected: strconv.Quote(want), Actual: strconv.Quote(r.String())}
	}
	return nil
}

// FieldsPresent requires every dotted path to exist with a non-null value.
// All offending paths are reported together.
func FieldsPresent(body []byte, paths ...string) error {
	if !gjson.ValidBytes(body) {
		return &Failure{Check: "fields present", Expected: "JSON object", Actual: "invalid JSON"}
	}
	var missing, null []string
	for _, p := range paths {
		r := gjson.GetBytes(body, p)
		switch {
		case !r.Exists():
			missing = append(missing, p)
		case r.Type == gjson.Null:
			null = append(null, p)
		}
	}
	if len(missing) == 0 && len(null) == 0 {
		return nil
	}
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ", "))
	}
	if len(null) > 0 {
		parts = append(parts, "null "+strings.Join(null, ", "))
	}
	return &Failure{Check: "fields present", Expected: "non-null values", Actual: strings.Join(parts, "; ")}
}

// Range is a numeric interval whose ends are independently open or closed.
type Range struct {
	Min, Max         float64
	MinOpen, MaxOpen bool
}

func Open(min, max float64) Range {
	return Range{Min: min, Max: max, MinOpen: true, MaxOpen: true}
}

func Closed(min, max float64) Range {
	return Range{Min: min, Max: max}
}

func (r Range) Contains(v float64) bool {
	if r.MinOpen && v <= r.Min || !r.MinOpen && v < r.Min {
		return false
	}
	if r.MaxOpen && v >= r.Max || !r.MaxOpen && v > r.Max {
		return false
	}
	return true
}

func (r Range) String() string {
	lo, hi := "[", "]"
	if r.MinOpen {
		lo = "("
	}
	if r.MaxOpen {
		hi = ")"
	}
	return fmt.Sprintf("%s%g, %g%s", lo, r.Min, r.Max, hi)
}

// InRange fails on a nil value as well as on one outside r.
func InRange(name string, v *float64, r Range) error {
	if v == nil {
		return &Failure{Check: name, Expected: "value in " + r.String(), Actual: "null"}
	}
	if !r.Contains(*v) {
		return &Failure{Check: name, Expected: "value in " + r.String(), Actual: *v}
	}
	return nil
}

// Below requires got to be strictly less than limit.
func Below(name string, got, limit time.Duration) error {
	if got >= limit {
		return &Failure{Check: name, Expected: "< " + limit.String(), Actual: got}
	}
	return nil
}
