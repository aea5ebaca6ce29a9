package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Exercise is a single logged activity embedded in its owning user
type Exercise struct {
	Description string   `json:"description" bson:"description"`
	Duration    Duration `json:"duration" bson:"duration"`
	Date        string   `json:"date" bson:"date"`
}

// Duration is an exercise duration in minutes. Values that could not be
// coerced to a number are kept as NaN and rendered as JSON null.
type Duration float64

// ParseDuration coerces raw input to a number the way a numeric form field
// is read by the exercise endpoint: surrounding whitespace is ignored, an
// empty value is zero and anything non-numeric is NaN.
func ParseDuration(raw string) Duration {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return Duration(math.Inf(1))
	case "-Infinity":
		return Duration(math.Inf(-1))
	}

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		n, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return Duration(math.NaN())
		}
		return Duration(n)
	}

	// ParseFloat also accepts "inf", "nan" and underscores, none of which
	// count as numbers here.
	if strings.ContainsAny(lower, "_in") {
		return Duration(math.NaN())
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Duration(math.NaN())
	}
	return Duration(f)
}

// IsNumber reports whether the duration holds a finite numeric value
func (d Duration) IsNumber() bool {
	f := float64(d)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	if !d.IsNumber() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(d))
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Duration(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*d = Duration(f)
	return nil
}
