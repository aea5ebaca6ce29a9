package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]float64{
		"30":    30,
		" 45 ":  45,
		"1.5":   1.5,
		"":      0,
		"1e2":   100,
		"0x10":  16,
		"-5":    -5,
		"+7":    7,
		"007":   7,
		".5":    0.5,
	}
	for input, want := range cases {
		assert.Equal(t, Duration(want), ParseDuration(input), "input %q", input)
	}
}

func TestParseDuration_NonNumericIsNaN(t *testing.T) {
	for _, input := range []string{"thirty", "12abc", "NaN", "inf", "1_000", "0xZZ"} {
		d := ParseDuration(input)
		assert.True(t, math.IsNaN(float64(d)), "input %q should be NaN", input)
		assert.False(t, d.IsNumber())
	}
}

func TestParseDuration_Infinity(t *testing.T) {
	assert.True(t, math.IsInf(float64(ParseDuration("Infinity")), 1))
	assert.True(t, math.IsInf(float64(ParseDuration("-Infinity")), -1))
}

func TestDuration_JSON(t *testing.T) {
	out, err := json.Marshal(Exercise{Description: "run", Duration: 30, Date: "Sun Jan 01 2023"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"description":"run","duration":30,"date":"Sun Jan 01 2023"}`, string(out))

	out, err = json.Marshal(Duration(math.NaN()))
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	var d Duration
	require.NoError(t, json.Unmarshal([]byte("null"), &d))
	assert.True(t, math.IsNaN(float64(d)))

	require.NoError(t, json.Unmarshal([]byte("12.5"), &d))
	assert.Equal(t, Duration(12.5), d)
}

func TestUser_SummaryOmitsExercises(t *testing.T) {
	user := &User{ID: "abc", Username: "alice", Exercises: []Exercise{{Description: "swim"}}}

	out, err := json.Marshal(user.Summary())
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"abc","username":"alice"}`, string(out))
}
