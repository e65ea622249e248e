package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 42, ToInt(int64(42)))
	assert.Equal(t, 7, ToInt(uint8(7)))
	assert.Equal(t, 3, ToInt(3.9))
	assert.Equal(t, 12, ToInt(" 12 "))
	assert.Equal(t, 5, ToInt([]byte("5")))
	assert.Equal(t, 0, ToInt("abc"))
	assert.Equal(t, 0, ToInt(nil))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "abc", ToString([]byte("abc")))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "3", ToString(float64(3)))
	assert.Equal(t, "true", ToString(true))
	assert.Equal(t, "-8", ToString(int64(-8)))
	assert.Equal(t, "2024-01-02T03:04:05Z", ToString(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(int64(1)))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool([]byte("1")))
	assert.False(t, ToBool(int64(2)))
	assert.False(t, ToBool("yes"))
	assert.False(t, ToBool(nil))
}

func TestNormalizeValue(t *testing.T) {
	name := "bob"
	var nilName *string

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"bytes", []byte("abc"), "abc"},
		{"int", 5, int64(5)},
		{"int32", int32(-5), int64(-5)},
		{"uint8", uint8(200), int64(200)},
		{"uint64 small", uint64(9), int64(9)},
		{"uint64 overflow", uint64(math.MaxUint64), "18446744073709551615"},
		{"float32", float32(0.5), float64(0.5)},
		{"float64", 2.25, 2.25},
		{"bool", false, false},
		{"time", time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC), "2024-05-06T07:08:09Z"},
		{"string pointer", &name, "bob"},
		{"nil string pointer", nilName, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeValue(tt.in))
		})
	}
}

func TestParseScalar(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", nil},
		{"true", true},
		{"False", false},
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"3.5", 3.5},
		{"1e3", float64(1000)},
		{"NaN", "NaN"},
		{"Inf", "Inf"},
		{"ABCDE", "ABCDE"},
		{" 1", " 1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseScalar(tt.in))
		})
	}
}
