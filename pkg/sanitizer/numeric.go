package sanitizer

import (
	"math"
)

// Numeric represents numeric types that support basic arithmetic operations.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Signed represents signed numeric types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Float represents floating-point numeric types.
type Float interface {
	~float32 | ~float64
}

// Clamp constrains a numeric value to be within the specified range [min, max].
func Clamp[T Numeric](value T, min T, max T) T {
	if min > max {
		min, max = max, min
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Abs returns the absolute value of a signed numeric value.
func Abs[T Signed](value T) T {
	if value < 0 {
		return -value
	}
	return value
}

// RoundToDecimalPlaces rounds a floating-point number to the specified number of decimal places.
func RoundToDecimalPlaces[T Float](value T, places int) T {
	if places < 0 {
		places = 0
	}

	multiplier := math.Pow(10, float64(places))
	return T(math.Round(float64(value)*multiplier) / multiplier)
}

// RoundUp rounds a floating-point number up to the nearest integer.
func RoundUp[T Float](value T) T {
	return T(math.Ceil(float64(value)))
}

// RoundDown rounds a floating-point number down to the nearest integer.
func RoundDown[T Float](value T) T {
	return T(math.Floor(float64(value)))
}
