package core

import "fmt"

// DataType selects the precision used to store cell values.
type DataType int

const (
	Float32 DataType = iota
	Float64
)

// String returns the kernel-facing type name ("float" or "double").
func (d DataType) String() string {
	if d == Float64 {
		return "double"
	}
	return "float"
}

// Suffix is the literal suffix used for constants of this type in kernel
// source, e.g. 1.0f for float.
func (d DataType) Suffix() string {
	if d == Float64 {
		return ""
	}
	return "f"
}

// Size reports the bytes used per stored value.
func (d DataType) Size() int {
	if d == Float64 {
		return 8
	}
	return 4
}

// Quantize rounds v to the precision of d.
func (d DataType) Quantize(v float64) float64 {
	if d == Float64 {
		return v
	}
	return float64(float32(v))
}

// ParseDataType maps "float" or "double" to a DataType.
func ParseDataType(s string) (DataType, error) {
	switch s {
	case "float":
		return Float32, nil
	case "double":
		return Float64, nil
	}
	return Float32, fmt.Errorf("%w: data_type %q", ErrUnrecognizedValue, s)
}

// Accuracy trades numerical accuracy against speed for engines that expose a
// choice of stencil.
type Accuracy int

const (
	AccuracyLow Accuracy = iota
	AccuracyMedium
	AccuracyHigh
)

var accuracyNames = [...]string{
	AccuracyLow:    "low",
	AccuracyMedium: "medium",
	AccuracyHigh:   "high",
}

func (a Accuracy) String() string {
	if a >= 0 && int(a) < len(accuracyNames) {
		return accuracyNames[a]
	}
	return fmt.Sprintf("Accuracy(%d)", int(a))
}

// ParseAccuracy maps "low", "medium" or "high" to an Accuracy.
func ParseAccuracy(s string) (Accuracy, error) {
	for i, name := range accuracyNames {
		if name == s {
			return Accuracy(i), nil
		}
	}
	return AccuracyMedium, fmt.Errorf("%w: accuracy %q", ErrUnrecognizedValue, s)
}
