package series

import (
	"bytes"
	"math"
	"strconv"
)

// Float64 is a float64 that marshals NaN as JSON null. JSON has no NaN
// literal, and undefined statistics (single-sample windows, empty
// seasonal baselines) must survive the trip to the display layer.
type Float64 float64

var nullLiteral = []byte("null")

func (f Float64) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nullLiteral, nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (f *Float64) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, nullLiteral) {
		*f = Float64(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = Float64(v)
	return nil
}

// IsNaN reports whether the value is undefined.
func (f Float64) IsNaN() bool {
	return math.IsNaN(float64(f))
}
