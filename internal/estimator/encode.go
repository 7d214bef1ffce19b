package estimator

import (
	"strconv"

	"golang.org/x/text/cases"

	"github.com/ekisa-team/homeprice/internal/artifact"
)

// Fixed positions of the numeric features. They must match the column order
// the model was trained with.
const (
	sqftIndex = 0
	bathIndex = 1
	bhkIndex  = 2
)

// fold normalises a location for case-insensitive comparison.
// A Caser is stateful, so a fresh one is used per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// locationIndex maps folded location names to their schema column. Only
// columns from index 3 on are locations; the first occurrence wins.
func locationIndex(columns []string) map[string]int {
	index := make(map[string]int, len(columns))
	for i := artifact.NumericFeatures; i < len(columns); i++ {
		key := fold(columns[i])
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}
	return index
}

// EncodeFeatures builds the model input for one property. The vector has one
// entry per schema column: sqft, bath and bhk at positions 0, 1 and 2, and a
// one-hot location. An unknown location leaves every location column at zero
// and matched is false.
func EncodeFeatures(columns []string, location string, sqft, bhk, bath float64) (x []float64, matched bool) {
	return encode(len(columns), locationIndex(columns), location, sqft, bhk, bath)
}

func encode(n int, index map[string]int, location string, sqft, bhk, bath float64) ([]float64, bool) {
	x := make([]float64, n)
	x[sqftIndex] = sqft
	x[bathIndex] = bath
	x[bhkIndex] = bhk

	i, ok := index[fold(location)]
	if ok {
		x[i] = 1
	}
	return x, ok
}

// Round2 rounds v to two decimal places. The decimal conversion is exact, so
// values are rounded by their true binary value and exact ties go to even.
func Round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
