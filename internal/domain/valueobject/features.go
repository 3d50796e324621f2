package valueobject

import "math"

// ---------------------------------------------------------------------------
// FeatureVector – single-row classifier input
// ---------------------------------------------------------------------------

// FeatureVector is one ordered row of named numeric features as expected by
// the default-probability classifier. Features not filled explicitly carry
// the NaN missing-value marker; the classifier's preprocessing imputes them.
type FeatureVector struct {
	names  []string
	values map[string]float64
}

// NewFeatureVector creates a vector for the given ordered feature names with
// every value initialised to the missing marker.
func NewFeatureVector(names []string) FeatureVector {
	ordered := make([]string, len(names))
	copy(ordered, names)

	values := make(map[string]float64, len(names))
	for _, n := range ordered {
		values[n] = math.NaN()
	}
	return FeatureVector{names: ordered, values: values}
}

// Names returns the feature names in classifier order.
func (v FeatureVector) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Len returns the number of features in the vector.
func (v FeatureVector) Len() int { return len(v.names) }

// Set assigns a value to a named feature. Names outside the configured
// feature list are ignored: the classifier contract is a fixed column set.
func (v FeatureVector) Set(name string, value float64) {
	if _, ok := v.values[name]; ok {
		v.values[name] = value
	}
}

// Value returns the value for a named feature and whether the name belongs
// to the vector at all. Missing features report NaN.
func (v FeatureVector) Value(name string) (float64, bool) {
	val, ok := v.values[name]
	return val, ok
}

// IsMissing reports whether the named feature carries the missing marker.
// Unknown names count as missing.
func (v FeatureVector) IsMissing(name string) bool {
	val, ok := v.values[name]
	return !ok || math.IsNaN(val)
}
