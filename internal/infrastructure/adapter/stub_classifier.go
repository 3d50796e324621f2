package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

// StubClassifier is a development/test classifier that derives a
// deterministic default probability from the feature vector contents.
// It implements port.Classifier and makes scenarios reproducible without a
// model server.
type StubClassifier struct{}

// NewStubClassifier creates a new stub classifier.
func NewStubClassifier() *StubClassifier {
	return &StubClassifier{}
}

// PredictProba returns a probability in [0.05, 0.45) derived from a hash of
// the present feature values. The band is kept below 0.5 so the stub never
// looks worse than a dead classifier.
func (c *StubClassifier) PredictProba(_ context.Context, features valueobject.FeatureVector) (float64, error) {
	h := sha256.New()
	for _, name := range features.Names() {
		v, _ := features.Value(name)
		if math.IsNaN(v) {
			continue
		}
		fmt.Fprintf(h, "%s=%.6f;", name, v)
	}

	sum := h.Sum(nil)
	num := binary.BigEndian.Uint32(sum[:4])
	return 0.05 + 0.40*float64(num)/float64(math.MaxUint32), nil
}
