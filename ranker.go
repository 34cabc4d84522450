package beagle

// Ranker scores a sample group for ordering. Higher scores rank first.
// Implementations must be pure functions of the sample and whatever page
// context they were built with.
type Ranker interface {
	Score(s Sample) float64
}

// RankerFunc adapts an ordinary function to the Ranker interface.
type RankerFunc func(s Sample) float64

// Score calls f(s).
func (f RankerFunc) Score(s Sample) float64 {
	return f(s)
}

// Ensure LengthRanker implements Ranker at compile time.
var _ Ranker = LengthRanker{}

// LengthRanker ranks bigger groups first.
type LengthRanker struct{}

// Score returns the number of values in the sample.
func (LengthRanker) Score(s Sample) float64 {
	return float64(len(s.SampleURL))
}
