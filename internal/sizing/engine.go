package sizing

import "fmt"

const (
	minConfidence = 0.70
	maxConfidence = 0.95

	// confidence drops when body type sits at an extreme of the bands
	extremePenalty = 0.05
)

type band struct {
	size       Size
	upperBound float64
	confidence float64
	reason     string
}

// bands are keyed by sizeScore with exclusive upper bounds; the last band
// catches everything above.
var bands = []band{
	{size: SizePP, upperBound: 18, confidence: 0.85, reason: "a petite profile sits best in PP"},
	{size: SizeP, upperBound: 21, confidence: 0.90, reason: "a slim profile sits best in P"},
	{size: SizeM, upperBound: 24, confidence: 0.92, reason: "a balanced profile sits best in M"},
	{size: SizeG, upperBound: 27, confidence: 0.88, reason: "a fuller profile sits best in G"},
	{size: SizeGG, upperBound: 0, confidence: 0.85, reason: "a generous profile sits best in GG"},
}

var bustAdjustments = map[string]float64{
	BustSmall:  -1,
	BustMedium: 0,
	BustLarge:  1,
}

var hipAdjustments = map[string]float64{
	HipNarrow: -0.5,
	HipMedium: 0,
	HipWide:   0.5,
}

var fitAdjustments = map[string]float64{
	FitSnug:        -0.5,
	FitComfortable: 0.5,
}

// Recommend maps a measurement profile to a size band. It is pure and
// deterministic so it can double as the fallback when the external advisor
// is unavailable.
func Recommend(m Measurements, category string) (Recommendation, error) {
	if err := m.Validate(); err != nil {
		return Recommendation{}, err
	}

	heightM := m.HeightCm / 100
	bmi := m.WeightKg / (heightM * heightM)
	score := bmi + bustAdjustments[m.BustType] + hipAdjustments[m.HipType] + fitAdjustments[m.FitPreference]

	idx := len(bands) - 1
	for i, b := range bands[:len(bands)-1] {
		if score < b.upperBound {
			idx = i
			break
		}
	}
	selected := bands[idx]

	confidence := selected.confidence
	if m.BustType == BustLarge || m.HipType == HipWide {
		confidence -= extremePenalty
	}
	confidence = clamp(confidence, minConfidence, maxConfidence)

	reason := selected.reason
	if category != "" {
		reason = fmt.Sprintf("%s for %s", selected.reason, category)
	}

	return Recommendation{
		Size:            selected.size,
		Confidence:      confidence,
		Reason:          reason,
		AlternativeSize: alternativeSize(idx, m.FitPreference),
		FitMap:          fitMap(idx),
	}, nil
}

// alternativeSize points opposite the stated preference: a comfortable
// preference offers the next band up, a snug one the next band down. At the
// boundary there is nothing to offer.
func alternativeSize(idx int, fitPreference string) *Size {
	alt := idx
	switch fitPreference {
	case FitComfortable:
		alt++
	case FitSnug:
		alt--
	}
	if alt == idx || alt < 0 || alt >= len(sizeOrder) {
		return nil
	}
	size := sizeOrder[alt]
	return &size
}

func fitMap(idx int) map[Size]FitStatus {
	out := make(map[Size]FitStatus, len(sizeOrder))
	for i, size := range sizeOrder {
		switch {
		case i < idx:
			out[size] = FitTight
		case i == idx:
			out[size] = FitPerfect
		default:
			out[size] = FitLoose
		}
	}
	return out
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
