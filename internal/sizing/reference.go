package sizing

import "sort"

// Reference is one catalog model shoppers can compare themselves against.
type Reference struct {
	Name     string  `json:"name"`
	HeightCm float64 `json:"heightCm"`
	WeightKg float64 `json:"weightKg"`
	BustType string  `json:"bustType"`
	HipType  string  `json:"hipType"`
	Size     Size    `json:"size"`
}

// ScoredReference pairs a catalog model with its similarity to the shopper.
type ScoredReference struct {
	Reference
	Similarity float64 `json:"similarity"`
}

// referenceCatalog is the fixed model catalog. Order matters: ties in
// similarity resolve by catalog position.
var referenceCatalog = []Reference{
	{Name: "Ana", HeightCm: 158, WeightKg: 50, BustType: BustSmall, HipType: HipNarrow, Size: SizePP},
	{Name: "Beatriz", HeightCm: 162, WeightKg: 54, BustType: BustMedium, HipType: HipMedium, Size: SizeP},
	{Name: "Camila", HeightCm: 165, WeightKg: 58, BustType: BustMedium, HipType: HipMedium, Size: SizeM},
	{Name: "Daniela", HeightCm: 168, WeightKg: 62, BustType: BustMedium, HipType: HipWide, Size: SizeM},
	{Name: "Elisa", HeightCm: 170, WeightKg: 68, BustType: BustLarge, HipType: HipMedium, Size: SizeG},
	{Name: "Fernanda", HeightCm: 172, WeightKg: 74, BustType: BustLarge, HipType: HipWide, Size: SizeG},
	{Name: "Gabriela", HeightCm: 175, WeightKg: 82, BustType: BustLarge, HipType: HipWide, Size: SizeGG},
	{Name: "Helena", HeightCm: 160, WeightKg: 64, BustType: BustMedium, HipType: HipWide, Size: SizeG},
}

const topReferences = 3

// SimilarReferences returns the three catalog models closest to the shopper,
// most similar first. The sort is stable so equal scores keep catalog order.
func SimilarReferences(m Measurements) ([]ScoredReference, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	scored := make([]ScoredReference, len(referenceCatalog))
	for i, ref := range referenceCatalog {
		scored[i] = ScoredReference{Reference: ref, Similarity: similarity(m, ref)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > topReferences {
		scored = scored[:topReferences]
	}
	return scored, nil
}

func similarity(m Measurements, ref Reference) float64 {
	score := 100.0
	score -= 0.3 * (abs(m.HeightCm-ref.HeightCm) / 2)
	score -= 0.3 * (abs(m.WeightKg-ref.WeightKg) / 2)
	if m.BustType != ref.BustType {
		score -= 20
	}
	if m.HipType != ref.HipType {
		score -= 20
	}
	if score < 0 {
		return 0
	}
	return score
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
