package sizing

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRecommendWorkedExample(t *testing.T) {
	t.Parallel()

	rec, err := Recommend(Measurements{
		HeightCm:      165,
		WeightKg:      58,
		BustType:      BustMedium,
		HipType:       HipMedium,
		FitPreference: FitComfortable,
	}, "conjunto")
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}

	if rec.Size != SizeM {
		t.Fatalf("expected M, got %s", rec.Size)
	}
	if !almostEqual(rec.Confidence, 0.92) {
		t.Fatalf("expected confidence 0.92, got %v", rec.Confidence)
	}
	if rec.AlternativeSize == nil || *rec.AlternativeSize != SizeG {
		t.Fatalf("expected alternative G, got %v", rec.AlternativeSize)
	}
	if rec.Reason == "" {
		t.Fatalf("expected a rationale string")
	}
}

func TestRecommendBandTable(t *testing.T) {
	t.Parallel()

	// height 170, snug preference; weights chosen to land in each band
	tests := []struct {
		name       string
		weight     float64
		size       Size
		confidence float64
	}{
		{name: "PP", weight: 47, size: SizePP, confidence: 0.85},
		{name: "P", weight: 55, size: SizeP, confidence: 0.90},
		{name: "M", weight: 64, size: SizeM, confidence: 0.92},
		{name: "G", weight: 72, size: SizeG, confidence: 0.88},
		{name: "GG", weight: 82, size: SizeGG, confidence: 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, err := Recommend(Measurements{
				HeightCm:      170,
				WeightKg:      tt.weight,
				BustType:      BustMedium,
				HipType:       HipMedium,
				FitPreference: FitSnug,
			}, "")
			if err != nil {
				t.Fatalf("recommend failed: %v", err)
			}
			if rec.Size != tt.size {
				t.Fatalf("expected %s, got %s", tt.size, rec.Size)
			}
			if !almostEqual(rec.Confidence, tt.confidence) {
				t.Fatalf("expected confidence %v, got %v", tt.confidence, rec.Confidence)
			}
		})
	}
}

func TestRecommendExtremeTypePenalty(t *testing.T) {
	t.Parallel()

	base := Measurements{
		HeightCm:      165,
		WeightKg:      58,
		BustType:      BustMedium,
		HipType:       HipMedium,
		FitPreference: FitComfortable,
	}

	largeBust := base
	largeBust.BustType = BustLarge
	wideHip := base
	wideHip.HipType = HipWide

	for _, m := range []Measurements{largeBust, wideHip} {
		rec, err := Recommend(m, "")
		if err != nil {
			t.Fatalf("recommend failed: %v", err)
		}
		baseRec, _ := Recommend(base, "")
		if rec.Size == baseRec.Size && !almostEqual(rec.Confidence, baseRec.Confidence-extremePenalty) {
			t.Fatalf("expected penalty applied, got %v vs base %v", rec.Confidence, baseRec.Confidence)
		}
		if rec.Confidence < minConfidence || rec.Confidence > maxConfidence {
			t.Fatalf("confidence %v outside clamp range", rec.Confidence)
		}
	}
}

func TestAlternativeSizeBoundaries(t *testing.T) {
	t.Parallel()

	// petite snug profile lands in PP with nowhere smaller to point
	rec, err := Recommend(Measurements{
		HeightCm: 170, WeightKg: 47,
		BustType: BustMedium, HipType: HipMedium, FitPreference: FitSnug,
	}, "")
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if rec.Size != SizePP || rec.AlternativeSize != nil {
		t.Fatalf("expected PP with no alternative, got %s/%v", rec.Size, rec.AlternativeSize)
	}

	// generous comfortable profile lands in GG with nowhere larger
	rec, err = Recommend(Measurements{
		HeightCm: 170, WeightKg: 85,
		BustType: BustMedium, HipType: HipMedium, FitPreference: FitComfortable,
	}, "")
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if rec.Size != SizeGG || rec.AlternativeSize != nil {
		t.Fatalf("expected GG with no alternative, got %s/%v", rec.Size, rec.AlternativeSize)
	}

	// snug points down, comfortable points up
	rec, _ = Recommend(Measurements{
		HeightCm: 170, WeightKg: 55,
		BustType: BustMedium, HipType: HipMedium, FitPreference: FitSnug,
	}, "")
	if rec.Size != SizeP || rec.AlternativeSize == nil || *rec.AlternativeSize != SizePP {
		t.Fatalf("expected P with alternative PP, got %s/%v", rec.Size, rec.AlternativeSize)
	}
}

func TestFitMapCoversAllSizes(t *testing.T) {
	t.Parallel()

	rec, err := Recommend(Measurements{
		HeightCm: 165, WeightKg: 58,
		BustType: BustMedium, HipType: HipMedium, FitPreference: FitComfortable,
	}, "")
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}

	want := map[Size]FitStatus{
		SizePP: FitTight,
		SizeP:  FitTight,
		SizeM:  FitPerfect,
		SizeG:  FitLoose,
		SizeGG: FitLoose,
	}
	for size, status := range want {
		if rec.FitMap[size] != status {
			t.Fatalf("expected %s=%s, got %s", size, status, rec.FitMap[size])
		}
	}
}

func TestRecommendIsDeterministic(t *testing.T) {
	t.Parallel()

	m := Measurements{
		HeightCm: 172, WeightKg: 66,
		BustType: BustLarge, HipType: HipNarrow, FitPreference: FitSnug,
	}
	first, err := Recommend(m, "sutiã")
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, _ := Recommend(m, "sutiã")
		if again.Size != first.Size || !almostEqual(again.Confidence, first.Confidence) {
			t.Fatalf("expected identical output, got %+v vs %+v", again, first)
		}
	}
}

func TestRecommendRejectsInvalidMeasurements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    Measurements
	}{
		{name: "height too low", m: Measurements{HeightCm: 120, WeightKg: 60, BustType: BustMedium, HipType: HipMedium, FitPreference: FitSnug}},
		{name: "weight too high", m: Measurements{HeightCm: 165, WeightKg: 130, BustType: BustMedium, HipType: HipMedium, FitPreference: FitSnug}},
		{name: "bad bust type", m: Measurements{HeightCm: 165, WeightKg: 60, BustType: "huge", HipType: HipMedium, FitPreference: FitSnug}},
		{name: "bad fit preference", m: Measurements{HeightCm: 165, WeightKg: 60, BustType: BustMedium, HipType: HipMedium, FitPreference: "tight"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Recommend(tt.m, ""); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
