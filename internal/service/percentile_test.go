package service

import "testing"

func TestPercentiles_Basic(t *testing.T) {
	scores := map[string]float64{
		"low":  10.0,
		"mid":  50.0,
		"high": 90.0,
		"top":  99.0,
	}

	got := Percentiles(scores)

	// strictly-less / total * 100
	want := map[string]int{
		"low":  0,  // 0/4
		"mid":  25, // 1/4
		"high": 50, // 2/4
		"top":  75, // 3/4
	}

	for id, p := range want {
		if got[id] != p {
			t.Errorf("percentile(%s) = %d, want %d", id, got[id], p)
		}
	}
}

func TestPercentiles_TiesAreIdentical(t *testing.T) {
	scores := map[string]float64{
		"a": 40.0,
		"b": 40.0,
		"c": 40.0,
		"d": 80.0,
	}

	got := Percentiles(scores)

	if got["a"] != got["b"] || got["b"] != got["c"] {
		t.Errorf("tied scores got different percentiles: a=%d b=%d c=%d", got["a"], got["b"], got["c"])
	}
	// No score is strictly below 40, so the tied group sits at 0.
	if got["a"] != 0 {
		t.Errorf("percentile of tied group = %d, want 0", got["a"])
	}
	// Three of four scores are strictly below 80.
	if got["d"] != 75 {
		t.Errorf("percentile(d) = %d, want 75", got["d"])
	}
}

func TestPercentiles_Monotonic(t *testing.T) {
	scores := map[string]float64{
		"u1": 12.5, "u2": 33.0, "u3": 33.0, "u4": 47.9,
		"u5": 61.2, "u6": 61.2, "u7": 88.8, "u8": 95.0,
	}

	got := Percentiles(scores)

	for idA, sA := range scores {
		for idB, sB := range scores {
			if sA > sB && got[idA] < got[idB] {
				t.Errorf("monotonicity violated: score(%s)=%.1f > score(%s)=%.1f but percentile %d < %d",
					idA, sA, idB, sB, got[idA], got[idB])
			}
		}
	}
}

func TestPercentiles_SingleUser(t *testing.T) {
	got := Percentiles(map[string]float64{"only": 42.0})
	if got["only"] != 0 {
		t.Errorf("single user percentile = %d, want 0", got["only"])
	}
}

func TestPercentiles_Empty(t *testing.T) {
	if got := Percentiles(nil); len(got) != 0 {
		t.Errorf("Percentiles(nil) = %v, want empty", got)
	}
}

func TestPercentiles_Bounds(t *testing.T) {
	scores := make(map[string]float64)
	for i := 0; i < 100; i++ {
		scores[string(rune('a'+i%26))+string(rune('0'+i/26))] = float64(i)
	}

	for id, p := range Percentiles(scores) {
		if p < 0 || p > 100 {
			t.Errorf("percentile(%s) = %d outside [0, 100]", id, p)
		}
	}
}
