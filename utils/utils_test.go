package utils

import "testing"

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		0:        0,
		310:      310,
		0.005:    0.01,
		209.9699: 209.97,
		-1.005:   -1,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Fatalf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID(12)
	if len(id) != 12 {
		t.Fatalf("id length = %d", len(id))
	}
	if GenerateID(12) == id && GenerateID(12) == id {
		t.Fatal("ids are not varying")
	}
}
