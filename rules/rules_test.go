package rules

import (
	"testing"

	"github.com/pkg/errors"
)

func TestApplyDecayRule(t *testing.T) {
	tests := []struct {
		name      string
		neighbors int
		age       uint8
		want      uint8
	}{
		{"birth from dead", 3, 0, AgeAlive},
		{"birth from afterglow", 3, 37, AgeAlive},
		{"survival with two", 2, AgeAlive, AgeAlive},
		{"survival with three", 3, AgeAlive, AgeAlive},
		{"two does not revive afterglow", 2, 50, 49},
		{"underpopulation", 1, AgeAlive, AgeAfterglow},
		{"overpopulation", 4, AgeAlive, AgeAfterglow},
		{"isolated", 0, AgeAlive, AgeAfterglow},
		{"fading", 0, 50, 49},
		{"last glow", 5, 1, 0},
		{"stays dead", 0, 0, 0},
		{"crowded dead", 8, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyDecayRule(tt.neighbors, tt.age); got != tt.want {
				t.Fatalf("ApplyDecayRule(%d, %d) = %d, want %d", tt.neighbors, tt.age, got, tt.want)
			}
		})
	}
}

func TestApplyConwayRules(t *testing.T) {
	for neighbors := 0; neighbors <= 8; neighbors++ {
		for _, age := range []uint8{0, 42, AgeAlive} {
			want := uint8(0)
			if neighbors == 3 || (neighbors == 2 && age == AgeAlive) {
				want = AgeAlive
			}
			if got := ApplyConwayRules(neighbors, age); got != want {
				t.Fatalf("ApplyConwayRules(%d, %d) = %d, want %d", neighbors, age, got, want)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	r, err := Lookup(ClassicRuleName)
	if err != nil {
		t.Fatalf("Lookup(classic) error: %v", err)
	}
	if got := r(1, 70); got != 0 {
		t.Fatalf("classic rule kept afterglow: got %d", got)
	}

	r, err = Lookup("")
	if err != nil {
		t.Fatalf("Lookup(\"\") error: %v", err)
	}
	if got := r(0, AgeAlive); got != AgeAfterglow {
		t.Fatalf("default rule is not decay: got %d", got)
	}

	if _, err = Lookup("highlife"); !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("Lookup(highlife) error = %v, want ErrUnknownRule", err)
	}
}
