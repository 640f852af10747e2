//go:build uosc_unchecked

package lut

import "testing"

func TestUncheckedPickIndexesDirectly(t *testing.T) {
	if checkedPick {
		t.Fatal("uosc_unchecked build still bounds-checks")
	}
	opts := []int{10, 20, 30, 40}
	if got, ok := Pick(opts, 0); !ok || got != 10 {
		t.Fatalf("Pick(0) = (%v, %v), want (10, true)", got, ok)
	}
	if got, ok := Pick(opts, 1); !ok || got != 40 {
		t.Fatalf("Pick(1) = (%v, %v), want (40, true)", got, ok)
	}
	if got, ok := Pick([]string{"only"}, 0.7); !ok || got != "only" {
		t.Fatalf("Pick(single, 0.7) = (%q, %v), want (\"only\", true)", got, ok)
	}
}

func TestUncheckedPickTrustsCaller(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("out-of-range pick did not panic")
		}
	}()
	Pick([]int{10, 20, 30, 40}, 1.5)
}
