package texture

import (
	"errors"
	"math"
	"testing"
)

func TestSizeConversions(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, math.MaxInt32} {
		got, err := i32FromInt(n)
		if err != nil || int(got) != n {
			t.Fatalf("i32FromInt(%d) = %d, %v", n, got, err)
		}
	}
	for _, n := range []int{-1, math.MaxInt32 + 1} {
		if _, err := i32FromInt(n); !errors.Is(err, ErrSizeOverflow) {
			t.Fatalf("i32FromInt(%d): expected ErrSizeOverflow, got %v", n, err)
		}
	}

	if got, err := u32FromInt(math.MaxUint32); err != nil || got != math.MaxUint32 {
		t.Fatalf("u32FromInt(MaxUint32) = %d, %v", got, err)
	}
	if _, err := u32FromInt(-1); !errors.Is(err, ErrSizeOverflow) {
		t.Fatalf("u32FromInt(-1): expected ErrSizeOverflow, got %v", err)
	}
}
