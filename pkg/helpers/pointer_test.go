package helpers

import "testing"

func TestValue(t *testing.T) {
	n := 7
	if got := Value(&n); got != 7 {
		t.Fatalf("Value(&7) = %d", got)
	}
	if got := Value[int](nil); got != 0 {
		t.Fatalf("Value(nil) = %d", got)
	}
	if got := Value[string](nil); got != "" {
		t.Fatalf("Value(nil) = %q", got)
	}
}
