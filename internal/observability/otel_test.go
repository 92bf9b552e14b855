package observability

import "testing"

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" a=1, b = two ,broken, =x")
	if len(got) != 2 || got["a"] != "1" || got["b"] != "two" {
		t.Fatalf("ParseHeaders: got %v", got)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("ParseHeaders(empty): expected nil")
	}
}

func TestClampRatio(t *testing.T) {
	if clampRatio(0) != 0.1 || clampRatio(2) != 1 || clampRatio(0.5) != 0.5 {
		t.Fatalf("clampRatio: unexpected values")
	}
}
