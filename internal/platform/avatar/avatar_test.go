package avatar

import (
	"bytes"
	"image/png"
	"testing"
)

func TestRender(t *testing.T) {
	r, err := NewRenderer("")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	raw, err := r.Render("ada", "lovelace", "#64b5f6")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Render: output is not PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != Size || b.Dy() != Size {
		t.Fatalf("Render: unexpected bounds %v", b)
	}
}

func TestColorFor(t *testing.T) {
	r, err := NewRenderer("")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if got := r.ColorFor("e57373", "x"); got != "#E57373" {
		t.Fatalf("ColorFor (palette): got %q", got)
	}
	a := r.ColorFor("#000000", "user-1")
	b := r.ColorFor("", "user-1")
	if _, ok := r.colorByHex[a]; !ok || a != b {
		t.Fatalf("ColorFor: expected stable palette pick, got %q and %q", a, b)
	}
}

func TestInitials(t *testing.T) {
	if got := Initials("élise", ""); got != "É?" {
		t.Fatalf("Initials: got %q", got)
	}
	if got := Initials(" bob ", "smith"); got != "BS" {
		t.Fatalf("Initials: got %q", got)
	}
}
