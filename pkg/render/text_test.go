package render

import "testing"

func TestEscapeXML(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Kitchen", "Kitchen"},
		{"Bed & Bath", "Bed &amp; Bath"},
		{`<"x">`, "&lt;&#34;x&#34;&gt;"},
	}
	for _, tt := range tests {
		if got := EscapeXML(tt.in); got != tt.want {
			t.Errorf("EscapeXML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFontSizeBounds(t *testing.T) {
	if got := FontSize(10, 10, "Living"); got != fontSizeMin {
		t.Errorf("tiny box: got %v, want %v", got, fontSizeMin)
	}
	if got := FontSize(1000, 1000, "A"); got != fontSizeMax {
		t.Errorf("huge box: got %v, want %v", got, fontSizeMax)
	}
	small := FontSize(200, 200, "Living room with a very long name")
	large := FontSize(200, 200, "Hall")
	if small >= large {
		t.Errorf("longer labels should shrink: %v >= %v", small, large)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Hall", 200, 12); got != "Hall" {
		t.Errorf("got %q", got)
	}
	got := Truncate("Master Bedroom", 40, 12)
	if len(got) >= len("Master Bedroom") || got[len(got)-2:] != ".." {
		t.Errorf("got %q, want truncated label", got)
	}
	if got := Truncate("Closet", 1, 12); got != "C.." {
		t.Errorf("minimum width: got %q, want %q", got, "C..")
	}
}
