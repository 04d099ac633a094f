package util

import "testing"

func TestSanitizeTextRemovesNulAndControls(t *testing.T) {
	in := "ab\x00cd\x01\x02\n\txy"
	out := SanitizeText(in)
	if out != "abcd\n\txy" {
		t.Fatalf("unexpected sanitized output: %q", out)
	}
}

func TestSanitizeTextDropsInvalidUTF8(t *testing.T) {
	in := "güzel\xff gün"
	out := SanitizeText(in)
	if out != "güzel gün" {
		t.Fatalf("unexpected sanitized output: %q", out)
	}
}

func TestSanitizeTextKeepsWhitespaceControlsAsSpace(t *testing.T) {
	out := SanitizeText("bir\fiki\vüç\x1cdört\x1fbeş")
	if out != "bir iki üç dört beş" {
		t.Fatalf("unexpected sanitized output: %q", out)
	}
}
