package providers

import "testing"

func TestParseProviderRef(t *testing.T) {
	ref := ParseProviderRef(" Lingua:tr, en ,,de")
	if ref.Name != "lingua" {
		t.Fatalf("unexpected name: %q", ref.Name)
	}
	if len(ref.Options) != 3 || ref.Options[0] != "tr" || ref.Options[2] != "de" {
		t.Fatalf("unexpected options: %+v", ref.Options)
	}
	if got := ParseProviderRef("mock"); got.Name != "mock" || len(got.Options) != 0 {
		t.Fatalf("unexpected parse result: %+v", got)
	}
}
