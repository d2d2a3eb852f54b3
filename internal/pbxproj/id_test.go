package pbxproj

import "testing"

func TestXIDGeneratorUnique(t *testing.T) {
	var gen XIDGenerator
	seen := make(map[ID]bool)
	for range 10000 {
		id := gen.NewID()
		if !id.Valid() {
			t.Fatalf("invalid id %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestSequenceGenerator(t *testing.T) {
	gen := &SequenceGenerator{Prefix: "abc"}
	if got := gen.NewID(); got != "ABC000000000000000000001" {
		t.Errorf("first id = %s", got)
	}
	if got := gen.NewID(); got != "ABC000000000000000000002" {
		t.Errorf("second id = %s", got)
	}

	var plain SequenceGenerator
	if got := plain.NewID(); got != "000000000000000000000001" || !got.Valid() {
		t.Errorf("default prefix id = %s", got)
	}
}
