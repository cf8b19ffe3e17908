package produce

import "testing"

func TestLabelAt_TotalOverIndices(t *testing.T) {
	t.Parallel()

	cases := []struct {
		idx  int
		want Label
	}{
		{0, "apple"},
		{1, "banana"},
		{33, "tomato"},
		{NumClasses - 1, "watermelon"},
		{NumClasses, Unidentified},
		{-1, Unidentified},
		{1 << 20, Unidentified},
	}
	for _, tc := range cases {
		if got := LabelAt(tc.idx); got != tc.want {
			t.Fatalf("LabelAt(%d) = %q want %q", tc.idx, got, tc.want)
		}
	}
}

func TestRipenessAt_TotalOverIndices(t *testing.T) {
	t.Parallel()

	want := []Ripeness{Ripe, Rotten, Unripe}
	for i, w := range want {
		if got := RipenessAt(i); got != w {
			t.Fatalf("RipenessAt(%d) = %q want %q", i, got, w)
		}
	}
	for _, i := range []int{-5, 3, 99} {
		if got := RipenessAt(i); got != Unknown {
			t.Fatalf("RipenessAt(%d) = %q want Unknown", i, got)
		}
	}
	if NumRipenessClasses != 3 {
		t.Fatalf("ripeness classes = %d want 3", NumRipenessClasses)
	}
}

func TestParseLabel_CaseSensitive(t *testing.T) {
	t.Parallel()

	if l, ok := ParseLabel("sweet potato"); !ok || l != "sweet potato" {
		t.Fatalf("expected sweet potato, got %q %v", l, ok)
	}
	if l, ok := ParseLabel("Banana"); ok || l != Unidentified {
		t.Fatalf("expected miss for Banana, got %q %v", l, ok)
	}
	if _, ok := ParseLabel(string(Unidentified)); ok {
		t.Fatalf("sentinel must not parse as a class")
	}
}

func TestIdentified(t *testing.T) {
	t.Parallel()

	if Unidentified.Identified() {
		t.Fatalf("sentinel reported identified")
	}
	for _, l := range Labels() {
		if !l.Identified() {
			t.Fatalf("%q reported unidentified", l)
		}
	}
}

func TestLabels_ReturnsCopy(t *testing.T) {
	t.Parallel()

	ls := Labels()
	ls[0] = "durian"
	if LabelAt(0) != "apple" {
		t.Fatalf("table mutated through Labels()")
	}
}

func TestParseRipeness(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"Ripe", "Rotten", "Unripe", "Unknown"} {
		if r, ok := ParseRipeness(s); !ok || string(r) != s {
			t.Fatalf("ParseRipeness(%q) = %q %v", s, r, ok)
		}
	}
	if r, ok := ParseRipeness("rotten"); ok || r != Unknown {
		t.Fatalf("lowercase should miss, got %q %v", r, ok)
	}
}
