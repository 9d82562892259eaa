package exercise

import "testing"

func testLibrary() []Exercise {
	return DefaultLibrary()
}

func TestFindBestMatchExact(t *testing.T) {
	library := testLibrary()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "exact name", query: "Bench Press", want: "Bench Press"},
		{name: "case insensitive", query: "bench press", want: "Bench Press"},
		{name: "surrounding whitespace", query: "  Squat  ", want: "Squat"},
		{name: "trailing punctuation", query: "Deadlift.", want: "Deadlift"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindBestMatch(tt.query, library)
			if got == nil || got.Name != tt.want {
				t.Errorf("FindBestMatch(%q) = %v, want %q", tt.query, got, tt.want)
			}
		})
	}
}

// TestFindBestMatchExactBeatsFuzzy verifies the pipeline ordering: an exact
// hit must win even when fuzzy stages would also produce candidates.
func TestFindBestMatchExactBeatsFuzzy(t *testing.T) {
	library := []Exercise{
		{Name: "Incline Bench Press", Pattern: PatternHorizontalPush},
		{Name: "Bench Press", Pattern: PatternHorizontalPush},
	}
	got := FindBestMatch("Bench Press", library)
	if got == nil || got.Name != "Bench Press" {
		t.Errorf("FindBestMatch(Bench Press) = %v, want exact entry", got)
	}
}

func TestFindBestMatchContainment(t *testing.T) {
	library := testLibrary()

	// "bench" is contained in several entries; the smallest length gap wins.
	got := FindBestMatch("bench", library)
	if got == nil || got.Name != "Bench Press" {
		t.Errorf("FindBestMatch(bench) = %v, want Bench Press", got)
	}

	// Query longer than the library name also matches by containment.
	got = FindBestMatch("heavy squat session", library)
	if got == nil || got.Name != "Squat" {
		t.Errorf("FindBestMatch(heavy squat session) = %v, want Squat", got)
	}
}

func TestFindBestMatchWordOverlap(t *testing.T) {
	library := testLibrary()

	got := FindBestMatch("press bench flat", library)
	if got == nil || got.Name != "Bench Press" {
		t.Errorf("FindBestMatch(press bench flat) = %v, want Bench Press", got)
	}
}

func TestFindBestMatchPrefixStripping(t *testing.T) {
	library := []Exercise{
		{Name: "Squat", Pattern: PatternSquat},
		{Name: "Curl", Pattern: PatternIsolation},
	}

	got := FindBestMatch("paused squat", library)
	if got == nil || got.Name != "Squat" {
		t.Errorf("FindBestMatch(paused squat) = %v, want Squat", got)
	}

	// Stacked qualifiers strip fully.
	got = FindBestMatch("seated dumbbell curl", library)
	if got == nil || got.Name != "Curl" {
		t.Errorf("FindBestMatch(seated dumbbell curl) = %v, want Curl", got)
	}
}

func TestFindBestMatchSynonyms(t *testing.T) {
	library := testLibrary()

	tests := []struct {
		query string
		want  string
	}{
		{query: "rdl", want: "Romanian Deadlift"},
		{query: "ohp", want: "Overhead Press"},
		{query: "chinup", want: "Pull-Up"},
		{query: "pullup", want: "Pull-Up"},
		{query: "lat pull", want: "Lat Pulldown"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := FindBestMatch(tt.query, library)
			if got == nil || got.Name != tt.want {
				t.Errorf("FindBestMatch(%q) = %v, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestFindBestMatchNoMatch(t *testing.T) {
	library := testLibrary()

	if got := FindBestMatch("underwater basket weaving", library); got != nil {
		t.Errorf("FindBestMatch(nonsense) = %v, want nil", got)
	}
	if got := FindBestMatch("", library); got != nil {
		t.Errorf("FindBestMatch(empty) = %v, want nil", got)
	}
	if got := FindBestMatch("Squat", nil); got != nil {
		t.Errorf("FindBestMatch with empty library = %v, want nil", got)
	}
}
