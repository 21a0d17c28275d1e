package schedule

import (
	"reflect"
	"testing"
	"time"
)

var base = time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)

// day returns a window covering days [from, to) relative to base.
func day(from, to int) Window {
	return Window{
		Start: base.AddDate(0, 0, from),
		End:   base.AddDate(0, 0, to),
	}
}

func TestWindowDuration(t *testing.T) {
	w := day(0, 2)
	if got := w.Duration(); got != 48*time.Hour {
		t.Errorf("Expected 48h duration, got %v", got)
	}

	empty := Window{Start: base, End: base}
	if got := empty.Duration(); got != 0 {
		t.Errorf("Expected zero duration, got %v", got)
	}
	if empty.IsValid() {
		t.Error("Expected empty window to be invalid")
	}

	inverted := Window{Start: base.AddDate(0, 0, 1), End: base}
	if inverted.IsValid() {
		t.Error("Expected inverted window to be invalid")
	}
}

func TestWindowOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Window
		want bool
	}{
		{"identical", day(0, 2), day(0, 2), true},
		{"partial overlap", day(0, 3), day(2, 5), true},
		{"contained", day(0, 5), day(1, 2), true},
		{"disjoint", day(0, 1), day(3, 4), false},
		{"touching endpoints", day(0, 2), day(2, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Expected Overlaps=%v, got %v", tt.want, got)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Expected symmetric Overlaps=%v, got %v", tt.want, got)
			}
		})
	}
}

func TestWindowIntersect(t *testing.T) {
	t.Run("partial overlap", func(t *testing.T) {
		got, ok := day(0, 3).Intersect(day(2, 5))
		if !ok {
			t.Fatal("Expected overlap")
		}
		if want := day(2, 3); got != want {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("contained window", func(t *testing.T) {
		got, ok := day(0, 5).Intersect(day(1, 2))
		if !ok {
			t.Fatal("Expected overlap")
		}
		if want := day(1, 2); got != want {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("disjoint windows", func(t *testing.T) {
		if _, ok := day(0, 1).Intersect(day(2, 3)); ok {
			t.Error("Expected no intersection for disjoint windows")
		}
	})

	t.Run("touching endpoints", func(t *testing.T) {
		if _, ok := day(0, 2).Intersect(day(2, 4)); ok {
			t.Error("Expected no intersection for touching windows")
		}
	})
}

func TestWindowContains(t *testing.T) {
	outer := day(0, 5)
	if !outer.Contains(day(1, 2)) {
		t.Error("Expected outer to contain inner window")
	}
	if !outer.Contains(day(0, 5)) {
		t.Error("Expected window to contain itself")
	}
	if outer.Contains(day(4, 6)) {
		t.Error("Expected partial overlap to not be contained")
	}
}

func TestComputeSuggestionsEmpty(t *testing.T) {
	t.Run("no families", func(t *testing.T) {
		got := ComputeSuggestions("trip-1", nil, Options{})
		if got == nil {
			t.Fatal("Expected empty slice, got nil")
		}
		if len(got) != 0 {
			t.Errorf("Expected no suggestions, got %d", len(got))
		}
	})

	t.Run("families without windows", func(t *testing.T) {
		fams := []FamilyAvailability{
			{FamilyID: "fam-a"},
			{FamilyID: "fam-b"},
		}
		if got := ComputeSuggestions("trip-1", fams, Options{}); len(got) != 0 {
			t.Errorf("Expected no suggestions, got %d", len(got))
		}
	})

	t.Run("only invalid windows", func(t *testing.T) {
		fams := []FamilyAvailability{
			{FamilyID: "fam-a", Available: []Window{{Start: base.AddDate(0, 0, 2), End: base}}},
		}
		if got := ComputeSuggestions("trip-1", fams, Options{}); len(got) != 0 {
			t.Errorf("Expected no suggestions for invalid windows, got %d", len(got))
		}
	})
}

func TestComputeSuggestionsRanking(t *testing.T) {
	fams := []FamilyAvailability{
		{FamilyID: "fam-a", Available: []Window{day(0, 5)}},
		{FamilyID: "fam-b", Available: []Window{day(2, 5)}},
	}

	got := ComputeSuggestions("trip-1", fams, Options{})
	if len(got) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d", len(got))
	}

	// The day-2 slot covers both families and must rank first.
	first := got[0]
	if !first.Slot.Start.Equal(base.AddDate(0, 0, 2)) {
		t.Errorf("Expected top slot to start on day 2, got %v", first.Slot.Start)
	}
	if first.Score != 2.0 {
		t.Errorf("Expected score 2.0, got %v", first.Score)
	}
	if want := []string{"fam-a", "fam-b"}; !reflect.DeepEqual(first.FullyAvailable, want) {
		t.Errorf("Expected fully available %v, got %v", want, first.FullyAvailable)
	}

	second := got[1]
	if !second.Slot.Start.Equal(base) {
		t.Errorf("Expected second slot to start on day 0, got %v", second.Slot.Start)
	}
	if second.Score != 1.0 {
		t.Errorf("Expected score 1.0, got %v", second.Score)
	}
	if want := []string{"fam-a"}; !reflect.DeepEqual(second.FullyAvailable, want) {
		t.Errorf("Expected fully available %v, got %v", want, second.FullyAvailable)
	}

	for _, s := range got {
		if want := []string{"fam-a", "fam-b"}; !reflect.DeepEqual(s.Inputs, want) {
			t.Errorf("Expected inputs %v, got %v", want, s.Inputs)
		}
		if s.TripID != "trip-1" {
			t.Errorf("Expected trip-1, got %s", s.TripID)
		}
		if s.ID == "" {
			t.Error("Expected non-empty suggestion ID")
		}
	}
}

func TestComputeSuggestionsPreferredBonus(t *testing.T) {
	t.Run("overlap bonus", func(t *testing.T) {
		pref := day(2, 3)
		fams := []FamilyAvailability{
			{FamilyID: "fam-a", Available: []Window{day(0, 10)}, Preferred: &pref},
			{FamilyID: "fam-b", Available: []Window{day(2, 10)}},
		}

		got := ComputeSuggestions("trip-1", fams, Options{})
		if len(got) != 2 {
			t.Fatalf("Expected 2 suggestions, got %d", len(got))
		}

		// Day-2 slot: both families available (2.0) plus fam-a's
		// preferred window overlaps it (0.5).
		if got[0].Score != 2.5 {
			t.Errorf("Expected score 2.5, got %v", got[0].Score)
		}
		// Day-0 slot: only fam-a (1.0), preferred window 24h away (0.25).
		if got[1].Score != 1.25 {
			t.Errorf("Expected score 1.25, got %v", got[1].Score)
		}
	})

	t.Run("nearby bonus", func(t *testing.T) {
		pref := day(1, 2)
		fams := []FamilyAvailability{
			{FamilyID: "fam-a", Available: []Window{day(0, 1)}, Preferred: &pref},
		}

		got := ComputeSuggestions("trip-1", fams, Options{})
		if len(got) != 1 {
			t.Fatalf("Expected 1 suggestion, got %d", len(got))
		}
		if got[0].Score != 1.25 {
			t.Errorf("Expected score 1.25, got %v", got[0].Score)
		}
	})

	t.Run("no bonus beyond 24h", func(t *testing.T) {
		pref := day(3, 4)
		fams := []FamilyAvailability{
			{FamilyID: "fam-a", Available: []Window{day(0, 1)}, Preferred: &pref},
		}

		got := ComputeSuggestions("trip-1", fams, Options{})
		if len(got) != 1 {
			t.Fatalf("Expected 1 suggestion, got %d", len(got))
		}
		if got[0].Score != 1.0 {
			t.Errorf("Expected score 1.0, got %v", got[0].Score)
		}
	})
}

func TestComputeSuggestionsTieBreak(t *testing.T) {
	fams := []FamilyAvailability{
		{FamilyID: "fam-a", Available: []Window{day(5, 6)}},
		{FamilyID: "fam-b", Available: []Window{day(0, 1)}},
	}

	got := ComputeSuggestions("trip-1", fams, Options{})
	if len(got) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d", len(got))
	}
	if got[0].Score != got[1].Score {
		t.Fatalf("Expected equal scores, got %v and %v", got[0].Score, got[1].Score)
	}
	if !got[0].Slot.Start.Equal(base) {
		t.Errorf("Expected earliest slot first on tie, got start %v", got[0].Slot.Start)
	}
}

func TestComputeSuggestionsOptions(t *testing.T) {
	fams := []FamilyAvailability{
		{FamilyID: "fam-a", Available: []Window{
			day(0, 1), day(2, 3), day(4, 5), day(6, 7), day(8, 9),
		}},
	}

	t.Run("default max suggestions", func(t *testing.T) {
		got := ComputeSuggestions("trip-1", fams, Options{})
		if len(got) != 3 {
			t.Errorf("Expected default cap of 3 suggestions, got %d", len(got))
		}
	})

	t.Run("custom max suggestions", func(t *testing.T) {
		got := ComputeSuggestions("trip-1", fams, Options{MaxSuggestions: 2})
		if len(got) != 2 {
			t.Errorf("Expected 2 suggestions, got %d", len(got))
		}
	})

	t.Run("custom slot duration", func(t *testing.T) {
		wide := []FamilyAvailability{
			{FamilyID: "fam-a", Available: []Window{day(0, 10)}},
		}
		got := ComputeSuggestions("trip-1", wide, Options{SlotDuration: 48 * time.Hour})
		if len(got) != 1 {
			t.Fatalf("Expected 1 suggestion, got %d", len(got))
		}
		if want := day(0, 2); got[0].Slot != want {
			t.Errorf("Expected slot %v, got %v", want, got[0].Slot)
		}
	})

	t.Run("default slot duration", func(t *testing.T) {
		wide := []FamilyAvailability{
			{FamilyID: "fam-a", Available: []Window{day(0, 10)}},
		}
		got := ComputeSuggestions("trip-1", wide, Options{})
		if len(got) != 1 {
			t.Fatalf("Expected 1 suggestion, got %d", len(got))
		}
		if got[0].Slot.Duration() != 24*time.Hour {
			t.Errorf("Expected 24h slot, got %v", got[0].Slot.Duration())
		}
	})
}

func TestComputeSuggestionsDeterministic(t *testing.T) {
	prefA := day(3, 4)
	fams := []FamilyAvailability{
		{FamilyID: "fam-c", Available: []Window{day(0, 6), day(8, 12)}, Preferred: &prefA},
		{FamilyID: "fam-a", Available: []Window{day(2, 9)}},
		{FamilyID: "fam-b", Available: []Window{day(3, 5)}},
	}

	first := ComputeSuggestions("trip-1", fams, Options{MaxSuggestions: 10})
	second := ComputeSuggestions("trip-1", fams, Options{MaxSuggestions: 10})

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results across runs, got %v and %v", first, second)
	}
	if len(first) == 0 {
		t.Fatal("Expected suggestions for overlapping windows")
	}
	for i, s := range first {
		if s.ID != second[i].ID {
			t.Errorf("Expected stable IDs, got %s and %s", s.ID, second[i].ID)
		}
	}
}

func TestComputeSuggestionsIDScoping(t *testing.T) {
	fams := []FamilyAvailability{
		{FamilyID: "fam-a", Available: []Window{day(0, 2)}},
	}

	one := ComputeSuggestions("trip-1", fams, Options{})
	two := ComputeSuggestions("trip-2", fams, Options{})
	if len(one) == 0 || len(two) == 0 {
		t.Fatal("Expected suggestions for both trips")
	}
	if one[0].ID == two[0].ID {
		t.Error("Expected different trips to produce different suggestion IDs")
	}
}
