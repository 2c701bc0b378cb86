package secrets

import (
	"reflect"
	"testing"
)

func TestLoadTrimsAndDropsEmpties(t *testing.T) {
	r := Load(" a , b ,,c ")

	var got []string
	r.ForEach(func(s string) bool {
		got = append(got, s)
		return true
	})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("entries = %v want %v", got, want)
	}
	if r.Count() != 3 {
		t.Fatalf("Count = %d want 3", r.Count())
	}
}

func TestLoadEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", ",,,", " , , "} {
		r := Load(raw)
		if !r.Empty() {
			t.Fatalf("Load(%q) expected empty registry, got %d entries", raw, r.Count())
		}
	}
}

func TestLoadKeepsDuplicates(t *testing.T) {
	r := Load("dup,dup,other")
	if r.Count() != 3 {
		t.Fatalf("Count = %d want 3", r.Count())
	}
	if !r.Contains("dup") {
		t.Fatal("Contains(dup) = false")
	}
}

func TestContains(t *testing.T) {
	r := Load("alpha,bravo,charlie")

	for _, s := range []string{"alpha", "bravo", "charlie"} {
		if !r.Contains(s) {
			t.Errorf("Contains(%q) = false want true", s)
		}
	}
	for _, s := range []string{"", "alph", "alphax", "ALPHA", "delta"} {
		if r.Contains(s) {
			t.Errorf("Contains(%q) = true want false", s)
		}
	}
}

func TestForEachStopsEarly(t *testing.T) {
	r := Load("a,b,c")
	visited := 0
	r.ForEach(func(string) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Fatalf("visited = %d want 1", visited)
	}
}

func TestPreview(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"supersecretvalue", "supersec..."},
		{"12345678", "12345678..."},
		{"short", "short..."},
	}
	for _, c := range cases {
		if got := Preview(c.in); got != c.want {
			t.Errorf("Preview(%q) = %q want %q", c.in, got, c.want)
		}
	}
}

func TestPreviewsOrder(t *testing.T) {
	r := Load("first-secret,second-secret")
	want := []string{"first-se...", "second-s..."}
	if got := r.Previews(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Previews = %v want %v", got, want)
	}
}
