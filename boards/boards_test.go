package boards

import "testing"

func TestList(t *testing.T) {
	got := List()
	if len(got) != 3 {
		t.Fatalf("Expected 3 boards, got %d", len(got))
	}

	want := []string{"computer-quote", "code-consult", "ppt-request"}
	for i, slug := range want {
		if got[i].Slug != slug {
			t.Errorf("Expected board %d to be %q, got %q", i, slug, got[i].Slug)
		}
		if got[i].Name == "" {
			t.Errorf("Expected board %q to have a display name", slug)
		}
	}
}

func TestListReturnsCopy(t *testing.T) {
	first := List()
	first[0].Slug = "mutated"

	if List()[0].Slug != "computer-quote" {
		t.Error("Mutating the returned slice leaked into the registry")
	}
}

func TestIsValid(t *testing.T) {
	testCases := []struct {
		slug string
		want bool
	}{
		{"computer-quote", true},
		{"code-consult", true},
		{"ppt-request", true},
		{"not-a-board", false},
		{"", false},
		{"Code-Consult", false},
		{"code-consult ", false},
	}

	for _, tc := range testCases {
		if got := IsValid(tc.slug); got != tc.want {
			t.Errorf("IsValid(%q) = %v, want %v", tc.slug, got, tc.want)
		}
	}
}
