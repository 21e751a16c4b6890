package export

import "testing"

func TestReplaceVariables(t *testing.T) {
	vars := map[string]string{"director": "David Fincher", "style": "noir"}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "single brace", in: "Directed by {director}", want: "Directed by David Fincher"},
		{name: "double brace", in: "A {{ style }} mood", want: "A noir mood"},
		{name: "repeated", in: "{style}, {style}", want: "noir, noir"},
		{name: "unknown kept", in: "{director} and {producer}", want: "David Fincher and {producer}"},
		{name: "no placeholders", in: "Plain text, no braces.", want: "Plain text, no braces."},
		{name: "unbalanced", in: "{director", want: "{director"},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ReplaceVariables(tc.in, vars)
			if got != tc.want {
				t.Fatalf("ReplaceVariables(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if again := ReplaceVariables(got, vars); again != got {
				t.Fatalf("not idempotent: %q then %q", got, again)
			}
		})
	}
}

func TestReplaceVariables_NilMap(t *testing.T) {
	in := "Keep {director} as is"
	if got := ReplaceVariables(in, nil); got != in {
		t.Fatalf("ReplaceVariables with nil map = %q", got)
	}
}

func TestCreateArtistTag(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Detective Sarah Chen", want: "@detective-sarah-chen"},
		{name: "Zoë O'Brien", want: "@zoe-obrien"},
		{name: "  The   Warehouse!  ", want: "@the-warehouse"},
		{name: "Mr. -- Smith", want: "@mr-smith"},
		{name: "Agent 47", want: "@agent-47"},
		{name: "!!!", want: ""},
		{name: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CreateArtistTag(tc.name); got != tc.want {
				t.Fatalf("CreateArtistTag(%q) = %q, want %q", tc.name, got, tc.want)
			}
		})
	}
}

func TestReplaceVariables_ValueWithPlaceholder(t *testing.T) {
	vars := map[string]string{"director": "{director}!"}

	once := ReplaceVariables("{director}", vars)
	if once != "{director}!" {
		t.Fatalf("first pass = %q, want single substitution", once)
	}
	if twice := ReplaceVariables(once, vars); twice != "{director}!!" {
		t.Errorf("second pass = %q, want %q", twice, "{director}!!")
	}
}
