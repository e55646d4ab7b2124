package option

import (
	"reflect"
	"testing"
)

func TestParseStringList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []ListEdit
	}{
		{
			name:  "bare items replace",
			input: "a,b",
			want:  []ListEdit{Replace("a", "b")},
		},
		{
			name:  "bare items with spaces",
			input: " a , b ",
			want:  []ListEdit{Replace("a", "b")},
		},
		{
			name:  "bracketed replace",
			input: "[a, b]",
			want:  []ListEdit{Replace("a", "b")},
		},
		{
			name:  "empty brackets",
			input: "[]",
			want:  []ListEdit{{Action: ListEditReplace, Items: []string{}}},
		},
		{
			name:  "empty string clears",
			input: "",
			want:  []ListEdit{Replace()},
		},
		{
			name:  "add only",
			input: "+[x]",
			want:  []ListEdit{Add("x")},
		},
		{
			name:  "remove only",
			input: "-[y]",
			want:  []ListEdit{Remove("y")},
		},
		{
			name:  "add then remove",
			input: "+[a,b],-[c]",
			want:  []ListEdit{Add("a", "b"), Remove("c")},
		},
		{
			name:  "remove then add keeps order",
			input: "-[c],+[a]",
			want:  []ListEdit{Remove("c"), Add("a")},
		},
		{
			name:  "quoted items",
			input: `+["a, with comma", 'single']`,
			want:  []ListEdit{Add("a, with comma", "single")},
		},
		{
			name:  "single bare item",
			input: "only",
			want:  []ListEdit{Replace("only")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringList(tt.input)
			if err != nil {
				t.Fatalf("ParseStringList(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseStringList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStringListErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated brackets", "[a, b"},
		{"sign without brackets", "+a"},
		{"trailing content", "[a] extra"},
		{"missing separator", "+[a] -[b]"},
		{"unterminated quote", `["a]`},
		{"trailing comma", "a,"},
		{"bare sign", "+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStringList(tt.input)
			if err == nil {
				t.Fatalf("ParseStringList(%q) = nil error, want error", tt.input)
			}
			if rendered := err.Render("[scope] opt"); rendered == "" {
				t.Error("Render() returned empty string")
			}
		})
	}
}
