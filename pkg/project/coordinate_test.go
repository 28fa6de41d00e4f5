package project

import "testing"

func TestCleanMavenCoordinate(t *testing.T) {
	tests := []struct {
		in, delimiter, want string
	}{
		{"a.b.c", ".", "a.b.c"},
		{"my-lib", "-", "my-lib"},
		{"my--lib", "-", "my-lib"},
		{"my lib", "-", "my-lib"},
		{"My  Project", "-", "My-Project"},
		{"com acme", ".", "com.acme"},
		{"com. acme", ".", "com.acme"},
		{"a .-b", "-", "a.b"},
		{"foo@bar#baz", "-", "foo-bar-baz"},
		{"  lib  ", "-", "lib"},
		{"snake_case", "-", "snake_case"},
		{"", "-", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := CleanMavenCoordinate(tt.in, tt.delimiter)
			if got != tt.want {
				t.Errorf("CleanMavenCoordinate(%q, %q) = %q, want %q", tt.in, tt.delimiter, got, tt.want)
			}
			if again := CleanMavenCoordinate(got, tt.delimiter); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}
