package version

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2.1.6.RELEASE", "2.1.6.RELEASE", false},
		{"2.2.0.M3", "2.2.0.M3", false},
		{"2.2.0-RC1", "2.2.0-RC1", false},
		{"2.2.0.BUILD-SNAPSHOT", "2.2.0.BUILD-SNAPSHOT", false},
		{"1.0.0", "1.0.0", false},
		{" 1.5.0.RELEASE ", "1.5.0.RELEASE", false},
		{"1.5", "", true},
		{"latest", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidVersion) {
					t.Errorf("error %v should wrap ErrInvalidVersion", err)
				}
				return
			}
			if got := v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSafeParse(t *testing.T) {
	if SafeParse("nope") != nil {
		t.Error("SafeParse should return nil for invalid input")
	}
	if v := SafeParse("1.5.0.RELEASE"); v == nil || v.Minor != 5 {
		t.Errorf("SafeParse(1.5.0.RELEASE) = %v", v)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.5.0.RELEASE", "1.4.0.RELEASE", 1},
		{"1.4.0.RELEASE", "1.5.0.RELEASE", -1},
		{"2.1.6.RELEASE", "2.1.6", 0},
		{"2.2.0.M1", "2.2.0.M2", -1},
		{"2.2.0.M3", "2.2.0.RC1", -1},
		{"2.2.0.RC2", "2.2.0.BUILD-SNAPSHOT", -1},
		{"2.2.0.BUILD-SNAPSHOT", "2.2.0.RELEASE", -1},
		{"2.1.9.RELEASE", "2.2.0.M1", -1},
		{"10.0.0", "9.9.9", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := Compare(MustParse(tt.a), MustParse(tt.b)); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestQualifierFlags(t *testing.T) {
	if !MustParse("2.1.0").IsRelease() {
		t.Error("2.1.0 should be a release")
	}
	if MustParse("2.2.0.M1").IsRelease() {
		t.Error("2.2.0.M1 should not be a release")
	}
	if !MustParse("2.2.0.BUILD-SNAPSHOT").IsSnapshot() {
		t.Error("2.2.0.BUILD-SNAPSHOT should be a snapshot")
	}
}

func TestMax(t *testing.T) {
	if _, ok := Max(nil); ok {
		t.Error("Max(nil) should report false")
	}
	best, ok := Max([]Version{
		MustParse("2.0.0.RELEASE"),
		MustParse("2.1.0.M1"),
		MustParse("2.0.9.RELEASE"),
	})
	if !ok || best.String() != "2.1.0.M1" {
		t.Errorf("Max = %s, want 2.1.0.M1", best)
	}
}
