package match

import "testing"

func TestGlob(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"**/*.ts", "src/a/b.ts", true},
		{"**/*.ts", "src/a/b.js", false},
		{"**/*.ts", "app.ts", true},
		{"*.md", "README.md", true},
		{"*.md", "docs/README.md", false},
		{"docs/*.md", "docs/README.md", true},
		{"docs/**", "docs/a/b/c.txt", true},
		{"src/**/*.go", "src/internal/match/glob.go", true},
		{"src/**/*.go", "pkg/match/glob.go", false},
		{"file?.txt", "file1.txt", true},
		{"file?.txt", "file12.txt", false},
		{"[ab].go", "a.go", true},
		{"[ab].go", "c.go", false},
		// Case-sensitive.
		{"*.MD", "readme.md", false},
		// Leading ./ is normalized on both sides.
		{"./src/*.ts", "src/app.ts", true},
		// Malformed patterns match nothing.
		{"[", "anything", false},
	}

	for _, tt := range tests {
		if got := Glob(tt.pattern, tt.path); got != tt.want {
			t.Errorf("Glob(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestAnyGlob(t *testing.T) {
	patterns := []string{"**/*.ts", "*.md"}

	if !AnyGlob(patterns, []string{"src/app.ts", "main.go"}) {
		t.Error("expected at least one path to match")
	}
	if AnyGlob(patterns, []string{"main.go", "src/app.py"}) {
		t.Error("expected no path to match")
	}
	if AnyGlob(patterns, nil) {
		t.Error("expected no match for empty path list")
	}
}
