package domain

import (
	"path/filepath"
	"testing"
)

func TestDisplayName_PackageFileUsesParentDir(t *testing.T) {
	f := &FileEntry{Path: filepath.Join("match", "packages", "greek-letters", "package.yml")}
	if got := f.DisplayName(); got != "greek-letters (package)" {
		t.Errorf("expected 'greek-letters (package)', got %q", got)
	}
	if !f.IsPackage() {
		t.Error("package.yml should be reported as a package file")
	}
}

func TestDisplayName_RegularFileStripsExtension(t *testing.T) {
	cases := map[string]string{
		filepath.Join("match", "base.yml"):           "base",
		filepath.Join("match", "emails.yaml"):        "emails",
		filepath.Join("match", "sub", "scripts.yml"): "scripts",
	}
	for path, want := range cases {
		f := &FileEntry{Path: path}
		if got := f.DisplayName(); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestHasTrigger_IsCaseSensitiveAndSkipsExcluded(t *testing.T) {
	a := &Match{Trigger: ":hi", Replace: "Hello"}
	b := &Match{Trigger: ":Bye", Replace: "Bye"}
	f := &FileEntry{Matches: []*Match{a, b}}

	if !f.HasTrigger(":hi", nil) {
		t.Error("expected :hi to be found")
	}
	if f.HasTrigger(":HI", nil) {
		t.Error("trigger lookup should be case-sensitive")
	}
	if f.HasTrigger(":hi", a) {
		t.Error("excluded match should not count as a collision")
	}
}

func TestRemove_MissingMatchIsNoOp(t *testing.T) {
	a := &Match{Trigger: ":a"}
	b := &Match{Trigger: ":b"}
	f := &FileEntry{Matches: []*Match{a, b}}

	if !f.Remove(a) {
		t.Error("removing a present match should report true")
	}
	if f.Remove(a) {
		t.Error("removing the same match twice should be a no-op")
	}
	if len(f.Matches) != 1 || f.Matches[0] != b {
		t.Errorf("unexpected matches after removal: %+v", f.Matches)
	}
}
