package fat

import "testing"

func TestShortName_BaseAndExtension(t *testing.T) {
	e := &DirEntry{}
	copy(e.Name[:], "README  TXT")
	if got := ShortName(e); got != "README.TXT" {
		t.Fatalf("ShortName = %q, want README.TXT", got)
	}
}

func TestShortName_NoExtension(t *testing.T) {
	e := &DirEntry{}
	copy(e.Name[:], "FOO        ")
	if got := ShortName(e); got != "FOO" {
		t.Fatalf("ShortName = %q, want FOO", got)
	}
}

func TestShortName_NTResLowerCasesBaseIndependently(t *testing.T) {
	e := &DirEntry{NTRes: ntResBaseLower}
	copy(e.Name[:], "FOO     TXT")
	if got := ShortName(e); got != "foo.TXT" {
		t.Fatalf("ShortName = %q, want foo.TXT", got)
	}
}

func TestShortName_NTResLowerCasesExtensionIndependently(t *testing.T) {
	e := &DirEntry{NTRes: ntResExtLower}
	copy(e.Name[:], "FOO     TXT")
	if got := ShortName(e); got != "FOO.txt" {
		t.Fatalf("ShortName = %q, want FOO.txt", got)
	}
}

func TestShortName_NTResLowerCasesBoth(t *testing.T) {
	e := &DirEntry{NTRes: ntResBaseLower | ntResExtLower}
	copy(e.Name[:], "FOO     TXT")
	if got := ShortName(e); got != "foo.txt" {
		t.Fatalf("ShortName = %q, want foo.txt", got)
	}
}
