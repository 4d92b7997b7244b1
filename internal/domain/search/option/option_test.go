package option

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/scanexplorer/internal/domain"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		key  string
		want Option
		ok   bool
	}{
		{"bibcode", Bibcode, true},
		{"BibStem", Bibstem, true},
		{" volume ", Volume, true},
		{"page", Page, true},
		{"page_sequence", PageSequence, true},
		{"PageType", PageType, true},
		{"PAGECOLOR", PageColor, true},
		{"project", Project, true},
		{"full", Full, true},
		{"foo", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, ok := Lookup(tc.key)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("Lookup(%q) = %v, %v; want %v, %v", tc.key, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParse_UnknownNamesValidKeys(t *testing.T) {
	_, err := Parse("foo")
	if !errors.Is(err, domain.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
	var uoe *domain.UnknownOptionError
	if !errors.As(err, &uoe) {
		t.Fatalf("expected *UnknownOptionError, got %T", err)
	}
	if uoe.Key != "foo" {
		t.Errorf("Key = %q", uoe.Key)
	}
	if len(uoe.Valid) != Count {
		t.Errorf("expected %d valid keys, got %d", Count, len(uoe.Valid))
	}
}

func TestAllAndNames(t *testing.T) {
	all := All()
	if len(all) != Count {
		t.Fatalf("All() len = %d, want %d", len(all), Count)
	}
	for i, o := range all {
		if !o.IsValid() {
			t.Errorf("option %d invalid", i)
		}
		if o.String() == "" || o.String() == "unknown" {
			t.Errorf("option %d has no name", i)
		}
	}
	if Option(-1).IsValid() || count.IsValid() {
		t.Error("out of range options must be invalid")
	}
}

func TestNormalize_PageType(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Normal", "Normal"},
		{"frontmatter", "FrontMatter"},
		{`"BACKMATTER"`, "BackMatter"},
		{"plate", "Plate"},
	}
	for _, tc := range tests {
		got, err := Normalize(PageType, tc.in)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_PageColor(t *testing.T) {
	got, err := Normalize(PageColor, "grAYsCaLe")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Grayscale" {
		t.Errorf("got %q", got)
	}
}

func TestNormalize_InvalidValueListsChoices(t *testing.T) {
	_, err := Normalize(PageColor, "sepia")
	if !errors.Is(err, domain.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	var ive *domain.InvalidValueError
	if !errors.As(err, &ive) {
		t.Fatalf("expected *InvalidValueError, got %T", err)
	}
	if ive.Value != "sepia" {
		t.Errorf("Value = %q", ive.Value)
	}
	if !strings.Contains(err.Error(), "Grayscale") {
		t.Errorf("error should list choices: %v", err)
	}
}

func TestNormalize_ProjectAlias(t *testing.T) {
	inputs := []string{
		"Microfilm Scanning",
		`"Microfilm Scanning"`,
		"microfilm scanning",
		`"MICROFILM SCANNING"`,
		"historical literature",
		"Historical Literature",
	}
	for _, in := range inputs {
		got, err := Normalize(Project, in)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", in, err)
		}
		if got != "Historical Literature" {
			t.Errorf("Normalize(%q) = %q", in, got)
		}
	}

	got, err := Normalize(Project, "phaedra")
	if err != nil {
		t.Fatal(err)
	}
	if got != "PHaEDRA" {
		t.Errorf("got %q", got)
	}
}

func TestNormalize_FreeValuesUntouched(t *testing.T) {
	got, err := Normalize(Bibcode, " 1988ApJ...333..  ")
	if err != nil {
		t.Fatal(err)
	}
	if got != "1988ApJ...333.." {
		t.Errorf("got %q", got)
	}
}

func TestNormalize_Numeric(t *testing.T) {
	got, err := Normalize(Volume, " 333 ")
	if err != nil || got != "333" {
		t.Fatalf("Normalize(volume, 333) = %q, %v", got, err)
	}
	for _, tc := range []struct {
		o     Option
		value string
	}{
		{Volume, "abc"},
		{Volume, "3a"},
		{Volume, "-1"},
		{PageSequence, "1.5"},
		{PageSequence, "x"},
	} {
		_, err := Normalize(tc.o, tc.value)
		if !errors.Is(err, domain.ErrInvalidValue) {
			t.Errorf("Normalize(%s, %q) err = %v, want ErrInvalidValue", tc.o, tc.value, err)
			continue
		}
		if !strings.Contains(err.Error(), "whole number") {
			t.Errorf("error should say what is expected: %v", err)
		}
	}
}

func TestValidate(t *testing.T) {
	raw := map[string]string{"pagecolor": "bw", "volume": "6"}
	f, err := Validate(raw)
	if err != nil {
		t.Fatal(err)
	}
	if f[PageColor] != "BW" || f[Volume] != "6" {
		t.Errorf("unexpected filters: %v", f)
	}
	if raw["pagecolor"] != "bw" {
		t.Error("Validate must not modify its input")
	}
	opts := f.Options()
	if len(opts) != 2 || opts[0] != Volume || opts[1] != PageColor {
		t.Errorf("Options() = %v", opts)
	}
}

func TestValidate_UnknownKey(t *testing.T) {
	_, err := Validate(map[string]string{"foo": "bar", "volume": "1"})
	if !errors.Is(err, domain.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
}
