package pattern

import (
	"errors"
	"testing"
)

func TestNormalizeDomain(t *testing.T) {
	tests := map[string]string{
		"edhec.com":    "edhec.com",
		" @EDHEC.com ": "edhec.com",
		"":             "",
	}
	for in, want := range tests {
		if got := NormalizeDomain(in); got != want {
			t.Errorf("NormalizeDomain(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestQualifyDomain(t *testing.T) {
	tests := map[string]string{
		"gmail":    "gmail.com",
		"@Outlook": "outlook.com",
		"yahoo":    "yahoo.com",
		"Hotmail":  "hotmail.com",
		"orange":   "orange.com",
		"yahoo.fr": "yahoo.fr",
		"hec.fr":   "hec.fr",
		"":         "",
	}
	for in, want := range tests {
		if got := QualifyDomain(in); got != want {
			t.Errorf("QualifyDomain(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCheckDomain(t *testing.T) {
	for _, ok := range []string{"", "edhec.com", " @HEC.fr ", "alumni.hec.fr", "skema.edu", "escpeurope.eu", "foo.blogspot.com"} {
		if err := CheckDomain(ok); err != nil {
			t.Errorf("CheckDomain(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"gmail", "com", "acme.zz", "a..fr", ".hec.fr", "hec.fr.", "hec fr.com", "a@b.fr"} {
		err := CheckDomain(bad)
		var de *DomainError
		if !errors.As(err, &de) {
			t.Errorf("CheckDomain(%q) = %v, want *DomainError", bad, err)
		}
	}
}

func TestJoinAddress(t *testing.T) {
	if got := JoinAddress("zoe", "hec.fr"); got != "zoe@hec.fr" {
		t.Errorf("JoinAddress = %q", got)
	}
	if got := JoinAddress("zoe", ""); got != "zoe" {
		t.Errorf("JoinAddress without domain = %q", got)
	}
}
