package pattern

import (
	"fmt"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// NormalizeDomain lowercases, trims and drops a leading "@".
func NormalizeDomain(domain string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "@")
}

// QualifyDomain completes a bare provider name with ".com" ("gmail" ->
// "gmail.com"). Domains that already contain a dot are left alone.
func QualifyDomain(domain string) string {
	domain = NormalizeDomain(domain)
	if domain == "" || strings.Contains(domain, ".") {
		return domain
	}
	return domain + ".com"
}

// DomainError reports a configured domain that cannot receive mail.
type DomainError struct {
	Domain string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("invalid domain %q: %s", e.Domain, e.Reason)
}

// CheckDomain validates a configured mail domain. The empty domain is
// accepted (bare local parts). Anything else needs a registrable name
// under a known public suffix: "edhec.com" passes, "com" and "acme.zz" fail.
func CheckDomain(domain string) error {
	d := NormalizeDomain(domain)
	if d == "" {
		return nil
	}
	if strings.ContainsAny(d, " @/\\") || strings.Contains(d, "..") || strings.HasPrefix(d, ".") || strings.HasSuffix(d, ".") {
		return &DomainError{Domain: domain, Reason: "malformed"}
	}
	suffix, icann := publicsuffix.PublicSuffix(d)
	// Unlisted TLDs come back as the last label with icann == false;
	// private suffixes (blogspot.com) always contain a dot.
	if !icann && !strings.Contains(suffix, ".") {
		return &DomainError{Domain: domain, Reason: fmt.Sprintf("unknown suffix %q", suffix)}
	}
	if _, err := publicsuffix.EffectiveTLDPlusOne(d); err != nil {
		return &DomainError{Domain: domain, Reason: "no registrable name below the public suffix"}
	}
	return nil
}

// JoinAddress returns local@domain, or local alone when domain is empty.
func JoinAddress(local, domain string) string {
	if domain == "" {
		return local
	}
	return local + "@" + domain
}
