package siteconfig

import (
	"fmt"
	"net"
	"net/mail"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/siteconf/internal/foundation"
	"git.home.luguber.info/inful/siteconf/internal/util/sets"
)

// invariantChain holds the rule checks that run after the structural pass.
// Every rule runs; failures accumulate.
var invariantChain = foundation.NewValidatorChain[*loadState](
	validateTitle,
	validateSiteType,
	validateSidebarPrefixes,
	validateLinks,
	validateEmails,
	validateSearch,
	validateNavUniqueness,
	validateMenuSlots,
)

func validateTitle(st *loadState) foundation.ValidationResult {
	if st.title == nil || strings.TrimSpace(st.title.value) != "" {
		return foundation.Valid()
	}
	return foundation.Invalid(foundation.NewInvariantError(st.title.path, "required", "must not be empty"))
}

func validateSiteType(st *loadState) foundation.ValidationResult {
	if st.siteType == nil {
		return foundation.Valid()
	}
	if _, err := ParseSiteType(st.siteType.value).ToTuple(); err != nil {
		return foundation.Invalid(foundation.NewInvariantError(
			st.siteType.path,
			"site_type",
			fmt.Sprintf("unsupported site type %q (supported: %v)", st.siteType.value, siteTypeNormalizer.Names()),
		).WithValue(st.siteType.value))
	}
	return foundation.Valid()
}

func validateSidebarPrefixes(st *loadState) foundation.ValidationResult {
	result := foundation.Valid()
	for _, ref := range st.sidebarKeys {
		if !strings.HasPrefix(ref.value, "/") {
			result = result.Combine(foundation.Invalid(foundation.NewInvariantError(
				ref.path, "prefix", "sidebar section must start with /",
			).WithValue(ref.value)))
		}
	}
	return result
}

func validateLinks(st *loadState) foundation.ValidationResult {
	result := foundation.Valid()
	for _, ref := range st.links {
		if !validLink(ref.value) {
			result = result.Combine(foundation.Invalid(foundation.NewInvariantError(
				ref.path, "url", "must be an absolute URL or a path starting with /",
			).WithValue(ref.value)))
		}
	}
	return result
}

func validateEmails(st *loadState) foundation.ValidationResult {
	result := foundation.Valid()
	for _, ref := range st.emails {
		if _, err := mail.ParseAddress(ref.value); err != nil {
			result = result.Combine(foundation.Invalid(foundation.NewInvariantError(
				ref.path, "email", "must be an e-mail address",
			).WithValue(ref.value)))
		}
	}
	return result
}

func validateSearch(st *loadState) foundation.ValidationResult {
	maxSuggestions := st.searchMaxSuggestions
	if !st.searchEnabled || !maxSuggestions.ok || maxSuggestions.value > 0 {
		return foundation.Valid()
	}
	return foundation.Invalid(foundation.NewInvariantError(
		maxSuggestions.path, "positive", "must be greater than 0 when search is enabled",
	).WithValue(maxSuggestions.value))
}

// validateNavUniqueness rejects top-level links that point at the same target.
// Links are compared in NFC so visually identical paths collide.
func validateNavUniqueness(st *loadState) foundation.ValidationResult {
	result := foundation.Valid()
	seen := make(map[string]string, len(st.topNavLinks))
	for _, ref := range st.topNavLinks {
		key := norm.NFC.String(ref.value)
		if first, dup := seen[key]; dup {
			result = result.Combine(foundation.Invalid(foundation.NewInvariantError(
				ref.path, "duplicate_link", fmt.Sprintf("duplicates %s", first),
			).WithValue(ref.value)))
			continue
		}
		seen[key] = ref.path
	}
	return result
}

// validateMenuSlots checks the generated category and tag menu positions.
// Equal positions leave the menu order undefined, so they are rejected.
func validateMenuSlots(st *loadState) foundation.ValidationResult {
	result := foundation.Valid()
	for _, slot := range []intRef{st.categoryLocation, st.tagLocation} {
		if slot.ok && slot.value < 0 {
			result = result.Combine(foundation.Invalid(foundation.NewInvariantError(
				slot.path, "nav_location", "must be 0 or greater",
			).WithValue(slot.value)))
		}
	}
	cat, tag := st.categoryLocation, st.tagLocation
	if cat.ok && tag.ok && cat.value >= 0 && cat.value == tag.value {
		result = result.Combine(foundation.Invalid(foundation.NewInvariantError(
			tag.path, "nav_location_collision", fmt.Sprintf("same menu position as %s", cat.path),
		).WithValue(tag.value)))
	}
	return result
}

// validLink accepts site-internal paths and absolute URLs with a valid host.
func validLink(s string) bool {
	if s == "" || strings.ContainsFunc(s, unicode.IsSpace) {
		return false
	}
	if strings.HasPrefix(s, "/") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return false
	}
	if u.Host == "" {
		// Only mailto: and tel: may carry an opaque part instead of a host.
		return opaqueSchemes.Has(u.Scheme) && u.Opaque != ""
	}
	return validHost(u.Hostname())
}

var opaqueSchemes = sets.New("mailto", "tel")

func validHost(host string) bool {
	if host == "" {
		return false
	}
	if net.ParseIP(host) != nil {
		return true
	}
	_, err := idna.Lookup.ToASCII(host)
	return err == nil
}
