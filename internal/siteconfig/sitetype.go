package siteconfig

import (
	"fmt"

	"git.home.luguber.info/inful/siteconf/internal/foundation"
	"git.home.luguber.info/inful/siteconf/internal/foundation/errors"
)

// SiteType selects the theme's layout family ("type").
type SiteType struct {
	value string
}

// SiteTypeBlog is the only site type the reco theme currently defines.
var SiteTypeBlog = SiteType{"blog"}

var siteTypeNormalizer = foundation.NewNormalizer(map[string]SiteType{
	"blog": SiteTypeBlog,
}, SiteTypeBlog)

// String returns the string representation of the site type
func (s SiteType) String() string {
	return s.value
}

// ParseSiteType parses a string into a SiteType.
func ParseSiteType(s string) foundation.Result[SiteType, error] {
	st, err := siteTypeNormalizer.NormalizeWithError(s)
	if err != nil {
		return foundation.Err[SiteType, error](
			errors.ValidationError(fmt.Sprintf("invalid site type: %s", s)).
				WithContext("input", s).
				WithContext("valid_values", siteTypeNormalizer.Names()).
				Build(),
		)
	}
	return foundation.Ok[SiteType, error](st)
}
