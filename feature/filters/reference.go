package filters

import (
	"regexp"

	"crm-matcher/core/apperror"
)

var (
	pathSegmentRe = regexp.MustCompile(`filters/(\d+)`)
	queryParamRe  = regexp.MustCompile(`[?&]filter_id=(\d+)`)
	digitRunRe    = regexp.MustCompile(`\d+`)
)

// ResolveReference extracts a numeric filter id from a user-supplied
// reference: a full CRM URL, a fragment of one, or a bare id. Resolution
// order is fixed: digits after a "filters/" path segment win, then a
// filter_id query parameter, then the first run of digits anywhere.
func ResolveReference(reference string) (string, error) {
	if m := pathSegmentRe.FindStringSubmatch(reference); m != nil {
		return m[1], nil
	}
	if m := queryParamRe.FindStringSubmatch(reference); m != nil {
		return m[1], nil
	}
	if m := digitRunRe.FindString(reference); m != "" {
		return m, nil
	}
	return "", apperror.New(apperror.KindInvalidReference, "no filter id in %q", reference)
}
