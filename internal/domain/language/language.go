// Package language resolves the response language of a request and holds the
// small localized string tables shared by the other domains.
package language

import "strings"

// Supported language codes.
const (
	Korean   = "ko"
	English  = "en"
	Japanese = "ja"
	Chinese  = "zh"

	Default = Korean
)

var supported = map[string]struct{}{
	Korean:   {},
	English:  {},
	Japanese: {},
	Chinese:  {},
}

// IsSupported reports whether code is one of ko, en, ja, zh.
func IsSupported(code string) bool {
	_, ok := supported[code]
	return ok
}

// Resolve picks the response language from an explicit override header and a
// standard Accept-Language header. Accept-Language entries are considered in
// header order; quality weights are ignored.
func Resolve(override, acceptLanguage string) string {
	if code := primarySubtag(override); IsSupported(code) {
		return code
	}
	for _, entry := range strings.Split(acceptLanguage, ",") {
		tag, _, _ := strings.Cut(entry, ";")
		if code := primarySubtag(tag); IsSupported(code) {
			return code
		}
	}
	return Default
}

// Normalize returns code when supported, otherwise Default.
func Normalize(code string) string {
	if c := primarySubtag(code); IsSupported(c) {
		return c
	}
	return Default
}

func primarySubtag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	return tag
}
