package fetch

import (
	"net/url"
	"strings"
)

// Platform is the kind of site a project link points at.
type Platform string

// Known platforms.
const (
	PlatformGitHub   Platform = "github"
	PlatformGitLab   Platform = "gitlab"
	PlatformYouTube  Platform = "youtube"
	PlatformFigma    Platform = "figma"
	PlatformBehance  Platform = "behance"
	PlatformDribbble Platform = "dribbble"
	PlatformWebsite  Platform = "website"
)

var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"github.com", PlatformGitHub},
	{"github.io", PlatformGitHub},
	{"gitlab.com", PlatformGitLab},
	{"youtube.com", PlatformYouTube},
	{"youtu.be", PlatformYouTube},
	{"figma.com", PlatformFigma},
	{"behance.net", PlatformBehance},
	{"dribbble.com", PlatformDribbble},
}

// DetectPlatform classifies a link by host. Unknown or unparseable links
// are PlatformWebsite.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformWebsite
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range platformHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.platform
		}
	}
	return PlatformWebsite
}

// needsBrowser reports whether pages on p are usually rendered client-side,
// so a plain fetch rarely carries metadata.
func needsBrowser(p Platform) bool {
	return p == PlatformFigma
}
