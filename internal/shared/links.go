package shared

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	videoURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[?&]v=([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`embed/([a-zA-Z0-9_-]{11})`),
	}
	bareVideoID = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

	playlistURLPattern = regexp.MustCompile(`[?&]list=([a-zA-Z0-9_-]+)`)
	barePlaylistID     = regexp.MustCompile(`^(PL|UU|LL|FL|OL)[a-zA-Z0-9_-]+$`)
)

// ParseVideoRef extracts the 11-character video identifier from a watch URL,
// short link, embed URL or bare identifier.
func ParseVideoRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty video reference", ErrInvalidReference)
	}

	for _, pattern := range videoURLPatterns {
		if m := pattern.FindStringSubmatch(ref); m != nil {
			return m[1], nil
		}
	}
	if bareVideoID.MatchString(ref) {
		return ref, nil
	}

	return "", fmt.Errorf("%w: %q is not a recognized video URL or id", ErrInvalidReference, ref)
}

// ParsePlaylistRef extracts the playlist identifier from a playlist URL or
// bare identifier.
func ParsePlaylistRef(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty playlist reference", ErrInvalidReference)
	}

	if m := playlistURLPattern.FindStringSubmatch(ref); m != nil {
		return m[1], nil
	}
	if barePlaylistID.MatchString(ref) {
		return ref, nil
	}

	return "", fmt.Errorf("%w: %q is not a recognized playlist URL or id", ErrInvalidReference, ref)
}
