package errors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// ValidateURL validates a server URL.
// The URL must use http or https and carry a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	for _, r := range rawURL {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidURL, "URL contains invalid characters")
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidURL, "URL must include a host")
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return New(ErrCodeInvalidURL, "URL cannot contain a query or fragment")
	}

	return nil
}

var apiVersionRegex = regexp.MustCompile(`^v[0-9]+$`)

// ValidateAPIVersion validates a REST API version segment such as "v2".
func ValidateAPIVersion(version string) error {
	if version == "" {
		return New(ErrCodeInvalidVersion, "API version cannot be empty")
	}
	if !apiVersionRegex.MatchString(version) {
		return New(ErrCodeInvalidVersion, "invalid API version %q (expected v<number>, e.g. v2)", version)
	}
	return nil
}

var profileNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// ValidateProfileName validates a session profile name.
// Profile names become file names, so they must be a simple basename:
// 1-64 characters, alphanumerics plus '.', '_' and '-', not starting with a dot.
func ValidateProfileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidProfile, "profile name cannot be empty")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidProfile, "profile name cannot contain path traversal sequences (..)")
	}
	if !profileNameRegex.MatchString(name) {
		return New(ErrCodeInvalidProfile, "invalid profile name %q", name)
	}
	return nil
}
