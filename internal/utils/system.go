package utils

import (
	"os"
	"os/user"
	"regexp"
	"strings"
)

// GetUsername returns the current OS account name without any domain prefix.
func GetUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	name := u.Username
	// Windows reports DOMAIN\user.
	if i := strings.LastIndex(name, `\`); i >= 0 {
		name = name[i+1:]
	}
	return name, nil
}

// GetHostname returns the system hostname.
func GetHostname() (string, error) {
	return os.Hostname()
}

var hostInvalidChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// NormalizeHost trims a host identifier and removes characters that cannot
// appear in a TOML bare key, so settings written by the editor on one
// machine match the identifier reported on another.
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)
	// Some platforms report the FQDN; profiles are keyed by the short name.
	if i := strings.Index(host, "."); i > 0 {
		host = host[:i]
	}
	return hostInvalidChars.ReplaceAllString(host, "")
}
