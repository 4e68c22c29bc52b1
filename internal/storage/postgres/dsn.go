package postgres

import (
	"net/url"
	"regexp"
)

var kvPassword = regexp.MustCompile(`(password=)(\S+)`)

// RedactDSN masks the password of a URL or key/value DSN for logging.
func RedactDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "xxxxx")
		}
		return u.String()
	}
	return kvPassword.ReplaceAllString(dsn, "${1}xxxxx")
}
