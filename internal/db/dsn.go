package db

import (
	"net/url"
	"strings"
)

// NormalizeDSN trims quotes and whitespace from a postgres DSN. URL DSNs are
// returned as-is; key=value lists get their spaces collapsed and a default
// sslmode=disable when none is given.
func NormalizeDSN(raw string) string {
	s := strings.Trim(strings.TrimSpace(raw), "\"'")
	if s == "" || isURLDSN(s) {
		return s
	}
	kv := parseKV(s)
	if len(kv) == 0 {
		return s
	}
	cleaned := strings.Join(strings.Fields(s), " ")
	if _, ok := kv["sslmode"]; !ok {
		cleaned += " sslmode=disable"
	}
	return cleaned
}

// ToURLDSN converts a key=value DSN to postgres:// form. Inputs missing
// host, user or dbname are returned unchanged.
func ToURLDSN(dsn string) string {
	s := NormalizeDSN(dsn)
	if s == "" || isURLDSN(s) {
		return s
	}
	kv := parseKV(s)
	host, user, dbname := kv["host"], kv["user"], kv["dbname"]
	if host == "" || user == "" || dbname == "" {
		return s
	}
	u := &url.URL{Scheme: "postgres", Host: host, Path: "/" + dbname}
	if port := kv["port"]; port != "" {
		u.Host = host + ":" + port
	}
	if pass := kv["password"]; pass != "" {
		u.User = url.UserPassword(user, pass)
	} else {
		u.User = url.User(user)
	}
	if sslmode := kv["sslmode"]; sslmode != "" {
		u.RawQuery = url.Values{"sslmode": {sslmode}}.Encode()
	}
	return u.String()
}

func isURLDSN(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

var dsnKeys = map[string]bool{"host": true, "port": true, "user": true, "password": true, "dbname": true, "sslmode": true}

func parseKV(s string) map[string]string {
	out := map[string]string{}
	for _, part := range strings.Fields(s) {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		k = strings.ToLower(k)
		if dsnKeys[k] {
			out[k] = v
		}
	}
	return out
}
