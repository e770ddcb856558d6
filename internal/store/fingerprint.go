package store

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"

	"github.com/amishk599/remotefeed/internal/model"
)

// Fingerprint returns the stable identity of a job: the hex SHA-256 of its
// normalized URL, or of lowercased "title_company" when the URL is blank.
// Distinct postings sharing a title and company collide on the fallback.
func Fingerprint(job model.RawJob) string {
	key := normalizeURL(job.URL)
	if key == "" {
		key = strings.ToLower(strings.TrimSpace(job.Title) + "_" + strings.TrimSpace(job.Company))
	}
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// normalizeURL lowercases scheme and host, drops the fragment and utm_*
// tracking parameters and strips a trailing slash from the path.
// Unparseable input is returned trimmed.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""

	if u.RawQuery != "" {
		q := u.Query()
		for k := range q {
			if strings.HasPrefix(strings.ToLower(k), "utm_") {
				q.Del(k)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}
