package docmap

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// domainRe matches a plausible registrable domain (host.tld).
var domainRe = regexp.MustCompile(`^[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NormalizeURLs validates and canonicalizes raw input strings into a
// deduplicated list of fetchable URLs.
//
// Entries without a scheme get "https://" prepended when they contain a dot;
// accepted schemes are http, https and ftp. Order is preserved and
// duplicates are dropped. If no entry survives validation an EINVALID error
// is returned describing every rejected input.
func NormalizeURLs(raw []string) ([]string, error) {
	valid := make([]string, 0, len(raw))
	seen := make(map[string]struct{})
	var problems []string

	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		if !strings.Contains(s, "://") {
			if !strings.Contains(s, ".") {
				problems = append(problems, fmt.Sprintf("%q: no domain specified", s))
				continue
			}
			s = "https://" + s
		}

		u, err := url.Parse(s)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%q: %v", s, err))
			continue
		}
		if u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "ftp" {
			problems = append(problems, fmt.Sprintf("%q: unsupported protocol %q", s, u.Scheme))
			continue
		}
		if u.Host == "" {
			problems = append(problems, fmt.Sprintf("%q: no domain found", s))
			continue
		}
		if !domainRe.MatchString(u.Host) {
			problems = append(problems, fmt.Sprintf("%q: malformed domain %q", s, u.Host))
			continue
		}

		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		valid = append(valid, s)
	}

	if len(valid) == 0 {
		if len(problems) == 0 {
			return nil, Errorf(EINVALID, "no URLs provided")
		}
		return nil, Errorf(EINVALID, "no valid URLs found: %s", strings.Join(problems, "; "))
	}
	return valid, nil
}
