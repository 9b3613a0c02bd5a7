package repo

import (
	"fmt"
	"regexp"
	"strings"
)

// Owner and name are restricted to word characters. GitHub allows hyphens and
// dots in both, but this matcher predates that and callers rely on the
// stricter form; widening it is a behavior change, not a fix.
var (
	sshOriginRe   = regexp.MustCompile(`^git@github\.com:(\w+)/(\w+)\.git$`)
	httpsOriginRe = regexp.MustCompile(`^https://github\.com/(\w+)/(\w+)\.git$`)
)

// Origin identifies a GitHub repository parsed from a clone URL.
type Origin struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// ParseOrigin extracts owner and repository name from a clone URL of the form
// git@github.com:<owner>/<repo>.git or https://github.com/<owner>/<repo>.git.
func ParseOrigin(rawURL string) (Origin, error) {
	for _, re := range []*regexp.Regexp{sshOriginRe, httpsOriginRe} {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return Origin{Owner: m[1], Name: m[2]}, nil
		}
	}

	return Origin{}, fmt.Errorf("%w: %q", ErrUnrecognizedOrigin, rawURL)
}

// WebURL returns the browser-facing repository URL.
func (o Origin) WebURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", o.Owner, o.Name)
}

// CommitsURL returns the API endpoint listing the most recent commit.
func (o Origin) CommitsURL(apiBase string) string {
	return fmt.Sprintf("%s/repos/%s/%s/commits?page=1&per_page=1",
		strings.TrimRight(apiBase, "/"), o.Owner, o.Name)
}
