package repo

// State aggregates the locally observable facts about one working copy.
// Everything is recomputed from the git metadata on each call; nothing here is
// cached.
type State struct {
	Path           string  `json:"path"`
	Revision       string  `json:"revision"`
	LastCommitDate float64 `json:"last_commit_date"`
	Origin         string  `json:"origin"`
	APIURL         string  `json:"api_url"`
	WebURL         string  `json:"web_url"`
}
