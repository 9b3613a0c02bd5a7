package github

// Commit is the newest commit the API reports for a repository. AuthorDate is
// kept as the raw ISO 8601 string; callers convert it with ParseTimestamp.
type Commit struct {
	SHA        string // full commit hash
	AuthorDate string // ISO 8601 UTC author date
}

// Wire shapes of GET /repos/{owner}/{repo}/commits.
type commitEntry struct {
	SHA    string       `json:"sha"`
	Commit commitDetail `json:"commit"`
}

type commitDetail struct {
	Author commitAuthor `json:"author"`
}

type commitAuthor struct {
	Date string `json:"date"`
}
