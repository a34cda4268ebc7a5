package model

// SearchResult is the outcome of one web search. Success is false when the
// provider could not be asked or failed; Text then holds the reason.
type SearchResult struct {
	Success bool   `json:"success"`
	Query   string `json:"query"`
	Text    string `json:"results"`
}

// SearchItem is one hit reduced to what the brief prompt needs
type SearchItem struct {
	Title   string
	Snippet string
	Link    string
}
