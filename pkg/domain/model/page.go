package model

import "time"

// PageRef points to a page created in the document store
type PageRef struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Activity is a previously stored SMART Comment of the same client
type Activity struct {
	PageID        string
	URL           string
	Title         string
	ProcessedDate time.Time
	SmartComment  string
}
