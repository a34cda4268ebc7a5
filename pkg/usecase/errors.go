package usecase

// Context keys for error values
const (
	StageKey = "stage"
	QueryKey = "query"
)
