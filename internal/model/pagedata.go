package model

// Pager is one page of a paginated collection listing.
type Pager struct {
	Number  int
	Total   int
	Entries []*Entry
	PrevURL string
	NextURL string
}
