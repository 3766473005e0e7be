package models

// DefaultPageLimit is the page size used when none is given.
const DefaultPageLimit = 100

// Page selects a window of a listing: Skip rows are skipped, at most Limit returned.
type Page struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// Normalize returns the page with defaults applied.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	return p
}
