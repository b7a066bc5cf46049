package model

// WindowStat is the outcome of paginating one star window.
type WindowStat struct {
	Window RepositoryQuery
	Pages  int
	Items  int
	// Total is total_count reported by the search API, 0 if unknown.
	Total int
	// Truncated is set when the window holds more matches than ResultCap, so the
	// results beyond the page ceiling were not reachable.
	Truncated bool
}

// Dropped returns how many results of the window were unreachable.
func (x WindowStat) Dropped() int {
	if !x.Truncated || x.Total <= x.Items {
		return 0
	}
	return x.Total - x.Items
}
