package domain

// Person is a participant node in the bipartite graph.
type Person struct {
	ID      string
	Name    string
	Birth   *int
	WorkIDs []string
}

// Work is a movie (or any shared production) linking the people who appeared in it.
type Work struct {
	ID        string
	Title     string
	Year      int
	PersonIDs []string
}
