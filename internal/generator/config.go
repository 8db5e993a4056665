package generator

// Config drives the synthetic movie dataset generator.
type Config struct {
	NumPeople int
	NumMovies int
	// CastSize is the maximum number of stars per movie; each movie gets 1..CastSize.
	CastSize int
	// SharedNameChance is the probability a person reuses an earlier person's name.
	SharedNameChance float64
	// UnknownBirthChance is the probability a person's birth year is left blank.
	UnknownBirthChance float64
	Seed               int64
}

// DefaultConfig returns settings comparable to the "large" sample dataset.
func DefaultConfig() Config {
	return Config{
		NumPeople:          1000,
		NumMovies:          350,
		CastSize:           6,
		SharedNameChance:   0.02,
		UnknownBirthChance: 0.1,
		Seed:               42,
	}
}
