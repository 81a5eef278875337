package domain

import "time"

// Snapshot keys for the two tracked prices.
const (
	PrimaryKey   = "primary"
	SecondaryKey = "secondary"
)

// Quotes is the result of a single successful fetch.
type Quotes struct {
	Primary   float64
	Secondary float64
	FetchedAt time.Time
}

// Snapshot maps a symbol key to its last observed value.
// A missing key means no prior value; zero is a valid price.
type Snapshot map[string]float64

func (s Snapshot) Value(key string) (float64, bool) {
	v, ok := s[key]
	return v, ok
}

// FromQuotes builds the snapshot that replaces the previous one after a successful fetch.
func FromQuotes(q Quotes) Snapshot {
	return Snapshot{
		PrimaryKey:   q.Primary,
		SecondaryKey: q.Secondary,
	}
}

// Labels describe how each tracked price is shown to the reader.
type Labels struct {
	Primary       string
	PrimaryIcon   string
	Secondary     string
	SecondaryIcon string
}
