package model

import "time"

// DateLayout is the wire format for calendar dates (query params, cache keys,
// ledger rows). Comparisons are exact string equality on this layout.
const DateLayout = "2006-01-02"

// ReleaseDate is a single catalog release record. After normalization a game
// carries exactly one entry: its earliest release matching the queried day.
type ReleaseDate struct {
	Date int64 `json:"date"`
}

// NamedRef is a catalog reference expanded to its display name (genre,
// platform).
type NamedRef struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// Cover is an optional cover-image reference.
type Cover struct {
	ID  int64  `json:"id,omitempty"`
	URL string `json:"url"`
}

// Game is the canonical game record served to clients. It is owned by the
// daily cache entry for its date; Votes is the only field mutated after
// creation and is guarded by the entry lock.
type Game struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Genres       []NamedRef    `json:"genres,omitempty"`
	Platforms    []NamedRef    `json:"platforms,omitempty"`
	Cover        *Cover        `json:"cover,omitempty"`
	Summary      string        `json:"summary,omitempty"`
	Rating       *float64      `json:"rating,omitempty"`
	ReleaseDates []ReleaseDate `json:"release_dates,omitempty"`
	Votes        int           `json:"votes"`
}

// RatingOrZero treats an absent rating as 0 for ordering purposes.
func (g *Game) RatingOrZero() float64 {
	if g.Rating == nil {
		return 0
	}
	return *g.Rating
}

// SelectionReason explains how the game of the day was chosen.
type SelectionReason string

const (
	ReasonByVotes  SelectionReason = "by-votes"
	ReasonByRating SelectionReason = "by-rating"
)

// GameOfTheDay is the selector result for the current date.
type GameOfTheDay struct {
	Game
	Reason SelectionReason `json:"reason"`
}

// User represents an account in the external user store. Registration and
// authentication live outside this service; the vote ledger only reads and
// writes LastVoteDate and VotedGameID.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	CreationTime time.Time `json:"creationTime"`
	LastVoteDate *string   `json:"lastVoteDate,omitempty"`
	VotedGameID  *int64    `json:"votedGameId,omitempty"`
}
