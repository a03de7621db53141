package services

import "github.com/releasedtoday/gameday/internal/model"

// SelectGameOfTheDay picks the most-voted game; when no game has votes, the
// highest rated (absent rating counts as 0). Ties keep the first occurrence
// in input order. ok is false for an empty input.
func SelectGameOfTheDay(games []model.Game) (model.GameOfTheDay, bool) {
	if len(games) == 0 {
		return model.GameOfTheDay{}, false
	}

	best := 0
	for i := 1; i < len(games); i++ {
		if games[i].Votes > games[best].Votes {
			best = i
		}
	}
	if games[best].Votes > 0 {
		return model.GameOfTheDay{Game: games[best], Reason: model.ReasonByVotes}, true
	}

	best = 0
	for i := 1; i < len(games); i++ {
		if games[i].RatingOrZero() > games[best].RatingOrZero() {
			best = i
		}
	}
	return model.GameOfTheDay{Game: games[best], Reason: model.ReasonByRating}, true
}
