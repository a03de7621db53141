package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/releasedtoday/gameday/gamedayservice"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if err := gamedayservice.Run(); err != nil {
		log.Fatal().Err(err).Msg("gameday service exited with error")
	}
}
