package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/kachalmers/tuiter/server/tuiterd"
)

func main() {
	if err := tuiterd.Run(); err != nil {
		log.Error().Err(err).Msg("tuiterd exited with error")
		os.Exit(1)
	}
}
