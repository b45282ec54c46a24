package main

import (
	"github.com/humanbelnik/jukebox/internal/app"
	"github.com/humanbelnik/jukebox/internal/config"
)

func main() {
	app.Go(config.Load())
}
