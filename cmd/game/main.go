package main

import (
	"log"

	"github.com/Garsondee/Void-Sense/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	ebiten.SetWindowTitle("Void Sense")
	ebiten.SetWindowSize(1280, 720)
	if err := ebiten.RunGame(game.NewView()); err != nil {
		log.Fatal(err)
	}
}
