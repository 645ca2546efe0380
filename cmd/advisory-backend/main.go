package main

import (
	"log"

	"github.com/nilecare/advisory-backend/internal/builder"
)

func main() {
	app, err := builder.Build()
	if err != nil {
		log.Fatal("failed to build advisory backend: ", err)
	}

	if err := app.Run(); err != nil {
		log.Fatal("advisory backend error: ", err)
	}
}
