// Command spondon runs the Spondon blood-donation API server.
package main

import (
	"context"
	"log"

	"github.com/dalemusser/waffle/app"
	"github.com/spondon-bd/spondon/internal/app/bootstrap"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
