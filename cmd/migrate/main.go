package main

import (
	"bookable/config"
	"bookable/di"
	"bookable/helper"
	"context"
	"log"
	"os"
)

const (
	argLength = 2
)

func main() {
	if len(os.Args) < argLength {
		log.Fatal("Migration action (up/down/drop/step-up/session-types) is required")
	}

	cfg := config.Get()

	switch os.Args[1] {
	case "up":
		if err := helper.Up(cfg); err != nil {
			log.Fatal(err)
		}
	case "down":
		if err := helper.Down(cfg); err != nil {
			log.Fatal(err)
		}
	case "drop":
		if err := helper.Drop(cfg); err != nil {
			log.Fatal(err)
		}
	case "step-up":
		if err := helper.StepUp(cfg); err != nil {
			log.Fatal(err)
		}
	case "session-types":
		migrator := di.InitializeMigrator()

		converted, err := migrator.ConvertSessionTypes(context.Background())
		if err != nil {
			log.Fatal(err)
		}

		log.Printf("Converted %d legacy session type entries", converted)
	default:
		log.Fatal("Invalid action. Use 'up', 'down', 'drop', 'step-up' or 'session-types'")
	}
}
