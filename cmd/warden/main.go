package main

import (
	"flag"
	"log"

	"github.com/aussiebroadwan/warden/internal/rbac/app"
)

func main() {
	usage := flag.Bool("env", false, "print the recognised environment variables and exit")
	flag.Parse()

	if *usage {
		if err := app.Usage(); err != nil {
			log.Fatalf("usage: %v", err)
		}
		return
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
