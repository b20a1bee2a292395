package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	envFile := flag.String("env", ".env", "Environment file to load")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	// Publishing is optional; without S3 settings ?publish=true is rejected
	var publisher output.Publisher
	if cfg.S3.Enabled() {
		s3Publisher, err := output.NewS3Publisher(cfg.S3)
		if err != nil {
			log.Printf("Error creating S3 publisher: %v", err)
			os.Exit(1)
		}
		publisher = s3Publisher
		log.Printf("Publishing renders to bucket %s", cfg.S3.Bucket)
	}

	webServer := server.NewServer(*port, cfg, publisher)

	log.Printf("Sphere Tracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=default", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
