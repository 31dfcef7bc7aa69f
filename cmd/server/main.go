package main

import (
	"log"

	_ "retroboard/docs"
	"retroboard/internal/config"
	"retroboard/internal/server"
)

// @title           Retro Board API
// @version         1.0
// @description     API for collaborative retrospective boards with a live change stream.

// @host      localhost:8080
// @BasePath  /

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
