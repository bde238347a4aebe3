package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/jnalanko/Hu4Rolls-2/server"
)

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string) bool {
	switch os.Getenv(key) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	config := server.Config{
		DefaultSBSize: envInt("SB_SIZE", 5),
		DefaultStack:  envInt("START_STACK", 1000),
		Debug:         envBool("DEBUG"),
	}

	s := server.NewServer(config)
	if err := s.Start(port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
