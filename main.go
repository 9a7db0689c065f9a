package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lab1702/ofbot/config"
	"github.com/lab1702/ofbot/game"
	"github.com/lab1702/ofbot/server"
)

func main() {
	port := flag.String("port", "8080", "Server port")
	configPath := flag.String("config", "", "Bot tuning file (YAML)")
	difficulty := flag.String("difficulty", "", "Override the tuning file's bot difficulty (easy, normal, hard, expert or 0-3)")
	flag.Parse()

	tuning := config.Default()
	if *configPath != "" {
		var err error
		tuning, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	server.ApplyDebug(tuning.Debug)

	log.Printf("Starting bot arena (%s, %d bots per team) on port %s", tuning.Match.GameType, tuning.Match.BotsPerTeam, *port)

	// Create arena server
	arenaServer, err := server.NewServer(tuning)
	if err != nil {
		log.Fatal(err)
	}
	go arenaServer.Run()

	if *difficulty != "" {
		if d, ok := game.ParseDifficulty(*difficulty); ok {
			arenaServer.SetDifficulty(d)
		} else {
			log.Printf("Ignoring -difficulty %q: value out of range [0,3]", *difficulty)
		}
	}

	// Inspector feed
	http.HandleFunc("/ws", arenaServer.HandleWebSocket)

	// Bot stats endpoint
	http.HandleFunc("/api/bots", arenaServer.HandleBotStats)

	// Health check endpoint
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:         ":" + *port,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Inspector running at http://localhost:%s/api/bots", *port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Printf("Shutting down server (signal: %v)...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Signal arena server to stop background goroutines
	arenaServer.Shutdown()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	os.Exit(0)
}
