package main

import (
	"log"
	"net/http"
	"os"

	"tricktable-game/internal/database"
	"tricktable-game/internal/server"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	log.Println("Starting tricktable server...")

	db := database.New()
	defer db.Close()

	hub := server.NewHub(&db)
	go hub.Run()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		server.ServeWs(hub, w, r)
	})

	fs := http.FileServer(http.Dir("web/static"))
	http.Handle("/", fs)

	server.HandleRoutes(&db)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(http.ListenAndServe(":"+port, nil))
}
