// Command api runs the STRATERRA website backend.
package main

import (
	"log"

	"straterra-backend/internal/server"
)

// @title STRATERRA Backend API
// @version 1.0
// @description Content and submission API for the STRATERRA marketing website.
// @BasePath /api/v1
func main() {
	srv := server.NewServer()

	log.Printf("Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server error: %s", err)
	}
}
