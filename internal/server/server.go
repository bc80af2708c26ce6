package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"straterra-backend/internal/controller/upload"
	"straterra-backend/internal/database"
	"straterra-backend/internal/mailer"
)

// MyServer holds the database instance and the external collaborators the
// route handlers need.
type MyServer struct {
	DB      *database.DBinstanceStruct
	Mailer  *mailer.Mailer
	Storage upload.StorageClient
}

// NewServer construct new Server instance
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))

	if err := database.InitializeDatabase(); err != nil {
		log.Fatalf("Database failed to initialized: %s", err)
	}

	storage, err := upload.NewCloudinaryClient(os.Getenv("CLOUDINARY_FOLDER"))
	if err != nil {
		log.Fatalf("Media storage failed to initialize: %s", err)
	}

	s := &MyServer{
		DB:      database.DBinstance,
		Mailer:  mailer.NewFromEnv(),
		Storage: storage,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
