// Command admin-create interactively provisions an admin account with a
// chosen username and password.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"straterra-backend/internal/database"
	"straterra-backend/internal/model"
	"straterra-backend/internal/utilities"

	"gorm.io/gorm"
)

func main() {

	fmt.Println("Generating admin account")

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	fmt.Print("Enter email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Enter password: ")
	password1, _ := reader.ReadString('\n')
	password1 = strings.TrimSpace(password1)

	fmt.Print("Confirm password: ")
	password2, _ := reader.ReadString('\n')
	password2 = strings.TrimSpace(password2)

	if password1 != password2 {
		fmt.Println("Passwords do not match.")
		os.Exit(1)
	}

	if err := database.InitializeDatabase(); err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		os.Exit(1)
	}

	db := database.DBinstance

	existing := model.User{}
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		fmt.Println("Username already taken")
		os.Exit(1)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		fmt.Printf("Failed to check username: %v\n", err)
		os.Exit(1)
	}

	utilities.CreateAdmin(password1, username, email, db.DB)
	fmt.Printf("Admin account %s created.\n", username)
}
