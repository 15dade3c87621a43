// createadmin seeds (or resets) the admin account used to sign in to
// the attendance API.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/attendly/attendance-api/config"
	"github.com/attendly/attendance-api/database"
	"github.com/attendly/attendance-api/models"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "admin123", "admin password")
	flag.Parse()

	cfg := config.Load()
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	var existing models.Admin
	err = db.Where("username = ?", *username).First(&existing).Error
	switch {
	case err == nil:
		existing.Password = string(hashed)
		if err := db.Save(&existing).Error; err != nil {
			log.Fatalf("update admin: %v", err)
		}
		fmt.Printf("admin %q password reset\n", *username)
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin := models.Admin{Username: *username, Password: string(hashed)}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("insert admin: %v", err)
		}
		fmt.Printf("admin %q created\n", *username)
	default:
		log.Fatalf("query admins: %v", err)
	}
}
