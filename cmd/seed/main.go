package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/fieldserve/backend/internal/db"
	"github.com/fieldserve/backend/internal/models"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// UserData represents the structure of users in the JSON file
type UserData struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// JSONData represents the structure of the JSON files
type JSONData struct {
	Users []UserData `json:"users"`
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Connect to database
	db.Connect()

	// Run migrations first
	log.Println("Running database migrations...")
	db.AutoMigrate()

	log.Println("Seeding database with sample data...")

	if err := seedUsers(); err != nil {
		log.Printf("Error seeding users: %v", err)
	}
	if err := seedServiceRequests(); err != nil {
		log.Printf("Error seeding service requests: %v", err)
	}

	log.Println("✅ Database seeding completed successfully!")
}

func seedUsers() error {
	usersFile := os.Getenv("SEED_USERS_FILE")
	if usersFile == "" {
		usersFile = "data/initial-users.json"
	}

	usersData, err := os.ReadFile(usersFile)
	if err != nil {
		return err
	}

	var jsonData JSONData
	if err := json.Unmarshal(usersData, &jsonData); err != nil {
		return err
	}

	for _, userData := range jsonData.Users {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userData.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Error hashing password for %s: %v", userData.Email, err)
			continue
		}

		user := models.User{
			Email:     userData.Email,
			Password:  string(hashedPassword),
			FirstName: userData.FirstName,
			LastName:  userData.LastName,
		}

		// Check if user already exists
		var existingUser models.User
		if err := db.DB.Where("email = ?", user.Email).First(&existingUser).Error; err != nil {
			if err := db.DB.Create(&user).Error; err != nil {
				log.Printf("Error creating user %s: %v", user.Email, err)
			} else {
				log.Printf("✅ Created user: %s", user.Email)
			}
		} else {
			log.Printf("⚠️  User already exists: %s", user.Email)
		}
	}

	return nil
}

func seedServiceRequests() error {
	var owner models.User
	if err := db.DB.Order("id").First(&owner).Error; err != nil {
		return err
	}

	var count int64
	if err := db.DB.Model(&models.ServiceRequest{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("⚠️  Service requests already seeded (%d present)", count)
		return nil
	}

	samples := []models.ServiceRequest{
		{
			ServiceName:       "HVAC Maintenance",
			CustomerName:      "Acme Corp",
			Phone:             "555-0100",
			Email:             "facilities@acme.example",
			CompanyName:       "Acme Corp",
			ScheduledDateTime: "2026-09-15 09:00",
			AssignedTo:        "Tech1",
			Status:            models.StatusPending,
			CreatedByID:       owner.ID,
		},
		{
			ServiceName:       "Generator Inspection",
			CustomerName:      "Globex Inc",
			Phone:             "555-0101",
			Email:             "ops@globex.example",
			CompanyName:       "Globex Inc",
			ScheduledDateTime: "2026-09-16 14:30",
			AssignedTo:        "Tech2",
			Status:            models.StatusInProgress,
			CreatedByID:       owner.ID,
		},
	}

	for _, sample := range samples {
		if err := db.DB.Create(&sample).Error; err != nil {
			log.Printf("Error creating service request %s: %v", sample.ServiceName, err)
		} else {
			log.Printf("✅ Created service request: %s", sample.ServiceName)
		}
	}

	return nil
}
