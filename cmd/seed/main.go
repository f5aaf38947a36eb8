package main

import (
	"context"
	"log"
	"os"

	"errorfree/internal/config"
	"errorfree/internal/database"
	"errorfree/internal/domain"
	"errorfree/internal/repository"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old catalog...")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM admin_users")

	ctx := context.Background()

	// ================== SERVICES ==================
	log.Println("Creating services...")
	services := repository.NewServiceRepository(db)

	catalog := []domain.Service{
		{Name: "Boiler Repair", Description: "Diagnosis and repair of all boiler makes and models", Category: "heating", Price: 89.00},
		{Name: "Boiler Service", Description: "Annual boiler service and safety check", Category: "heating", Price: 75.00},
		{Name: "Washing Machine Repair", Description: "Same-day washing machine fault repair", Category: "appliances", Price: 59.00},
		{Name: "Dishwasher Repair", Description: "Dishwasher fault diagnosis and repair", Category: "appliances", Price: 55.00},
		{Name: "Oven & Cooker Repair", Description: "Electric oven and cooker repairs", Category: "appliances", Price: 65.00},
		{Name: "Fridge Freezer Repair", Description: "Refrigeration fault diagnosis and repair", Category: "appliances", Price: 69.00},
		{Name: "Electrical Fault Finding", Description: "Electrical fault diagnosis by a certified engineer", Category: "electrical", Price: 49.99},
	}

	for i := range catalog {
		catalog[i].ID = uuid.NewString()
		catalog[i].Active = true
		if err := services.Create(ctx, &catalog[i]); err != nil {
			log.Fatal("service seed failed:", err)
		}
	}
	log.Printf("Seeded %d services", len(catalog))

	// ================== ADMIN ==================
	log.Println("Creating admin user...")
	admins := repository.NewAdminRepository(db)

	email := envOrDefault("ADMIN_EMAIL", "admin@errorfree.local")
	password := envOrDefault("ADMIN_PASSWORD", "admin123")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt failed:", err)
	}

	if err := admins.Create(ctx, &domain.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrator",
	}); err != nil {
		log.Fatal("admin seed failed:", err)
	}

	log.Println("Seed complete")
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
