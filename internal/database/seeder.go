// internal/database/seeder.go
package database

import (
	"context"
	"log"
	"time"

	"freightflow-api-server/internal/auth"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/store"
)

// SeedAdmin creates the default back-office admin account on first
// startup. An existing account with the same email skips the seed.
func SeedAdmin(ctx context.Context, st store.Store) error {
	adminEmail := "admin@freightflow.io"

	if _, err := st.GetUserByEmail(ctx, adminEmail); err == nil {
		log.Println("Admin already exists. Seeding skipped.")
		return nil
	} else if err != store.ErrNotFound {
		return err
	}

	log.Println("Admin not found. Seeding...")
	hashedPassword, err := auth.HashPassword("adminpassword")
	if err != nil {
		return err
	}

	admin := models.User{
		ExternalID: "admin-00000000",
		Email:      adminEmail,
		Name:       "Admin",
		Password:   hashedPassword,
		Role:       models.RoleAdmin,
		CreatedAt:  time.Now(),
	}
	if err := st.InsertUser(ctx, admin); err != nil {
		return err
	}

	log.Println("Admin seeded successfully.")
	return nil
}
