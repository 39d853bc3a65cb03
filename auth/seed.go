package auth

import (
	"context"
	"log"
	"time"

	"rongchapa/db"
	"rongchapa/globals"
	"rongchapa/models"
	"rongchapa/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdminUser seeds or refreshes the admin account from configuration.
// Missing credentials skip seeding with a warning instead of failing start.
func EnsureAdminUser(ctx context.Context, cfg *globals.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("admin seeding skipped: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var existing models.User
	err = db.UserCollection.FindOne(ctx, bson.M{"email": cfg.AdminEmail}).Decode(&existing)
	if err == nil {
		update := bson.M{
			"password":  string(hashed),
			"role":      models.RoleAdmin,
			"updatedAt": time.Now(),
		}
		if existing.Name == "" {
			update["name"] = cfg.BusinessName + " Admin"
		}
		if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": existing.UserID}, bson.M{"$set": update}); err != nil {
			return err
		}
		log.Printf("admin user refreshed for %s", cfg.AdminEmail)
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	now := time.Now()
	admin := models.User{
		UserID:    "u" + utils.GenerateID(10),
		Name:      cfg.BusinessName + " Admin",
		Email:     cfg.AdminEmail,
		Password:  string(hashed),
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.UserCollection.InsertOne(ctx, admin); err != nil {
		return err
	}
	log.Printf("admin user created for %s", cfg.AdminEmail)
	return nil
}
