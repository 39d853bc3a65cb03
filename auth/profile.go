package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"rongchapa/db"
	"rongchapa/models"
	"rongchapa/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

func getProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"user": user})
}

// updateProfileHandler applies a partial profile update. Changing the email
// re-checks uniqueness; changing the password requires the current one.
func updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Name            *string `json:"name"`
		Email           *string `json:"email"`
		Phone           *string `json:"phone"`
		Organization    *string `json:"organization"`
		Address         *string `json:"address"`
		CurrentPassword string  `json:"currentPassword"`
		NewPassword     string  `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	update := bson.M{"updatedAt": time.Now()}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != user.Email {
			var existing models.User
			err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
			if err == nil && existing.UserID != user.UserID {
				utils.RespondWithError(w, http.StatusConflict, "This email is already in use")
				return
			}
			if err != nil && err != mongo.ErrNoDocuments {
				utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
				return
			}
			update["email"] = email
			user.Email = email
		}
	}
	if input.Name != nil {
		update["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		update["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.Organization != nil {
		update["organization"] = strings.TrimSpace(*input.Organization)
	}
	if input.Address != nil {
		update["address"] = strings.TrimSpace(*input.Address)
	}

	if input.NewPassword != "" {
		if input.CurrentPassword == "" {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Current password is required to set a new password")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update password")
			return
		}
		update["password"] = string(hashed)
	}

	if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": update}); err != nil {
		log.Printf("profile update error for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	token, err := SignToken(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.SendResponse(w, http.StatusOK, map[string]any{
		"user":  user.Summary(),
		"token": token,
	}, "Profile updated", nil)
}
