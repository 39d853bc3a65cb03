package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"rongchapa/db"
	"rongchapa/globals"
	"rongchapa/middleware"
	"rongchapa/models"
	"rongchapa/rdx"
	"rongchapa/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	refreshTokenTTL = 7 * 24 * time.Hour
	accessTokenTTL  = 12 * time.Hour

	sessionHash = "sessions"
)

// ErrEmailTaken signals a duplicate-email registration attempt.
var ErrEmailTaken = errors.New("an account with this email already exists")

// AuthPayload is what every credential-issuing endpoint returns.
type AuthPayload struct {
	Token string              `json:"token"`
	User  *models.UserSummary `json:"user"`
}

func buildAuthPayload(user *models.User, token string) *AuthPayload {
	return &AuthPayload{Token: token, User: user.Summary()}
}

// SignToken issues a bearer token for the user.
func SignToken(user *models.User) (string, error) {
	claims := &middleware.Claims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.Conf.JwtSecret)
}

// EnsureAccount creates a customer account after checking the email is
// unused, and issues credentials for it. Order creation calls this for guest
// checkout before writing any order document.
func EnsureAccount(ctx context.Context, name, email, password, phone, address string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return nil, "", ErrEmailTaken
	}
	if err != mongo.ErrNoDocuments {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := &models.User{
		UserID:      "u" + utils.GenerateID(10),
		Name:        name,
		Email:       email,
		Password:    string(hashed),
		Role:        models.RoleCustomer,
		Phone:       phone,
		Address:     address,
		LastLoginAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := SignToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func registerHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		Phone        string `json:"phone"`
		Organization string `json:"organization"`
		Address      string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || len(input.Password) < 6 {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Email and a password of at least 6 characters are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, token, err := EnsureAccount(ctx, input.Name, input.Email, input.Password, input.Phone, input.Address)
	if err == ErrEmailTaken {
		utils.RespondWithError(w, http.StatusConflict, "Email already in use")
		return
	}
	if err != nil {
		log.Printf("register error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	if input.Organization != "" {
		_, _ = db.UserCollection.UpdateOne(ctx,
			bson.M{"userid": user.UserID},
			bson.M{"$set": bson.M{"organization": input.Organization}})
	}

	utils.RespondWithJSON(w, http.StatusCreated, buildAuthPayload(user, token))
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var storedUser models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).Decode(&storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	tokenString, err := SignToken(&storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating refresh token")
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": storedUser.UserID},
		bson.M{"$set": bson.M{
			"refreshtoken": hashToken(refreshToken),
			"refreshexp":   time.Now().Add(refreshTokenTTL),
			"lastLoginAt":  time.Now(),
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store refresh token")
		return
	}

	if err := rdx.RdxHset(sessionHash, storedUser.UserID, tokenString); err != nil {
		log.Printf("failed to cache session for %s: %v", storedUser.UserID, err)
	}

	utils.SendResponse(w, http.StatusOK, map[string]any{
		"token":        tokenString,
		"refreshToken": refreshToken,
		"user":         storedUser.Summary(),
	}, "Login successful", nil)
}

func logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	if _, err := rdx.RdxHdel(sessionHash, claims.UserID); err != nil {
		log.Printf("error removing session from redis: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "User logged out successfully", nil)
}

func refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	// Only refresh near expiry
	if time.Until(claims.ExpiresAt.Time) >= 30*time.Minute {
		utils.RespondWithError(w, http.StatusForbidden, "Token refresh not allowed yet")
		return
	}

	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(accessTokenTTL))
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	newTokenString, err := newToken.SignedString(globals.Conf.JwtSecret)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	if err := rdx.RdxHset(sessionHash, claims.UserID, newTokenString); err != nil {
		log.Printf("error updating session in redis: %v", err)
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{"token": newTokenString}, "Token refreshed successfully", nil)
}

// Generates a random refresh token
func generateRefreshToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(tokenBytes), nil
}

// Hashes a given token
func hashToken(token string) string {
	hash := sha256.New()
	hash.Write([]byte(token))
	return hex.EncodeToString(hash.Sum(nil))
}
