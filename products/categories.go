package products

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"rongchapa/db"
	"rongchapa/models"
	"rongchapa/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func ListCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.CategoryCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing categories")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"categories": categories})
}

func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Slug) == "" {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Category name and slug are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	count, err := db.CategoryCollection.CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify slug")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "A category with this slug already exists")
		return
	}

	category := models.Category{
		CategoryID: "c" + utils.GenerateID(10),
		Name:       strings.TrimSpace(input.Name),
		Slug:       slug,
		CreatedAt:  time.Now(),
	}
	if _, err := db.CategoryCollection.InsertOne(ctx, category); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Category created", "category": category})
}
