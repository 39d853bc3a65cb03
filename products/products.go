package products

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

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListProducts returns active products for the storefront.
func ListProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listProducts(w, r, bson.M{"isActive": true})
}

// ListAdminProducts returns every product, active or not.
func ListAdminProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listProducts(w, r, bson.M{})
}

func listProducts(w http.ResponseWriter, r *http.Request, filter bson.M) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.ProductCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		log.Println("list products error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing products")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"products": products})
}

type productInput struct {
	Name            string                 `json:"name"`
	Slug            string                 `json:"slug"`
	Description     string                 `json:"description"`
	BasePrice       float64                `json:"basePrice"`
	Categories      []string               `json:"categories"`
	Sizes           []models.ProductOption `json:"sizes"`
	PaperTypes      []models.ProductOption `json:"paperTypes"`
	QuantityOptions []int                  `json:"quantityOptions"`
	ImageURL        string                 `json:"imageUrl"`
	IsActive        *bool                  `json:"isActive"`
}

func (in *productInput) validate() string {
	if strings.TrimSpace(in.Name) == "" {
		return "Product name is required"
	}
	if strings.TrimSpace(in.Slug) == "" {
		return "Product slug is required"
	}
	if in.BasePrice < 0 {
		return "Base price must be zero or greater"
	}
	return ""
}

// categoriesExist checks that every referenced category id is present.
func categoriesExist(ctx context.Context, ids []string) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	count, err := db.CategoryCollection.CountDocuments(ctx, bson.M{"categoryid": bson.M{"$in": ids}})
	if err != nil {
		return false, err
	}
	return count == int64(len(ids)), nil
}

func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ok, err := categoriesExist(ctx, input.Categories)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify categories")
		return
	}
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "One or more categories do not exist")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	count, err := db.ProductCollection.CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify slug")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "A product with this slug already exists")
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now()
	product := models.Product{
		ProductID:       "p" + utils.GenerateID(10),
		Name:            strings.TrimSpace(input.Name),
		Slug:            slug,
		Description:     strings.TrimSpace(input.Description),
		BasePrice:       input.BasePrice,
		Categories:      input.Categories,
		Sizes:           input.Sizes,
		PaperTypes:      input.PaperTypes,
		QuantityOptions: input.QuantityOptions,
		ImageURL:        input.ImageURL,
		IsActive:        isActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Println("create product error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Product created", "product": product})
}

func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	productID := ps.ByName("productid")

	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ok, err := categoriesExist(ctx, input.Categories)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify categories")
		return
	}
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "One or more categories do not exist")
		return
	}

	update := bson.M{
		"name":            strings.TrimSpace(input.Name),
		"slug":            strings.ToLower(strings.TrimSpace(input.Slug)),
		"description":     strings.TrimSpace(input.Description),
		"basePrice":       input.BasePrice,
		"categories":      input.Categories,
		"sizes":           input.Sizes,
		"paperTypes":      input.PaperTypes,
		"quantityOptions": input.QuantityOptions,
		"updatedAt":       time.Now(),
	}
	if input.ImageURL != "" {
		update["imageUrl"] = input.ImageURL
	}
	if input.IsActive != nil {
		update["isActive"] = *input.IsActive
	}

	var product models.Product
	err = db.ProductCollection.FindOneAndUpdate(ctx,
		bson.M{"productid": productID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Product updated", "product": product})
}

func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productid": ps.ByName("productid")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Product deleted"})
}
