package products

import (
	"context"
	"log"
	"net/http"
	"time"

	"rongchapa/db"
	"rongchapa/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const productPicDir = "static/productpic"

// UploadProductImage stores a product photo plus thumbnail and points the
// product's imageUrl at it.
func UploadProductImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	productID := ps.ByName("productid")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Image file is required")
		return
	}

	fileName, err := utils.SaveImageWithThumb(files[0], productPicDir)
	if err != nil {
		log.Println("product image upload error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	imageURL := "/static/productpic/" + fileName
	res, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{"$set": bson.M{"imageUrl": imageURL, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"imageUrl": imageURL})
}
