package printorders

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"rongchapa/db"
	"rongchapa/models"
	"rongchapa/mq"
	"rongchapa/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type createInput struct {
	Description        string `json:"description"`
	FileLink           string `json:"fileLink"`
	ColorMode          string `json:"colorMode"`
	Sides              string `json:"sides"`
	PaperSize          string `json:"paperSize"`
	Quantity           int    `json:"quantity"`
	CollectionTime     string `json:"collectionTime"`
	DeliveryLocation   string `json:"deliveryLocation"`
	DeliveryAddress    string `json:"deliveryAddress"`
	PaymentTransaction string `json:"paymentTransaction"`
}

func (in *createInput) validate() string {
	if strings.TrimSpace(in.Description) == "" {
		return "Description is required"
	}
	if !models.ColorMode(in.ColorMode).Valid() {
		return "Color mode is required"
	}
	if !models.PrintSides(in.Sides).Valid() {
		return "Print sides is required"
	}
	if !models.PaperSize(in.PaperSize).Valid() {
		return "Paper size is required"
	}
	if in.Quantity < 1 {
		return "Quantity must be at least 1"
	}
	location := models.DeliveryLocation(in.DeliveryLocation)
	if !location.Valid() {
		return "Delivery location is required"
	}
	if location == models.LocationOther && strings.TrimSpace(in.DeliveryAddress) == "" {
		return "Delivery address is required for other locations"
	}
	if strings.TrimSpace(in.PaymentTransaction) == "" {
		return "Security payment transaction is required"
	}
	return ""
}

// CreatePrintOrder submits a custom print job. The security deposit is
// fixed by delivery location at creation time and never recomputed.
func CreatePrintOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input createInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := input.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	collectionTime, err := time.Parse(time.RFC3339, input.CollectionTime)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Select a valid collection time slot")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	location := models.DeliveryLocation(input.DeliveryLocation)
	now := time.Now()
	printOrder := models.PrintOrder{
		PrintOrderID:       "pr" + utils.GenerateID(12),
		UserID:             userID,
		Description:        strings.TrimSpace(input.Description),
		FileLink:           strings.TrimSpace(input.FileLink),
		ColorMode:          models.ColorMode(input.ColorMode),
		Sides:              models.PrintSides(input.Sides),
		PaperSize:          models.PaperSize(input.PaperSize),
		Quantity:           input.Quantity,
		CollectionTime:     collectionTime,
		DeliveryLocation:   location,
		DeliveryAddress:    strings.TrimSpace(input.DeliveryAddress),
		PaymentTransaction: strings.TrimSpace(input.PaymentTransaction),
		Status:             models.StatusPending,
		SecurityAmount:     location.Deposit(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := db.PrintOrderCollection.InsertOne(ctx, printOrder); err != nil {
		log.Println("create print order error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create print order")
		return
	}

	mq.Emit(ctx, mq.OrderEvent{
		Type:     mq.PrintOrderCreated,
		EntityID: printOrder.PrintOrderID,
		UserID:   userID,
		Status:   string(printOrder.Status),
	})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Print order received", "printOrder": printOrder})
}

// ListPrintOrders returns every print order, newest first, for staff.
func ListPrintOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listPrintOrders(w, r, bson.M{}, true)
}

// ListMyPrintOrders returns the caller's print orders.
func ListMyPrintOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	listPrintOrders(w, r, bson.M{"userid": userID}, false)
}

func listPrintOrders(w http.ResponseWriter, r *http.Request, filter bson.M, withUsers bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.PrintOrderCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		log.Println("list print orders error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch print orders")
		return
	}
	defer cursor.Close(ctx)

	printOrders := []models.PrintOrder{}
	if err := cursor.All(ctx, &printOrders); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing print orders")
		return
	}

	if withUsers {
		if err := attachUsers(ctx, printOrders); err != nil {
			log.Println("attach users error:", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"printOrders": printOrders})
}

func attachUsers(ctx context.Context, printOrders []models.PrintOrder) error {
	if len(printOrders) == 0 {
		return nil
	}

	userIDs := make([]string, 0, len(printOrders))
	for _, p := range printOrders {
		userIDs = append(userIDs, p.UserID)
	}

	cursor, err := db.UserCollection.Find(ctx, bson.M{"userid": bson.M{"$in": userIDs}})
	if err != nil {
		return err
	}
	var userDocs []models.User
	if err := cursor.All(ctx, &userDocs); err != nil {
		return err
	}

	users := map[string]*models.UserSummary{}
	for i := range userDocs {
		users[userDocs[i].UserID] = userDocs[i].Summary()
	}
	for i := range printOrders {
		printOrders[i].User = users[printOrders[i].UserID]
	}
	return nil
}

// UpdatePrintOrderStatus mirrors the shop order contract: any enum value,
// no transition guard.
func UpdatePrintOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	printOrderID := ps.ByName("printorderid")

	var input struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !input.Status.Valid() {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var printOrder models.PrintOrder
	err := db.PrintOrderCollection.FindOneAndUpdate(ctx,
		bson.M{"printorderid": printOrderID},
		bson.M{"$set": bson.M{"status": input.Status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&printOrder)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Print order not found")
		return
	}
	if err != nil {
		log.Println("print order status update error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update print order status")
		return
	}

	mq.Emit(ctx, mq.OrderEvent{
		Type:     mq.PrintStatusChanged,
		EntityID: printOrderID,
		UserID:   printOrder.UserID,
		Status:   string(printOrder.Status),
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Print order status updated", "printOrder": printOrder})
}

// ErrEmptyBillingPatch means a billing update supplied no usable field.
var ErrEmptyBillingPatch = errors.New("provide billing number, amount, or notes")

// BillingPatch distinguishes "not supplied" (nil) from an explicit value.
type BillingPatch struct {
	Number *string  `json:"billingNumber"`
	Amount *float64 `json:"billingAmount"`
	Notes  *string  `json:"billingNotes"`
}

// BuildBillingUpdate is the print-order variant of the billing patch:
// number and notes are trimmed and dropped when empty, a non-finite amount
// is dropped, generatedAt always refreshes.
func BuildBillingUpdate(patch BillingPatch, now time.Time) (bson.M, error) {
	set := bson.M{}
	if patch.Number != nil {
		if trimmed := strings.TrimSpace(*patch.Number); trimmed != "" {
			set["billing.number"] = trimmed
		}
	}
	if patch.Amount != nil && !math.IsNaN(*patch.Amount) && !math.IsInf(*patch.Amount, 0) {
		set["billing.amount"] = *patch.Amount
	}
	if patch.Notes != nil {
		if trimmed := strings.TrimSpace(*patch.Notes); trimmed != "" {
			set["billing.notes"] = trimmed
		}
	}
	if len(set) == 0 {
		return nil, ErrEmptyBillingPatch
	}
	set["billing.generatedAt"] = now
	return set, nil
}

// UpdatePrintOrderBilling applies a partial billing update.
func UpdatePrintOrderBilling(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	printOrderID := ps.ByName("printorderid")

	var patch BillingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	set, err := BuildBillingUpdate(patch, time.Now())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var printOrder models.PrintOrder
	err = db.PrintOrderCollection.FindOneAndUpdate(ctx,
		bson.M{"printorderid": printOrderID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&printOrder)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Print order not found")
		return
	}
	if err != nil {
		log.Println("print order billing update error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update print order billing")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Print order billing updated", "printOrder": printOrder})
}
