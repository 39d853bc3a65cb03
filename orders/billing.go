package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
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

// ErrEmptyBillingPatch means a billing update supplied no usable field.
var ErrEmptyBillingPatch = errors.New("provide billingNumber, billingAmount, or billingNotes")

// BillingPatch distinguishes "not supplied" (nil) from an explicit value.
type BillingPatch struct {
	Number *string  `json:"billingNumber"`
	Amount *float64 `json:"billingAmount"`
	Notes  *string  `json:"billingNotes"`
}

// BuildBillingUpdate turns a patch into a $set document. Only supplied
// fields are touched; a non-finite amount is dropped; generatedAt is always
// refreshed. A patch with no surviving field is an error.
func BuildBillingUpdate(patch BillingPatch, now time.Time) (bson.M, error) {
	set := bson.M{}
	if patch.Number != nil {
		set["billing.number"] = *patch.Number
	}
	if patch.Amount != nil && isFinite(*patch.Amount) {
		set["billing.amount"] = *patch.Amount
	}
	if patch.Notes != nil {
		set["billing.notes"] = *patch.Notes
	}
	if len(set) == 0 {
		return nil, ErrEmptyBillingPatch
	}
	set["billing.generatedAt"] = now
	return set, nil
}

// UpdateOrderStatus is an unconditional transition within the status enum;
// staff may move an order backward or skip states.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

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

	var order models.Order
	err := db.OrderCollection.FindOneAndUpdate(ctx,
		bson.M{"orderid": orderID},
		bson.M{"$set": bson.M{"status": input.Status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Println("order status update error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	mq.Emit(ctx, mq.OrderEvent{
		Type:     mq.OrderStatusChanged,
		EntityID: orderID,
		UserID:   order.UserID,
		Status:   string(order.Status),
	})

	batch := []models.Order{order}
	if err := AttachSummaries(ctx, batch); err == nil {
		order = batch[0]
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Order status updated", "order": order})
}

// UpdateOrderBilling applies a partial billing update.
func UpdateOrderBilling(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

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

	var order models.Order
	err = db.OrderCollection.FindOneAndUpdate(ctx,
		bson.M{"orderid": orderID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Println("order billing update error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update billing")
		return
	}

	batch := []models.Order{order}
	if err := AttachSummaries(ctx, batch); err == nil {
		order = batch[0]
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Billing details saved", "order": order})
}
