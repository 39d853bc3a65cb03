package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log"
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
)

var (
	ErrOrderNotCancellable  = errors.New("this order can no longer be cancelled")
	ErrCancelAlreadyPending = errors.New("a cancellation request is already pending review")
	ErrCancelNotPending     = errors.New("this order does not have a pending cancellation request")
	ErrBadCancelAction      = errors.New("action must be approve or decline")
)

// ApplyCancelRequest moves the cancellation sub-record from none (or a
// previously declined request) to pending. Completed and cancelled orders
// reject the request, as does an already pending one.
func ApplyCancelRequest(o *models.Order, reason string, now time.Time) error {
	if o.Status == models.StatusCompleted || o.Status == models.StatusCancelled {
		return ErrOrderNotCancellable
	}
	if o.CancelRequest.Status == models.CancelPending {
		return ErrCancelAlreadyPending
	}

	o.CancelRequest = models.CancelRequest{
		Status:      models.CancelPending,
		Reason:      strings.TrimSpace(reason),
		RequestedAt: &now,
	}
	return nil
}

// ResolveCancelRequest settles a pending cancellation. Approving forces the
// order status to cancelled; declining leaves it untouched. Resolver,
// timestamp and note are recorded either way.
func ResolveCancelRequest(o *models.Order, action, adminNote, resolvedBy string, now time.Time) error {
	if action != "approve" && action != "decline" {
		return ErrBadCancelAction
	}
	if o.CancelRequest.Status != models.CancelPending {
		return ErrCancelNotPending
	}

	if action == "approve" {
		o.CancelRequest.Status = models.CancelApproved
		o.Status = models.StatusCancelled
	} else {
		o.CancelRequest.Status = models.CancelDeclined
	}
	o.CancelRequest.ResolvedAt = &now
	o.CancelRequest.ResolvedBy = resolvedBy
	o.CancelRequest.AdminNote = strings.TrimSpace(adminNote)
	return nil
}

// RequestCancellation lets the owning customer ask for a cancellation.
func RequestCancellation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if len(strings.TrimSpace(input.Reason)) < 10 {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Please share a short note (at least 10 characters)")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID, "userid": userID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load order")
		return
	}

	now := time.Now()
	if err := ApplyCancelRequest(&order, input.Reason, now); err != nil {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}

	// Guard re-checked at write time; a concurrent request loses here.
	res, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{
			"orderid":              orderID,
			"userid":               userID,
			"status":               bson.M{"$nin": []models.OrderStatus{models.StatusCompleted, models.StatusCancelled}},
			"cancelRequest.status": bson.M{"$ne": models.CancelPending},
		},
		bson.M{"$set": bson.M{
			"cancelRequest": order.CancelRequest,
			"updatedAt":     now,
		}},
	)
	if err != nil {
		log.Println("cancellation request error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit cancellation request")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, ErrCancelAlreadyPending.Error())
		return
	}

	mq.Emit(ctx, mq.OrderEvent{
		Type:     mq.OrderCancelRequested,
		EntityID: orderID,
		UserID:   userID,
		Status:   string(order.Status),
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Cancellation request submitted", "order": order})
}

// ReviewCancellation lets staff approve or decline a pending request.
func ReviewCancellation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")
	resolvedBy := utils.GetUserIDFromRequest(r)

	var input struct {
		Action    string `json:"action"`
		AdminNote string `json:"adminNote"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load order")
		return
	}

	now := time.Now()
	if err := ResolveCancelRequest(&order, input.Action, input.AdminNote, resolvedBy, now); err != nil {
		if err == ErrBadCancelAction {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}

	res, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID, "cancelRequest.status": models.CancelPending},
		bson.M{"$set": bson.M{
			"cancelRequest": order.CancelRequest,
			"status":        order.Status,
			"updatedAt":     now,
		}},
	)
	if err != nil {
		log.Println("cancellation review error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to review cancellation request")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, ErrCancelNotPending.Error())
		return
	}

	mq.Emit(ctx, mq.OrderEvent{
		Type:     mq.OrderCancelResolved,
		EntityID: orderID,
		UserID:   order.UserID,
		Status:   string(order.Status),
	})

	message := "Cancellation request declined"
	if order.CancelRequest.Status == models.CancelApproved {
		message = "Order cancelled successfully"
	}

	batch := []models.Order{order}
	if err := AttachSummaries(ctx, batch); err == nil {
		order = batch[0]
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": message, "order": order})
}
