package dashboard

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"rongchapa/db"
	"rongchapa/models"
	"rongchapa/orders"
	"rongchapa/rdx"
	"rongchapa/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

// Billing amounts may be missing; sum them as 0.
var sumBillingStage = bson.M{"$sum": bson.M{"$ifNull": bson.A{"$billing.amount", 0}}}

func statusAggregates(ctx context.Context) ([]models.StatusAggregate, error) {
	cursor, err := db.OrderCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":    "$status",
			"count":  bson.M{"$sum": 1},
			"amount": sumBillingStage,
		}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.StatusAggregate
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func approvedCancelAggregate(ctx context.Context) (models.StatusAggregate, error) {
	cursor, err := db.OrderCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"cancelRequest.status": models.CancelApproved}}},
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"count":  bson.M{"$sum": 1},
			"amount": sumBillingStage,
		}}},
	})
	if err != nil {
		return models.StatusAggregate{}, err
	}
	defer cursor.Close(ctx)

	var rows []models.StatusAggregate
	if err := cursor.All(ctx, &rows); err != nil {
		return models.StatusAggregate{}, err
	}
	if len(rows) == 0 {
		return models.StatusAggregate{}, nil
	}
	return rows[0], nil
}

func completedPrintAggregate(ctx context.Context) (models.PrintAggregate, error) {
	cursor, err := db.PrintOrderCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.StatusCompleted}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"count":   bson.M{"$sum": 1},
			"amount":  sumBillingStage,
			"deposit": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$securityAmount", 0}}},
		}}},
	})
	if err != nil {
		return models.PrintAggregate{}, err
	}
	defer cursor.Close(ctx)

	var rows []models.PrintAggregate
	if err := cursor.All(ctx, &rows); err != nil {
		return models.PrintAggregate{}, err
	}
	if len(rows) == 0 {
		return models.PrintAggregate{}, nil
	}
	return rows[0], nil
}

func recentOrders(ctx context.Context, limit int64) ([]models.Order, error) {
	cursor, err := db.OrderCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	recent := []models.Order{}
	if err := cursor.All(ctx, &recent); err != nil {
		return nil, err
	}
	if err := orders.AttachSummaries(ctx, recent); err != nil {
		log.Println("recent orders summaries error:", err)
	}
	return recent, nil
}

// GetDashboard returns the cross-aggregate rollup. The assembled stats are
// cached in Redis for a short window.
func GetDashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(statsCacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	ordersCount, err := db.OrderCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	printOrdersCount, err := db.PrintOrderCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	statusRows, err := statusAggregates(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	approvedCancel, err := approvedCancelAggregate(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	completedPrints, err := completedPrintAggregate(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	recent, err := recentOrders(ctx, 5)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	stats := AssembleStats(ordersCount, printOrdersCount, statusRows, approvedCancel, completedPrints, recent)
	payload := utils.M{"stats": stats}

	if data, err := json.Marshal(payload); err == nil {
		if err := rdx.SetWithExpiry(statsCacheKey, string(data), statsCacheTTL); err != nil {
			log.Println("stats cache error:", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, payload)
}

// GetCustomers returns the customer count and the most recent customers.
// The limit query parameter is clamped to 1..50 and defaults to 12.
func GetCustomers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit := int64(12)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"role": models.RoleCustomer}
	total, err := db.UserCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}

	cursor, err := db.UserCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing customers")
		return
	}

	customers := make([]*models.UserSummary, 0, len(users))
	for i := range users {
		customers = append(customers, users[i].Summary())
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"totalCustomers": total,
		"customers":      customers,
	})
}
