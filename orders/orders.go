package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"rongchapa/auth"
	"rongchapa/db"
	"rongchapa/models"
	"rongchapa/mq"
	"rongchapa/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MintInvoiceNumber returns a timestamp-based invoice token. Checkout uses
// it as both invoice number and default batch id. The suffix keeps two
// checkouts landing in the same millisecond from sharing a number.
func MintInvoiceNumber() string {
	return fmt.Sprintf("INV-%d-%s", time.Now().UnixMilli(), utils.GenerateID(4))
}

// ComputeOrderTotal is basePrice x quantity plus the delivery charge,
// rounded to two decimals.
func ComputeOrderTotal(basePrice float64, quantity int, deliveryCharge float64) float64 {
	return utils.Round2(basePrice*float64(quantity) + deliveryCharge)
}

type createOrderInput struct {
	CustomerName    string   `json:"customerName"`
	CustomerEmail   string   `json:"customerEmail"`
	CustomerPhone   string   `json:"customerPhone"`
	ProductID       string   `json:"productid"`
	Quantity        int      `json:"quantity"`
	Size            string   `json:"size"`
	PaperType       string   `json:"paperType"`
	Notes           string   `json:"notes"`
	ShippingAddress string   `json:"shippingAddress"`
	DeliveryZone    string   `json:"deliveryZone"`
	DeliveryCharge  *float64 `json:"deliveryCharge"`
	AccountPassword string   `json:"accountPassword"`
	InvoiceNumber   string   `json:"invoiceNumber"`
	BatchID         string   `json:"batchId"`
	BillingAmount   *float64 `json:"billingAmount"`
}

func (in *createOrderInput) validate() string {
	if strings.TrimSpace(in.CustomerName) == "" {
		return "Customer name is required"
	}
	if in.ProductID == "" {
		return "Valid product id is required"
	}
	if in.Quantity < 1 {
		return "Quantity must be at least 1"
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return "Delivery address is required"
	}
	return ""
}

// CreateOrder places a single line item. An unauthenticated caller must
// supply an email and password; the account is created first and its
// credentials returned alongside the order.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input createOrderInput
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

	userID := utils.GetUserIDFromRequest(r)
	var account *auth.AuthPayload

	if userID == "" {
		if input.CustomerEmail == "" {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Email is required to create an account with your order")
			return
		}
		if len(input.AccountPassword) < 6 {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Password of at least 6 characters is required to create your account")
			return
		}

		user, token, err := auth.EnsureAccount(ctx, input.CustomerName, input.CustomerEmail, input.AccountPassword, input.CustomerPhone, input.ShippingAddress)
		if err == auth.ErrEmailTaken {
			utils.RespondWithError(w, http.StatusConflict, "An account with this email already exists. Please sign in to continue.")
			return
		}
		if err != nil {
			log.Println("guest account creation error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create account")
			return
		}
		userID = user.UserID
		account = &auth.AuthPayload{Token: token, User: user.Summary()}
	}

	order, err := insertOrder(ctx, &input, userID)
	if err == errProductNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Selected product could not be found")
		return
	}
	if err != nil {
		log.Println("create order error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	mq.Emit(ctx, mq.OrderEvent{
		Type:     mq.OrderCreated,
		EntityID: order.OrderID,
		BatchID:  order.BatchID,
		UserID:   userID,
		Status:   string(order.Status),
	})

	resp := utils.M{"message": "Order created", "order": order}
	if account != nil {
		resp["account"] = account
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

var errProductNotFound = fmt.Errorf("product not found")

// insertOrder resolves pricing and persists one order document.
func insertOrder(ctx context.Context, input *createOrderInput, userID string) (*models.Order, error) {
	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": input.ProductID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, errProductNotFound
	}
	if err != nil {
		return nil, err
	}

	zone, charge := models.NormalizeZone(input.DeliveryZone)
	if input.DeliveryCharge != nil && isFinite(*input.DeliveryCharge) && *input.DeliveryCharge >= 0 {
		if *input.DeliveryCharge != charge {
			log.Printf("order for product %s: caller overrode delivery charge %.2f -> %.2f", input.ProductID, charge, *input.DeliveryCharge)
		}
		charge = *input.DeliveryCharge
	}

	orderTotal := ComputeOrderTotal(product.BasePrice, input.Quantity, charge)
	amount := orderTotal
	if input.BillingAmount != nil && isFinite(*input.BillingAmount) {
		amount = *input.BillingAmount
	}

	invoiceNumber := input.InvoiceNumber
	if invoiceNumber == "" {
		invoiceNumber = MintInvoiceNumber()
	}
	batchID := input.BatchID
	if batchID == "" {
		batchID = invoiceNumber
	}

	now := time.Now()
	order := &models.Order{
		OrderID:         "o" + utils.GenerateID(12),
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerEmail:   strings.TrimSpace(input.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		UserID:          userID,
		ProductID:       product.ProductID,
		Quantity:        input.Quantity,
		Size:            input.Size,
		PaperType:       input.PaperType,
		Notes:           strings.TrimSpace(input.Notes),
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		DeliveryZone:    zone,
		DeliveryCharge:  charge,
		Status:          models.StatusPending,
		Billing: models.Billing{
			Number:      invoiceNumber,
			Amount:      &amount,
			GeneratedAt: &now,
		},
		CancelRequest: models.CancelRequest{Status: models.CancelNone},
		BatchID:       batchID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		return nil, err
	}
	order.Product = product.Summary()
	return order, nil
}

type batchItemInput struct {
	ProductID string `json:"productid"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	PaperType string `json:"paperType"`
	Notes     string `json:"notes"`
}

type createBatchInput struct {
	CustomerName    string           `json:"customerName"`
	CustomerEmail   string           `json:"customerEmail"`
	CustomerPhone   string           `json:"customerPhone"`
	ShippingAddress string           `json:"shippingAddress"`
	DeliveryZone    string           `json:"deliveryZone"`
	AccountPassword string           `json:"accountPassword"`
	Items           []batchItemInput `json:"items"`
}

// buildBatchInputs expands the batch payload into per-item order inputs.
// Every item is validated here, before any document or account is written.
// Delivery is charged once, on the first line item.
func buildBatchInputs(input *createBatchInput, invoiceNumber, batchID string) ([]*createOrderInput, string) {
	zeroCharge := 0.0
	inputs := make([]*createOrderInput, 0, len(input.Items))
	for i, item := range input.Items {
		itemInput := &createOrderInput{
			CustomerName:    input.CustomerName,
			CustomerEmail:   input.CustomerEmail,
			CustomerPhone:   input.CustomerPhone,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			Size:            item.Size,
			PaperType:       item.PaperType,
			Notes:           item.Notes,
			ShippingAddress: input.ShippingAddress,
			DeliveryZone:    input.DeliveryZone,
			InvoiceNumber:   invoiceNumber,
			BatchID:         batchID,
		}
		if msg := itemInput.validate(); msg != "" {
			return nil, fmt.Sprintf("Item %d: %s", i+1, msg)
		}
		if i > 0 {
			itemInput.DeliveryCharge = &zeroCharge
		}
		inputs = append(inputs, itemInput)
	}
	return inputs, ""
}

// loadBatchProducts resolves every referenced product. The second return is
// the index of the first item whose product is missing, or -1.
func loadBatchProducts(ctx context.Context, inputs []*createOrderInput) (map[string]models.Product, int, error) {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ProductID)
	}

	cursor, err := db.ProductCollection.Find(ctx, bson.M{"productid": bson.M{"$in": ids}})
	if err != nil {
		return nil, -1, err
	}
	var docs []models.Product
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, -1, err
	}

	products := make(map[string]models.Product, len(docs))
	for _, p := range docs {
		products[p.ProductID] = p
	}
	for i, in := range inputs {
		if _, ok := products[in.ProductID]; !ok {
			return nil, i, nil
		}
	}
	return products, -1, nil
}

// batchGrandTotal sums every line item plus the one delivery charge. This
// is what the whole batch costs, persisted as the primary order's billing
// amount so the invoice total covers every line.
func batchGrandTotal(products map[string]models.Product, inputs []*createOrderInput, charge float64) float64 {
	subtotal := 0.0
	for _, in := range inputs {
		p := products[in.ProductID]
		subtotal += p.BasePrice * float64(in.Quantity)
	}
	return utils.Round2(subtotal + charge)
}

// CreateOrderBatch places a multi-item checkout: one order document per
// item, sharing a batch id and invoice number. The whole batch is validated
// and priced before the guest account or any order is written. Writes are
// independent; a failure partway leaves prior items persisted.
func CreateOrderBatch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input createBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if len(input.Items) == 0 {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "At least one item is required")
		return
	}

	batchID := uuid.New().String()
	invoiceNumber := MintInvoiceNumber()

	inputs, msg := buildBatchInputs(&input, invoiceNumber, batchID)
	if msg != "" {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	products, missing, err := loadBatchProducts(ctx, inputs)
	if err != nil {
		log.Println("batch product lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order batch")
		return
	}
	if missing >= 0 {
		utils.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("Item %d: selected product could not be found", missing+1))
		return
	}

	_, charge := models.NormalizeZone(input.DeliveryZone)
	grandTotal := batchGrandTotal(products, inputs, charge)
	inputs[0].BillingAmount = &grandTotal

	userID := utils.GetUserIDFromRequest(r)
	var account *auth.AuthPayload

	if userID == "" {
		if input.CustomerEmail == "" || len(input.AccountPassword) < 6 {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Email and a password of at least 6 characters are required for guest checkout")
			return
		}
		user, token, err := auth.EnsureAccount(ctx, input.CustomerName, input.CustomerEmail, input.AccountPassword, input.CustomerPhone, input.ShippingAddress)
		if err == auth.ErrEmailTaken {
			utils.RespondWithError(w, http.StatusConflict, "An account with this email already exists. Please sign in to continue.")
			return
		}
		if err != nil {
			log.Println("guest account creation error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create account")
			return
		}
		userID = user.UserID
		account = &auth.AuthPayload{Token: token, User: user.Summary()}
	}

	created := make([]*models.Order, 0, len(inputs))
	for i, itemInput := range inputs {
		order, err := insertOrder(ctx, itemInput, userID)
		if err == errProductNotFound {
			utils.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("Item %d: selected product could not be found", i+1))
			return
		}
		if err != nil {
			log.Printf("batch %s: item %d failed after %d created: %v", batchID, i+1, len(created), err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create order batch")
			return
		}
		created = append(created, order)
	}

	mq.Emit(ctx, mq.OrderEvent{
		Type:     mq.OrderBatchCreated,
		EntityID: invoiceNumber,
		BatchID:  batchID,
		UserID:   userID,
		Status:   string(models.StatusPending),
	})

	resp := utils.M{"message": "Order batch created", "batchId": batchID, "invoiceNumber": invoiceNumber, "orders": created}
	if account != nil {
		resp["account"] = account
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// ListOrders returns every order, newest first, for staff.
func ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listOrders(w, r, bson.M{})
}

// ListMyOrders returns the caller's orders, newest first.
func ListMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	listOrders(w, r, bson.M{"userid": userID})
}

func listOrders(w http.ResponseWriter, r *http.Request, filter bson.M) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.OrderCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		log.Println("list orders error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error processing orders")
		return
	}

	if err := AttachSummaries(ctx, orders); err != nil {
		log.Println("attach summaries error:", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orders": orders})
}

// AttachSummaries joins product, customer and cancellation-resolver
// summaries onto the given orders.
func AttachSummaries(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	productIDs := make([]string, 0, len(orders))
	userIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		if o.ProductID != "" {
			productIDs = append(productIDs, o.ProductID)
		}
		if o.UserID != "" {
			userIDs = append(userIDs, o.UserID)
		}
		if o.CancelRequest.ResolvedBy != "" {
			userIDs = append(userIDs, o.CancelRequest.ResolvedBy)
		}
	}

	products := map[string]*models.ProductSummary{}
	cursor, err := db.ProductCollection.Find(ctx, bson.M{"productid": bson.M{"$in": productIDs}})
	if err != nil {
		return err
	}
	var productDocs []models.Product
	if err := cursor.All(ctx, &productDocs); err != nil {
		return err
	}
	for i := range productDocs {
		products[productDocs[i].ProductID] = productDocs[i].Summary()
	}

	users := map[string]*models.UserSummary{}
	cursor, err = db.UserCollection.Find(ctx, bson.M{"userid": bson.M{"$in": userIDs}})
	if err != nil {
		return err
	}
	var userDocs []models.User
	if err := cursor.All(ctx, &userDocs); err != nil {
		return err
	}
	for i := range userDocs {
		users[userDocs[i].UserID] = userDocs[i].Summary()
	}

	for i := range orders {
		orders[i].Product = products[orders[i].ProductID]
		orders[i].User = users[orders[i].UserID]
		if resolver := orders[i].CancelRequest.ResolvedBy; resolver != "" {
			orders[i].ResolvedBy = users[resolver]
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
