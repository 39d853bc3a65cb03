package models

// StatusAggregate is one row of a $group over status.
type StatusAggregate struct {
	Status string  `bson:"_id"`
	Count  int64   `bson:"count"`
	Amount float64 `bson:"amount"`
}

// PrintAggregate is the completed-print-order rollup row.
type PrintAggregate struct {
	Count   int64   `bson:"count"`
	Amount  float64 `bson:"amount"`
	Deposit float64 `bson:"deposit"`
}

// Metric is a count/amount pair with its share of the aggregate total.
type Metric struct {
	Count      int64   `json:"count"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type PrintOverview struct {
	Completed int64   `json:"completed"`
	Revenue   float64 `json:"revenue"`
	Deposit   float64 `json:"deposit"`
}

type Overview struct {
	TotalCompletedOrders int64         `json:"totalCompletedOrders"`
	TotalRevenue         float64       `json:"totalRevenue"`
	PrintOrders          PrintOverview `json:"printOrders"`
}

type Breakdown struct {
	Delivered          Metric `json:"delivered"`
	PaidReturn         Metric `json:"paidReturn"`
	Returned           Metric `json:"returned"`
	DeliveryProcessing Metric `json:"deliveryProcessing"`
}

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	OrdersCount          int64     `json:"ordersCount"`
	PrintOrdersCount     int64     `json:"printOrdersCount"`
	CancelledOrdersCount int64     `json:"cancelledOrdersCount"`
	RecentOrders         []Order   `json:"recentOrders"`
	Overview             Overview  `json:"overview"`
	Breakdown            Breakdown `json:"breakdown"`
}
