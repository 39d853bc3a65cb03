package dashboard

import (
	"testing"

	"rongchapa/models"
)

func TestBuildMetric(t *testing.T) {
	m := buildMetric(3, 930, 10)
	if m.Count != 3 || m.Amount != 930 || m.Percentage != 30 {
		t.Fatalf("metric = %+v", m)
	}

	// a third of 10 rounds to two decimals
	m = buildMetric(1, 0, 3)
	if m.Percentage != 33.33 {
		t.Fatalf("percentage = %v, want 33.33", m.Percentage)
	}
}

func TestBuildMetricZeroDenominator(t *testing.T) {
	m := buildMetric(0, 0, 0)
	if m.Percentage != 0 {
		t.Fatalf("percentage = %v, want 0", m.Percentage)
	}
	// NaN would poison the JSON payload
	if m.Percentage != m.Percentage {
		t.Fatal("percentage is NaN")
	}
}

func TestAssembleStats(t *testing.T) {
	statusRows := []models.StatusAggregate{
		{Status: "completed", Count: 4, Amount: 1240},
		{Status: "cancelled", Count: 1, Amount: 310},
		{Status: "processing", Count: 3, Amount: 900},
	}
	approved := models.StatusAggregate{Count: 1, Amount: 310}
	prints := models.PrintAggregate{Count: 2, Amount: 160, Deposit: 40}

	stats := AssembleStats(10, 5, statusRows, approved, prints, nil)

	if stats.OrdersCount != 10 || stats.PrintOrdersCount != 5 {
		t.Fatalf("counts = %d / %d", stats.OrdersCount, stats.PrintOrdersCount)
	}
	if stats.CancelledOrdersCount != 1 {
		t.Fatalf("cancelled count = %d", stats.CancelledOrdersCount)
	}
	if stats.Overview.TotalCompletedOrders != 6 {
		t.Fatalf("total completed = %d, want 6", stats.Overview.TotalCompletedOrders)
	}
	if stats.Overview.TotalRevenue != 1400 {
		t.Fatalf("total revenue = %v, want 1400", stats.Overview.TotalRevenue)
	}
	if stats.Overview.PrintOrders.Deposit != 40 {
		t.Fatalf("print deposit = %v", stats.Overview.PrintOrders.Deposit)
	}
	if stats.Breakdown.Delivered.Percentage != 40 {
		t.Fatalf("delivered percentage = %v, want 40", stats.Breakdown.Delivered.Percentage)
	}
	if stats.Breakdown.PaidReturn.Count != 1 {
		t.Fatalf("paid return count = %d", stats.Breakdown.PaidReturn.Count)
	}
	if stats.Breakdown.DeliveryProcessing.Amount != 900 {
		t.Fatalf("processing amount = %v", stats.Breakdown.DeliveryProcessing.Amount)
	}
	// nil recent orders serialize as [], not null
	if stats.RecentOrders == nil {
		t.Fatal("recent orders is nil")
	}
}

func TestAssembleStatsEmptyStore(t *testing.T) {
	stats := AssembleStats(0, 0, nil, models.StatusAggregate{}, models.PrintAggregate{}, nil)

	if stats.Overview.TotalRevenue != 0 {
		t.Fatalf("revenue = %v", stats.Overview.TotalRevenue)
	}
	for name, m := range map[string]models.Metric{
		"delivered":  stats.Breakdown.Delivered,
		"paidReturn": stats.Breakdown.PaidReturn,
		"returned":   stats.Breakdown.Returned,
		"processing": stats.Breakdown.DeliveryProcessing,
	} {
		if m.Count != 0 || m.Amount != 0 || m.Percentage != 0 {
			t.Fatalf("%s metric = %+v, want zeros", name, m)
		}
	}
}
