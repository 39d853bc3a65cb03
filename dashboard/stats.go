package dashboard

import (
	"rongchapa/models"
	"rongchapa/utils"
)

// buildMetric pairs a count and amount with its share of totalOrders.
// A zero denominator yields 0, never NaN.
func buildMetric(count int64, amount float64, totalOrders int64) models.Metric {
	percentage := 0.0
	if totalOrders > 0 {
		percentage = utils.Round2(float64(count) / float64(totalOrders) * 100)
	}
	return models.Metric{
		Count:      count,
		Amount:     utils.Round2(amount),
		Percentage: percentage,
	}
}

func statusLookup(rows []models.StatusAggregate) map[string]models.StatusAggregate {
	lookup := make(map[string]models.StatusAggregate, len(rows))
	for _, row := range rows {
		lookup[row.Status] = row
	}
	return lookup
}

// AssembleStats folds the raw aggregation rows into the dashboard payload.
// Missing rows count as zero.
func AssembleStats(
	ordersCount, printOrdersCount int64,
	statusRows []models.StatusAggregate,
	approvedCancel models.StatusAggregate,
	completedPrints models.PrintAggregate,
	recentOrders []models.Order,
) models.DashboardStats {
	lookup := statusLookup(statusRows)
	delivered := lookup[string(models.StatusCompleted)]
	returned := lookup[string(models.StatusCancelled)]
	processing := lookup[string(models.StatusProcessing)]

	if recentOrders == nil {
		recentOrders = []models.Order{}
	}

	return models.DashboardStats{
		OrdersCount:          ordersCount,
		PrintOrdersCount:     printOrdersCount,
		CancelledOrdersCount: returned.Count,
		RecentOrders:         recentOrders,
		Overview: models.Overview{
			TotalCompletedOrders: delivered.Count + completedPrints.Count,
			TotalRevenue:         utils.Round2(delivered.Amount + completedPrints.Amount),
			PrintOrders: models.PrintOverview{
				Completed: completedPrints.Count,
				Revenue:   utils.Round2(completedPrints.Amount),
				Deposit:   utils.Round2(completedPrints.Deposit),
			},
		},
		Breakdown: models.Breakdown{
			Delivered:          buildMetric(delivered.Count, delivered.Amount, ordersCount),
			PaidReturn:         buildMetric(approvedCancel.Count, approvedCancel.Amount, ordersCount),
			Returned:           buildMetric(returned.Count, returned.Amount, ordersCount),
			DeliveryProcessing: buildMetric(processing.Count, processing.Amount, ordersCount),
		},
	}
}
