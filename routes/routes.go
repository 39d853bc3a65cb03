package routes

import (
	"net/http"

	"rongchapa/auth"
	"rongchapa/dashboard"
	"rongchapa/invoice"
	"rongchapa/live"
	"rongchapa/middleware"
	"rongchapa/orders"
	"rongchapa/printorders"
	"rongchapa/products"
	"rongchapa/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(middleware.Authenticate(auth.RefreshToken)))
	router.GET("/api/auth/profile", middleware.Authenticate(auth.GetProfile))
	router.PUT("/api/auth/profile", middleware.Authenticate(auth.UpdateProfile))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", products.ListProducts)
	router.GET("/api/categories", products.ListCategories)

	router.GET("/api/admin/products", middleware.RequireAdmin(products.ListAdminProducts))
	router.POST("/api/admin/products", middleware.RequireAdmin(products.CreateProduct))
	router.PUT("/api/admin/product/:productid", middleware.RequireAdmin(products.UpdateProduct))
	router.DELETE("/api/admin/product/:productid", middleware.RequireAdmin(products.DeleteProduct))
	router.POST("/api/admin/product/:productid/image", middleware.RequireAdmin(products.UploadProductImage))
	router.POST("/api/admin/categories", middleware.RequireAdmin(products.CreateCategory))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/orders", rl.Limit(middleware.OptionalAuth(orders.CreateOrder)))
	router.POST("/api/checkout/batch", rl.Limit(middleware.OptionalAuth(orders.CreateOrderBatch)))
	router.GET("/api/myorders", middleware.Authenticate(orders.ListMyOrders))
	router.POST("/api/order/:orderid/cancel-request", middleware.Authenticate(orders.RequestCancellation))
	router.GET("/api/order/:orderid/invoice", middleware.Authenticate(invoice.DownloadOrderInvoice))

	router.GET("/api/admin/orders", middleware.RequireAdmin(orders.ListOrders))
	router.PATCH("/api/admin/order/:orderid/status", middleware.RequireAdmin(orders.UpdateOrderStatus))
	router.PATCH("/api/admin/order/:orderid/billing", middleware.RequireAdmin(orders.UpdateOrderBilling))
	router.POST("/api/admin/order/:orderid/cancel-review", middleware.RequireAdmin(orders.ReviewCancellation))
}

func AddPrintOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/print-orders", rl.Limit(middleware.Authenticate(printorders.CreatePrintOrder)))
	router.GET("/api/myprintorders", middleware.Authenticate(printorders.ListMyPrintOrders))
	router.GET("/api/print-order/:printorderid/receipt", middleware.Authenticate(invoice.DownloadPrintReceipt))

	router.GET("/api/admin/print-orders", middleware.RequireAdmin(printorders.ListPrintOrders))
	router.PATCH("/api/admin/print-order/:printorderid/status", middleware.RequireAdmin(printorders.UpdatePrintOrderStatus))
	router.PATCH("/api/admin/print-order/:printorderid/billing", middleware.RequireAdmin(printorders.UpdatePrintOrderBilling))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/dashboard", middleware.RequireAdmin(dashboard.GetDashboard))
	router.GET("/api/admin/customers", middleware.RequireAdmin(dashboard.GetCustomers))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/admin/feed", middleware.RequireAdmin(live.AdminFeedHandler(hub)))
}
