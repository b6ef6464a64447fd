package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, transactionHandler *TransactionHandler, categoryHandler *CategoryHandler, analyticsHandler *AnalyticsHandler, ledgerHandler *LedgerHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Category routes
	categories := api.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/icons", categoryHandler.GetIcons)
	categories.POST("", categoryHandler.CreateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Analytics routes
	api.GET("/analytics", analyticsHandler.GetReport)

	// Ledger view routes
	ledger := api.Group("/ledger")
	ledger.GET("", ledgerHandler.GetView)
	ledger.GET("/balance", ledgerHandler.GetBalance)

	// WebSocket endpoint for live updates
	e.GET("/ws", wsHandler.HandleWS)
}
