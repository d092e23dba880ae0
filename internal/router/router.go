package router

import (
	"time"

	"stallpos/internal/config"
	"stallpos/internal/handler"
	"stallpos/internal/middleware"
	"stallpos/internal/repository"
	"stallpos/internal/service"
	"stallpos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	rawRepo := repository.NewRawIngredientRepository(db)
	semiRepo := repository.NewSemiProcessedRepository(db)
	purchasedRepo := repository.NewPurchasedGoodRepository(db)
	skuRepo := repository.NewSkuRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	// Worker dispatcher — the async audit sink injected into mutating services
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	kitchenSvc := service.NewKitchenService(rawRepo, semiRepo, purchasedRepo, recipeRepo, ledgerRepo, dispatcher)
	availabilitySvc := service.NewAvailabilityService(rawRepo, semiRepo, purchasedRepo, recipeRepo, skuRepo)
	counterSvc := service.NewCounterService(rawRepo, semiRepo, purchasedRepo, recipeRepo, skuRepo, ledgerRepo, dispatcher)
	saleSvc := service.NewSaleService(skuRepo, txnRepo, dispatcher)
	alertSvc := service.NewAlertService(skuRepo, rawRepo, purchasedRepo)
	inventorySvc := service.NewInventoryService(rawRepo, semiRepo, purchasedRepo, dispatcher)
	catalogSvc := service.NewCatalogService(skuRepo, recipeRepo, rawRepo, semiRepo, purchasedRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	kitchenH := handler.NewKitchenHandler(kitchenSvc, availabilitySvc)
	counterH := handler.NewCounterHandler(counterSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	alertsH := handler.NewAlertsHandler(alertSvc)
	stockH := handler.NewStockHandler(inventorySvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	activityH := handler.NewActivityHandler(activityRepo, ledgerRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		kitchen := v1.Group("/kitchen")
		{
			kitchen.POST("/cook", kitchenH.CookBatch)
			kitchen.GET("/availability", kitchenH.CheckAvailability)
			kitchen.POST("/sweep", kitchenH.SweepExpired)
			kitchen.GET("/logs", activityH.ListCookingLogs)
		}

		counter := v1.Group("/counter")
		{
			counter.POST("/transfers", counterH.SendToCounter)
			counter.GET("/transfers", counterH.ListTransfers)
			counter.POST("/transfers/:id/receive", counterH.ReceiveTransfer)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", salesH.RecordTransaction)
			sales.POST("/single", salesH.RecordSingleSale)
			sales.GET("", salesH.ListTransactions)
			sales.GET("/:id", salesH.GetTransaction)
		}

		v1.GET("/alerts", alertsH.GetAlerts)
		v1.GET("/activity", activityH.ListActivity)

		stock := v1.Group("/stock")
		{
			stock.POST("/raw", stockH.CreateRawIngredient)
			stock.GET("/raw", stockH.ListRawIngredients)
			stock.GET("/raw/:id", stockH.GetRawIngredient)
			stock.PUT("/raw/:id", stockH.UpdateRawIngredient)
			stock.DELETE("/raw/:id", stockH.DeleteRawIngredient)
			stock.POST("/raw/:id/replenish", stockH.ReplenishRawIngredient)

			stock.POST("/purchased", stockH.CreatePurchasedGood)
			stock.GET("/purchased", stockH.ListPurchasedGoods)
			stock.DELETE("/purchased/:id", stockH.DeletePurchasedGood)
			stock.POST("/purchased/:id/restock", stockH.RestockPurchasedGood)

			stock.POST("/semi", stockH.CreateSemiProcessedItem)
			stock.GET("/semi", stockH.ListSemiProcessedItems)
			stock.GET("/semi/:id", stockH.GetSemiProcessedItem)
			stock.DELETE("/semi/:id", stockH.DeleteSemiProcessedItem)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.POST("/skus", catalogH.CreateSku)
			catalog.GET("/skus", catalogH.ListSkus)
			catalog.GET("/skus/:id", catalogH.GetSku)
			catalog.PUT("/skus/:id", catalogH.UpdateSku)
			catalog.DELETE("/skus/:id", catalogH.DeleteSku)
			catalog.GET("/skus/:id/recipe", catalogH.GetSkuRecipe)

			catalog.POST("/recipes/semi", catalogH.CreateSemiRecipe)
			catalog.GET("/recipes/semi", catalogH.ListSemiRecipes)
			catalog.GET("/recipes/semi/:id", catalogH.GetSemiRecipe)
			catalog.DELETE("/recipes/semi/:id", catalogH.DeleteSemiRecipe)

			catalog.POST("/recipes/sku", catalogH.CreateSkuRecipe)
			catalog.DELETE("/recipes/sku/:id", catalogH.DeleteSkuRecipe)
		}
	}

	return r
}
