package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"nivesh/internal/handlers"
	"nivesh/internal/logger"
	"nivesh/internal/middleware"
	"nivesh/internal/models"
	"nivesh/internal/services"
	"nivesh/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

const pipelineKey = "test-pipeline-key"

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Bank{},
		&models.State{},
		&models.City{},
		&models.PropertyType{},
		&models.SubPropertyType{},
		&models.AreaPrice{},
		&models.GoldRate{},
		&models.FixedDeposit{},
		&models.GoldInvestment{},
		&models.RealEstateInvestment{},
		&models.StockPosition{},
		&models.StockTransaction{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	masterService := services.NewMasterService(db)
	fdService := services.NewFixedDepositService(db, masterService)
	goldService := services.NewGoldService(db, masterService)
	realEstateService := services.NewRealEstateService(db, masterService)
	stockService := services.NewStockService(db)
	portfolioService := services.NewPortfolioService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	masterHandler := handlers.NewMasterHandler(masterService)
	fdHandler := handlers.NewFixedDepositHandler(fdService, auditService)
	goldHandler := handlers.NewGoldHandler(goldService, auditService)
	realEstateHandler := handlers.NewRealEstateHandler(realEstateService, auditService)
	stockHandler := handlers.NewStockHandler(stockService, auditService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Scraper ingest routes
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(pipelineKey))
	pipeline.POST("/gold-rates", masterHandler.RecordGoldRate)
	pipeline.POST("/area-prices", masterHandler.CreateAreaPrice)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	master := protected.Group("/master")
	master.POST("/banks", masterHandler.CreateBank)
	master.GET("/banks", masterHandler.ListBanks)
	master.POST("/states", masterHandler.CreateState)
	master.GET("/states", masterHandler.ListStates)
	master.POST("/cities", masterHandler.CreateCity)
	master.GET("/cities", masterHandler.ListCities)
	master.POST("/property-types", masterHandler.CreatePropertyType)
	master.GET("/property-types", masterHandler.ListPropertyTypes)
	master.POST("/sub-property-types", masterHandler.CreateSubPropertyType)
	master.GET("/sub-property-types", masterHandler.ListSubPropertyTypes)
	master.POST("/area-prices", masterHandler.CreateAreaPrice)
	master.GET("/area-prices", masterHandler.ListAreaPrices)
	master.GET("/gold-rates/latest", masterHandler.LatestGoldRate)

	deposits := protected.Group("/fixed-deposits")
	deposits.POST("", fdHandler.Create)
	deposits.GET("", fdHandler.List)
	deposits.GET("/:id", fdHandler.Get)
	deposits.PUT("/:id", fdHandler.Update)
	deposits.DELETE("/:id", fdHandler.Delete)

	gold := protected.Group("/gold")
	gold.POST("", goldHandler.Create)
	gold.GET("", goldHandler.List)
	gold.GET("/:id", goldHandler.Get)
	gold.PUT("/:id", goldHandler.Update)
	gold.DELETE("/:id", goldHandler.Delete)

	realEstate := protected.Group("/real-estate")
	realEstate.POST("", realEstateHandler.Create)
	realEstate.GET("", realEstateHandler.List)
	realEstate.GET("/:id", realEstateHandler.Get)
	realEstate.PUT("/:id", realEstateHandler.Update)
	realEstate.DELETE("/:id", realEstateHandler.Delete)

	stocks := protected.Group("/stocks")
	stocks.POST("/buy", stockHandler.Buy)
	stocks.POST("/sell", stockHandler.Sell)
	stocks.GET("/positions", stockHandler.ListPositions)
	stocks.GET("/transactions", stockHandler.ListTransactions)

	portfolio := protected.Group("/portfolio")
	portfolio.GET("/summary", portfolioHandler.Summary)
	portfolio.GET("/top-gainers", portfolioHandler.TopGainers)
	portfolio.GET("/highest-growth/:sector", portfolioHandler.HighestGrowth)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// pipelineRequest makes an API-key-authenticated ingest request.
func (app *testApp) pipelineRequest(method, path, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(float64)
}

// seedMasterData creates the reference rows a test needs through the API.
func (app *testApp) seedMasterData(t *testing.T, token string) (bankID, stateID, cityID, propertyTypeID float64) {
	t.Helper()

	rec := app.request("POST", "/api/v1/master/banks", `{"name":"State Bank"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create bank failed: %d %s", rec.Code, rec.Body.String())
	}
	bankID = parseJSON(t, rec)["bank"].(map[string]interface{})["id"].(float64)

	rec = app.request("POST", "/api/v1/master/states", `{"name":"Karnataka"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create state failed: %d %s", rec.Code, rec.Body.String())
	}
	stateID = parseJSON(t, rec)["state"].(map[string]interface{})["id"].(float64)

	rec = app.request("POST", "/api/v1/master/cities",
		fmt.Sprintf(`{"name":"Bengaluru","state_id":%d}`, int(stateID)), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create city failed: %d %s", rec.Code, rec.Body.String())
	}
	cityID = parseJSON(t, rec)["city"].(map[string]interface{})["id"].(float64)

	rec = app.request("POST", "/api/v1/master/property-types", `{"name":"Residential"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create property type failed: %d %s", rec.Code, rec.Body.String())
	}
	propertyTypeID = parseJSON(t, rec)["property_type"].(map[string]interface{})["id"].(float64)

	return bankID, stateID, cityID, propertyTypeID
}
