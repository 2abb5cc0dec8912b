package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	authdomain "github.com/radixtech/quotehub/internal/auth/domain"
	catalogdomain "github.com/radixtech/quotehub/internal/catalog/domain"
	catalogrepository "github.com/radixtech/quotehub/internal/catalog/repository"
	"github.com/radixtech/quotehub/internal/money"
	quotedomain "github.com/radixtech/quotehub/internal/quote/domain"
	quoterepository "github.com/radixtech/quotehub/internal/quote/repository"
	quoteservice "github.com/radixtech/quotehub/internal/quote/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newQuoteTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authdomain.User{}, &catalogdomain.Product{}, &quotedomain.Quote{}))

	quoteSvc := quoteservice.New(quoteservice.Params{
		DB:          db,
		Log:         zap.NewNop(),
		Repo:        quoterepository.Provide(),
		CatalogRepo: catalogrepository.Provide(),
	})

	return &Server{quoteSvc: quoteSvc, log: zap.NewNop()}, db
}

// withUser stands in for AuthRequired so handler tests can pick the caller.
func withUser(user *authdomain.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextUserKey, user)
		c.Next()
	}
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.Error
}

func TestLoadQuote_OwnershipEnforced(t *testing.T) {
	srv, db := newQuoteTestServer(t)

	require.NoError(t, db.Create(&catalogdomain.Product{
		Model: "HUB-1", Description: "Hub", Category: "Hubs",
		Price: decimal.RequireFromString("79.99"), Stock: 10, Status: catalogdomain.StatusActive,
	}).Error)

	owner := &authdomain.User{ID: 1, Name: "John Doe", Role: authdomain.RoleUser}
	id, err := srv.quoteSvc.Save(context.Background(), principalFrom(owner), quotedomain.Payload{
		CustomerName: "Acme",
		Items:        []money.LineItem{{Model: "HUB-1", Price: decimal.RequireFromString("79.99"), Quantity: 1}},
	})
	require.NoError(t, err)

	serve := func(user *authdomain.User) *httptest.ResponseRecorder {
		router := gin.New()
		router.Use(ErrorHandlingMiddleware(), withUser(user))
		router.GET("/api/load-quote/:id", srv.LoadQuote)

		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/load-quote/"+id, nil))
		return resp
	}

	resp := serve(owner)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = serve(&authdomain.User{ID: 2, Name: "Mallory", Role: authdomain.RoleUser})
	require.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "forbidden", decodeError(t, resp).Type)

	resp = serve(&authdomain.User{ID: 3, Name: "Ada Admin", Role: authdomain.RoleAdmin})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestConfirmQuote_StockShortfall(t *testing.T) {
	srv, db := newQuoteTestServer(t)

	require.NoError(t, db.Create(&catalogdomain.Product{
		Model: "BULB-1", Description: "Bulb", Category: "Lighting",
		Price: decimal.RequireFromString("9.99"), Stock: 2, Status: catalogdomain.StatusActive,
	}).Error)

	admin := &authdomain.User{ID: 3, Name: "Ada Admin", Role: authdomain.RoleAdmin}
	id, err := srv.quoteSvc.Save(context.Background(), principalFrom(admin), quotedomain.Payload{
		CustomerName: "Acme",
		Items:        []money.LineItem{{Model: "BULB-1", Price: decimal.RequireFromString("9.99"), Quantity: 5}},
	})
	require.NoError(t, err)

	router := gin.New()
	router.Use(ErrorHandlingMiddleware(), withUser(admin))
	router.POST("/api/admin/quote/confirm/:id", srv.ConfirmQuote)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/admin/quote/confirm/"+id, nil))

	require.Equal(t, http.StatusBadRequest, resp.Code)
	payload := decodeError(t, resp)
	assert.Equal(t, "insufficient_stock", payload.Type)
	assert.Equal(t, "BULB-1", payload.Model)
	assert.Equal(t, 5, payload.Required)
	assert.Equal(t, 2, payload.Available)

	// The failed confirmation must not touch stock.
	var p catalogdomain.Product
	require.NoError(t, db.First(&p, "model = ?", "BULB-1").Error)
	assert.Equal(t, 2, p.Stock)
}

func TestCalculate_InvalidQuantity(t *testing.T) {
	srv, _ := newQuoteTestServer(t)

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	router.POST("/api/calculate", srv.Calculate)

	body := `{"items":[{"model":"HUB-1","price":"10.00","quantity":0}],"installationCost":"0","discountPercent":"0"}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "invalid_request", decodeError(t, resp).Type)
}
