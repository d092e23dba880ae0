//go:build integration

package router_test

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v
//
// Covered flows:
//   - replenishable stock setup → recipe → cook → counter transfer → sale
//   - availability check before and after a cook
//   - expiry sweep over a freshly cooked batch (nothing expired yet)
//   - retired transfer receive endpoint returns 410

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"stallpos/internal/config"
	"stallpos/internal/infra"
	"stallpos/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor", "e2e")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("stallpos_test"),
		tcPostgres.WithUsername("stallpos"),
		tcPostgres.WithPassword("stallpos"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:                 8000,
		Env:                  "test",
		DatabaseURL:          pgURL,
		RedisURL:             rdURL,
		WorkerPoolSize:       1,
		SweepIntervalMinutes: 60,
		RateLimitPerMinute:   10000,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	srv := httptest.NewServer(router.New(cfg, db, rdb))
	t.Cleanup(srv.Close)
	return srv
}

func TestFullStallCycle(t *testing.T) {
	srv := setupTestServer(t)

	// 1. Raw ingredient
	var chicken struct {
		ID string `json:"id"`
	}
	resp := do(t, srv, http.MethodPost, "/v1/stock/raw", jsonBody(t, map[string]any{
		"name":          "raw chicken",
		"unit":          "kg",
		"current_stock": "10",
		"reorder_level": "2",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeJSON(t, resp, &chicken)

	// 2. Semi-processed recipe: 2 kg chicken -> 2 kg marinated chicken
	var recipe struct {
		ID string `json:"id"`
	}
	resp = do(t, srv, http.MethodPost, "/v1/catalog/recipes/semi", jsonBody(t, map[string]any{
		"output_name":        "marinated chicken",
		"output_quantity":    "2",
		"output_unit":        "kg",
		"holding_time_hours": 24,
		"ingredients": []map[string]any{
			{"ingredient_type": "raw", "ingredient_id": chicken.ID, "quantity": "2"},
		},
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeJSON(t, resp, &recipe)

	// 3. Availability before the cook
	var avail struct {
		AllAvailable bool `json:"all_available"`
	}
	resp = do(t, srv, http.MethodGet, fmt.Sprintf("/v1/kitchen/availability?recipe_id=%s&quantity=2", recipe.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &avail)
	assert.True(t, avail.AllAvailable)

	// 4. Cook one batch
	var cook struct {
		BatchID          string `json:"batch_id"`
		QuantityProduced string `json:"quantity_produced"`
	}
	resp = do(t, srv, http.MethodPost, "/v1/kitchen/cook", jsonBody(t, map[string]any{
		"recipe_id":  recipe.ID,
		"multiplier": "1",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeJSON(t, resp, &cook)
	assert.NotEmpty(t, cook.BatchID)

	// 5. SKU + SKU recipe consuming the cooked item
	var sku struct {
		ID string `json:"id"`
	}
	resp = do(t, srv, http.MethodPost, "/v1/catalog/skus", jsonBody(t, map[string]any{
		"name":                "chicken burger",
		"price":               "8.50",
		"low_stock_threshold": 2,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeJSON(t, resp, &sku)

	var semiItems struct {
		Data []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	resp = do(t, srv, http.MethodGet, "/v1/stock/semi", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &semiItems)
	require.Len(t, semiItems.Data, 1)

	resp = do(t, srv, http.MethodPost, "/v1/catalog/recipes/sku", jsonBody(t, map[string]any{
		"sku_id": sku.ID,
		"ingredients": []map[string]any{
			{"ingredient_type": "semiProcessed", "ingredient_id": semiItems.Data[0].ID, "quantity": "0.2"},
		},
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// 6. Transfer 5 burgers to the counter
	var transfer struct {
		CounterStock int `json:"counter_stock"`
	}
	resp = do(t, srv, http.MethodPost, "/v1/counter/transfers", jsonBody(t, map[string]any{
		"sku_id":   sku.ID,
		"quantity": 5,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeJSON(t, resp, &transfer)
	assert.Equal(t, 5, transfer.CounterStock)

	// 7. Sell 2 as a cart with fries-free single line
	var sale struct {
		TotalAmount     string `json:"total_amount"`
		TransactionType string `json:"transaction_type"`
	}
	resp = do(t, srv, http.MethodPost, "/v1/sales", jsonBody(t, map[string]any{
		"items": []map[string]any{
			{"sku_id": sku.ID, "quantity": 2},
		},
		"payment_method": "cash",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeJSON(t, resp, &sale)
	assert.Equal(t, "single_item", sale.TransactionType)
	assert.Equal(t, "17", sale.TotalAmount)

	// 8. Overselling the remainder fails with 409 and deducts nothing
	resp = do(t, srv, http.MethodPost, "/v1/sales", jsonBody(t, map[string]any{
		"items": []map[string]any{
			{"sku_id": sku.ID, "quantity": 10},
		},
	}))
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// 9. Sweep: the cooked batch is still fresh, nothing removed
	var sweep struct {
		BatchesRemoved int `json:"batches_removed"`
	}
	resp = do(t, srv, http.MethodPost, "/v1/kitchen/sweep", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &sweep)
	assert.Equal(t, 0, sweep.BatchesRemoved)

	// 10. Retired receive endpoint
	resp = do(t, srv, http.MethodPost, "/v1/counter/transfers/00000000-0000-0000-0000-000000000000/receive", nil)
	require.Equal(t, http.StatusGone, resp.StatusCode)
	resp.Body.Close()
}

func TestHealth(t *testing.T) {
	srv := setupTestServer(t)
	resp := do(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		OK bool `json:"ok"`
	}
	decodeJSON(t, resp, &body)
	assert.True(t, body.OK)
}
