package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/BlckXI/sistema-restaurante/config"
	"github.com/BlckXI/sistema-restaurante/database"
	"github.com/BlckXI/sistema-restaurante/handler"
	"github.com/BlckXI/sistema-restaurante/helper"
	"github.com/BlckXI/sistema-restaurante/model"
	"github.com/BlckXI/sistema-restaurante/router"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires postgres and redis)")
	}

	db, err := database.ConnectDB()
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}

	hub := handler.NewHub(config.Default("REDIS_ADDR", "localhost:6379"))
	go hub.Run()

	rule := helper.NewDayRule(config.Int("BUSINESS_TZ_OFFSET_HOURS", -6), 0)
	app := fiber.New()
	router.SetupRoutes(app, handler.New(db, hub, rule))
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	envelope := make(map[string]json.RawMessage)
	json.NewDecoder(resp.Body).Decode(&envelope)
	return resp, envelope
}

func seedDish(t *testing.T, db *gorm.DB, name string, price float64, stock int, parentID *uint) model.Dish {
	t.Helper()
	var category model.Category
	if err := db.First(&category).Error; err != nil {
		t.Fatalf("no seeded category: %v", err)
	}
	dish := model.Dish{
		Name:       fmt.Sprintf("%s %d", name, time.Now().UnixNano()),
		Price:      price,
		Stock:      stock,
		CategoryID: category.ID,
		ParentID:   parentID,
	}
	if err := db.Create(&dish).Error; err != nil {
		t.Fatalf("create dish: %v", err)
	}
	return dish
}

func TestCreateOrderShortageLeavesStockUntouched(t *testing.T) {
	app, db := setup(t)

	dish := seedDish(t, db, "Tacos", 3.5, 3, nil)

	resp, _ := doJSON(t, app, "POST", "/api/v1/orders", map[string]any{
		"customer": "Ana",
		"kind":     "dine_in",
		"items":    []map[string]any{{"dishId": dish.ID, "qty": 4}},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var after model.Dish
	if err := db.First(&after, dish.ID).Error; err != nil {
		t.Fatalf("reload dish: %v", err)
	}
	if after.Stock != 3 {
		t.Fatalf("stock after rejected order = %d, want 3", after.Stock)
	}
}

func TestSharedStockDebitAndVoidRoundTrip(t *testing.T) {
	app, db := setup(t)

	parent := seedDish(t, db, "Pollo Entero", 10, 10, nil)
	child := seedDish(t, db, "Medio Pollo", 6, 0, &parent.ID)

	resp, envelope := doJSON(t, app, "POST", "/api/v1/orders", map[string]any{
		"customer": "Luis",
		"kind":     "pickup",
		"items": []map[string]any{
			{"dishId": child.ID, "qty": 2},
			{"dishId": parent.ID, "qty": 2},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", resp.StatusCode, envelope["message"])
	}

	var order model.Order
	if err := json.Unmarshal(envelope["data"], &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if want := 10.0*2 + 6.0*2; order.Total != want {
		t.Fatalf("total = %v, want %v", order.Total, want)
	}

	var owner model.Dish
	db.First(&owner, parent.ID)
	if owner.Stock != 6 {
		t.Fatalf("shared stock after order = %d, want 6", owner.Stock)
	}

	resp, _ = doJSON(t, app, "PATCH", fmt.Sprintf("/api/v1/orders/%d/void", order.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("void status = %d, want 200", resp.StatusCode)
	}

	db.First(&owner, parent.ID)
	if owner.Stock != 10 {
		t.Fatalf("shared stock after void = %d, want 10", owner.Stock)
	}

	// Voiding twice must not restore twice.
	resp, _ = doJSON(t, app, "PATCH", fmt.Sprintf("/api/v1/orders/%d/void", order.ID), nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second void status = %d, want 409", resp.StatusCode)
	}
	db.First(&owner, parent.ID)
	if owner.Stock != 10 {
		t.Fatalf("stock after double void = %d, want 10", owner.Stock)
	}
}

func postDish(t *testing.T, app *fiber.App, db *gorm.DB, name string, stock int, parentID *uint) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var category model.Category
	if err := db.First(&category).Error; err != nil {
		t.Fatalf("no seeded category: %v", err)
	}
	body := map[string]any{
		"name":       fmt.Sprintf("%s %d", name, time.Now().UnixNano()),
		"price":      5.0,
		"stock":      stock,
		"categoryId": category.ID,
	}
	if parentID != nil {
		body["parentId"] = *parentID
	}
	return doJSON(t, app, "POST", "/api/v1/dishes", body)
}

func TestVariantCreatedWithZeroStock(t *testing.T) {
	app, db := setup(t)

	parent := seedDish(t, db, "Pupusa Revuelta", 1.5, 20, nil)

	resp, envelope := postDish(t, app, db, "Pupusa Doble", 7, &parent.ID)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", resp.StatusCode, envelope["message"])
	}

	var variant model.Dish
	if err := json.Unmarshal(envelope["data"], &variant); err != nil {
		t.Fatalf("decode dish: %v", err)
	}
	if variant.Stock != 0 {
		t.Fatalf("variant stock in response = %d, want 0", variant.Stock)
	}
	var stored model.Dish
	if err := db.First(&stored, variant.ID).Error; err != nil {
		t.Fatalf("reload variant: %v", err)
	}
	if stored.Stock != 0 {
		t.Fatalf("variant stock stored = %d, want 0", stored.Stock)
	}
}

func TestVariantCannotBeParent(t *testing.T) {
	app, db := setup(t)

	parent := seedDish(t, db, "Sopa de Res", 4, 10, nil)
	variant := seedDish(t, db, "Sopa Media", 2.5, 0, &parent.ID)

	resp, _ := postDish(t, app, db, "Sopa Cuarto", 0, &variant.ID)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDishCannotBeItsOwnParent(t *testing.T) {
	app, db := setup(t)

	dish := seedDish(t, db, "Casamiento", 3, 5, nil)

	resp, _ := doJSON(t, app, "PUT", fmt.Sprintf("/api/v1/dishes/%d", dish.ID),
		map[string]any{"parentId": dish.ID})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDetachVariantRestoresOwnStock(t *testing.T) {
	app, db := setup(t)

	parent := seedDish(t, db, "Yuca Frita", 2, 15, nil)
	variant := seedDish(t, db, "Yuca con Chicharron", 3, 0, &parent.ID)

	resp, envelope := doJSON(t, app, "PUT", fmt.Sprintf("/api/v1/dishes/%d", variant.ID),
		map[string]any{"parentId": 0, "stock": 8})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, envelope["message"])
	}

	var detached model.Dish
	if err := db.First(&detached, variant.ID).Error; err != nil {
		t.Fatalf("reload dish: %v", err)
	}
	if detached.ParentID != nil {
		t.Fatalf("parentId still set after detach: %d", *detached.ParentID)
	}
	if detached.Stock != 8 {
		t.Fatalf("stock after detach = %d, want 8", detached.Stock)
	}
}

func TestSharedStockShortageAcrossLines(t *testing.T) {
	app, db := setup(t)

	parent := seedDish(t, db, "Carne Asada", 8, 3, nil)
	child := seedDish(t, db, "Media Carne", 5, 0, &parent.ID)

	// Both lines drain the same counter; 2+2 must overdraw 3 even though
	// each line fits on its own.
	resp, _ := doJSON(t, app, "POST", "/api/v1/orders", map[string]any{
		"customer": "Pedro",
		"kind":     "dine_in",
		"items": []map[string]any{
			{"dishId": child.ID, "qty": 2},
			{"dishId": parent.ID, "qty": 2},
		},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var owner model.Dish
	db.First(&owner, parent.ID)
	if owner.Stock != 3 {
		t.Fatalf("shared stock after rejected order = %d, want 3", owner.Stock)
	}
}

func TestMarkReadyResponseCarriesItems(t *testing.T) {
	app, db := setup(t)

	dish := seedDish(t, db, "Enchiladas", 2, 10, nil)

	_, envelope := doJSON(t, app, "POST", "/api/v1/orders", map[string]any{
		"customer": "Mirna",
		"kind":     "dine_in",
		"items":    []map[string]any{{"dishId": dish.ID, "qty": 3}},
	})
	var created model.Order
	if err := json.Unmarshal(envelope["data"], &created); err != nil {
		t.Fatalf("decode order: %v", err)
	}

	resp, envelope := doJSON(t, app, "PATCH", fmt.Sprintf("/api/v1/orders/%d/ready", created.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ready status = %d, want 200", resp.StatusCode)
	}
	var ready model.Order
	if err := json.Unmarshal(envelope["data"], &ready); err != nil {
		t.Fatalf("decode ready order: %v", err)
	}
	if len(ready.Items) == 0 {
		t.Fatalf("ready order has no items, kitchen screens need the lines")
	}
}

func TestCloseDayStoresRecomputedCash(t *testing.T) {
	app, db := setup(t)

	_, reportEnv := doJSON(t, app, "GET", "/api/v1/reports/today", nil)
	var report helper.DailyReport
	if err := json.Unmarshal(reportEnv["data"], &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}

	resp, _ := doJSON(t, app, "POST", "/api/v1/reports/close", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("close status = %d, want 200", resp.StatusCode)
	}

	var row model.DailyClose
	if err := db.Where("date = ?", report.Date).First(&row).Error; err != nil {
		t.Fatalf("close row missing: %v", err)
	}
	if row.FinalAmount != report.CashOnHand {
		t.Fatalf("stored close = %v, report cash = %v", row.FinalAmount, report.CashOnHand)
	}
}
