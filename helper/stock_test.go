package helper

import (
	"testing"

	"github.com/BlckXI/sistema-restaurante/model"
	"github.com/BlckXI/sistema-restaurante/utils"
)

func TestApplyEffectiveStock(t *testing.T) {
	dishes := []model.Dish{
		{DTO: model.DTO{ID: 1}, Name: "Pollo Entero", Stock: 10},
		{DTO: model.DTO{ID: 2}, Name: "Medio Pollo", Stock: 0, ParentID: utils.Ptr(uint(1))},
		{DTO: model.DTO{ID: 3}, Name: "Agua", Stock: 24},
	}

	ApplyEffectiveStock(dishes)

	if dishes[1].Stock != 10 {
		t.Fatalf("variant stock = %d, want parent's 10", dishes[1].Stock)
	}
	if dishes[0].Stock != 10 || dishes[2].Stock != 24 {
		t.Fatal("owner rows must keep their own counters")
	}
}

func TestApplyEffectiveStockMissingParent(t *testing.T) {
	dishes := []model.Dish{
		{DTO: model.DTO{ID: 2}, Name: "Medio Pollo", Stock: 0, ParentID: utils.Ptr(uint(99))},
	}
	ApplyEffectiveStock(dishes)
	if dishes[0].Stock != 0 {
		t.Fatalf("variant with missing parent reported %d, want 0", dishes[0].Stock)
	}
}

func TestStockOwnerID(t *testing.T) {
	owner := model.Dish{DTO: model.DTO{ID: 7}}
	if got := owner.StockOwnerID(); got != 7 {
		t.Fatalf("owner id = %d, want 7", got)
	}
	variant := model.Dish{DTO: model.DTO{ID: 8}, ParentID: utils.Ptr(uint(7))}
	if got := variant.StockOwnerID(); got != 7 {
		t.Fatalf("variant owner id = %d, want 7", got)
	}
}
