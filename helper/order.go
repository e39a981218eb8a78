package helper

import "github.com/BlckXI/sistema-restaurante/model"

// DeliverySurcharge is added once per delivery order.
const DeliverySurcharge = 0.50

// OrderTotal computes the amount charged for an order. Staff orders are
// always free; the surcharge applies to delivery orders only.
func OrderTotal(items []model.OrderItem, kind string) float64 {
	if kind == model.KindStaff {
		return 0
	}
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Qty)
	}
	if kind == model.KindDelivery {
		sum += DeliverySurcharge
	}
	return sum
}
