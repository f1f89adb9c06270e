package model

import (
	"github.com/shopspring/decimal"
)

// =====================================================
// ENTITY: Order
// =====================================================

// Order là lịch sử đơn hàng storefront cấp cho session (chỉ đọc).
// Tiền luôn là decimal, không dùng float.
type Order struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	TrackingStep  int             `json:"trackingStep"`
	Items         []OrderItem     `json:"items"`
	Address       string          `json:"address"`
	PaymentMethod string          `json:"paymentMethod"`
}

type OrderItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
}

// Subtotal = price * quantity
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemsTotal cộng subtotal các item; dùng để đối chiếu với Total
func (o Order) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.Subtotal())
	}
	return sum
}

// =====================================================
// PROFILE STATS
// =====================================================

// Stats là số liệu hiển thị trên trang profile
type Stats struct {
	OrderCount int             `json:"orderCount"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
}

// Summarize tính số đơn và tổng chi tiêu tích lũy
func Summarize(orders []Order) Stats {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return Stats{
		OrderCount: len(orders),
		TotalSpent: total,
	}
}

// Clone trả về bản copy độc lập
func Clone(orders []Order) []Order {
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = o
		out[i].Items = append([]OrderItem(nil), o.Items...)
	}
	return out
}
