package model

import (
	"time"
)

type PaymentStatus string // 결제 상태 코드

const (
	PaymentStatusCompleted PaymentStatus = "completed" // 결제 완료
)

// Order is written once, when a simulated payment completes.
type Order struct {
	ID            string        `gorm:"primaryKey;type:varchar(36)" json:"id"`            // 주문 ID (UUID)
	OrderNumber   string        `gorm:"type:varchar(32);uniqueIndex" json:"order_number"` // 주문 번호
	SessionID     string        `gorm:"type:varchar(64);not null;index" json:"-"`         // 주문 세션 ID
	Subtotal      int64         `gorm:"not null" json:"subtotal"`                         // 상품 합계
	ShippingFee   int64         `gorm:"not null" json:"shipping_fee"`                     // 배송비
	Total         int64         `gorm:"not null" json:"total"`                            // 총 결제 금액
	PaymentMethod PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method"`  // 결제 수단 (card, bank)
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`  // 결제 상태
	TransactionID string        `gorm:"type:varchar(64);index" json:"transaction_id"`     // 결제 거래 ID
	RecipientName string        `gorm:"type:varchar(100);not null" json:"recipient_name"` // 수령인
	Phone         string        `gorm:"type:varchar(32);not null" json:"phone"`           // 연락처
	Address       string        `gorm:"type:text;not null" json:"address"`                // 주소
	AddressDetail string        `gorm:"type:text" json:"address_detail"`                  // 상세 주소
	DeliveryNote  string        `gorm:"type:text" json:"delivery_note,omitempty"`         // 배송 메모
	CompletedAt   time.Time     `json:"completed_at"`                                     // 결제 완료 시각
	CreatedAt     time.Time     `json:"created_at"`                                       // 생성 시각

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"` // 주문 항목 목록
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`                              // 주문 항목 ID
	OrderID     string    `gorm:"type:varchar(36);not null;index" json:"order_id"`   // 주문 ID
	ProductID   string    `gorm:"type:varchar(64);not null;index" json:"product_id"` // 상품 ID
	ProductName string    `gorm:"not null" json:"product_name"`                      // 상품명 스냅샷
	Cut         BeefCut   `gorm:"type:varchar(100)" json:"cut_type"`                 // 부위 스냅샷
	UnitPrice   int64     `gorm:"not null" json:"unit_price"`                        // 단가
	Quantity    int       `gorm:"not null" json:"quantity"`                          // 수량
	Subtotal    int64     `gorm:"not null" json:"subtotal"`                          // 항목 합계
	CreatedAt   time.Time `json:"created_at"`                                        // 생성 시각
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderItemsFromCart snapshots cart lines for an order.
func OrderItemsFromCart(cart Cart) []OrderItem {
	items := make([]OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Cut:         line.Product.Cut,
			UnitPrice:   line.Product.PriceValue(),
			Quantity:    line.Quantity,
			Subtotal:    line.Subtotal(),
		})
	}
	return items
}
