package model

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// DefaultShippingFee is the flat delivery charge in won.
const DefaultShippingFee int64 = 3500

type CheckoutStep string

const (
	StepDraft    CheckoutStep = "draft"
	StepPaying   CheckoutStep = "paying"
	StepComplete CheckoutStep = "complete"
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentBank PaymentMethod = "bank"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentCard || m == PaymentBank
}

func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCard:
		return "신용카드"
	case PaymentBank:
		return "무통장 입금"
	default:
		return ""
	}
}

var (
	ErrInvalidStep          = errors.New("checkout step does not allow this action")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrCheckoutLocked       = errors.New("payment already in progress")
)

// ShippingInfo is the delivery form. DeliveryNote is optional.
type ShippingInfo struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	AddressDetail string `json:"address_detail"`
	DeliveryNote  string `json:"delivery_note,omitempty"`
}

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "missing required fields: " + strings.Join(keys, ", ")
}

// Validate checks presence only; formats are not inspected.
func (s ShippingInfo) Validate() error {
	fields := FieldErrors{}
	if strings.TrimSpace(s.Name) == "" {
		fields["name"] = "수령인 성함을 입력해주세요"
	}
	if strings.TrimSpace(s.Phone) == "" {
		fields["phone"] = "연락처를 입력해주세요"
	}
	if strings.TrimSpace(s.Address) == "" {
		fields["address"] = "주소를 입력해주세요"
	}
	if strings.TrimSpace(s.AddressDetail) == "" {
		fields["address_detail"] = "상세 주소를 입력해주세요"
	}
	if len(fields) > 0 {
		return fields
	}
	return nil
}

// Checkout is the wizard state. Steps only move forward:
// draft -> paying -> complete.
//
// While Processing is set a payment approval is outstanding. Lines then holds
// the cart exactly as it was charged, and neither the cart nor the payment
// method may change until the checkout is closed.
type Checkout struct {
	Step            CheckoutStep  `json:"step"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	Shipping        ShippingInfo  `json:"shipping"`
	Processing      bool          `json:"processing,omitempty"`
	ProcessingSince *time.Time    `json:"processing_since,omitempty"`
	Lines           []CartLine    `json:"lines,omitempty"`
	OrderNumber     string        `json:"order_number,omitempty"`
	TransactionID   string        `json:"transaction_id,omitempty"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
}

func NewCheckout() *Checkout {
	return &Checkout{Step: StepDraft, PaymentMethod: PaymentCard}
}

func (c *Checkout) SubmitShipping(info ShippingInfo) error {
	if c.Step != StepDraft {
		return ErrInvalidStep
	}
	if err := info.Validate(); err != nil {
		return err
	}
	c.Shipping = info
	c.Step = StepPaying
	return nil
}

func (c *Checkout) SelectPaymentMethod(m PaymentMethod) error {
	if c.Processing {
		return ErrCheckoutLocked
	}
	if c.Step != StepPaying {
		return ErrInvalidStep
	}
	if !m.IsValid() {
		return ErrInvalidPaymentMethod
	}
	c.PaymentMethod = m
	return nil
}

// BeginPayment freezes cart and payment method for an approval.
func (c *Checkout) BeginPayment(cart Cart, orderNumber string, at time.Time) error {
	if c.Processing {
		return ErrCheckoutLocked
	}
	if c.Step != StepPaying {
		return ErrInvalidStep
	}
	c.Processing = true
	c.ProcessingSince = &at
	c.Lines = append([]CartLine(nil), cart.Lines...)
	c.OrderNumber = orderNumber
	return nil
}

// AbortPayment returns a declined payment to the paying step.
func (c *Checkout) AbortPayment() {
	c.Processing = false
	c.ProcessingSince = nil
	c.Lines = nil
	c.OrderNumber = ""
}

func (c *Checkout) Complete(transactionID string, at time.Time) error {
	if !c.Processing {
		return ErrInvalidStep
	}
	c.Processing = false
	c.ProcessingSince = nil
	c.Step = StepComplete
	c.TransactionID = transactionID
	c.CompletedAt = &at
	return nil
}

// Subtotal is the value of the frozen lines.
func (c *Checkout) Subtotal() int64 {
	return Cart{Lines: c.Lines}.TotalPrice()
}

func (c *Checkout) IsComplete() bool {
	return c != nil && c.Step == StepComplete
}

// Locked reports whether the cart behind this checkout must stay as it is.
func (c *Checkout) Locked() bool {
	return c != nil && (c.Processing || c.Step == StepComplete)
}
