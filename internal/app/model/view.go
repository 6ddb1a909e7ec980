package model

import (
	"errors"
	"time"
)

type ViewMode string

const (
	ViewHome       ViewMode = "home"
	ViewPhilosophy ViewMode = "philosophy"
)

// NoticeDuration is how long a toast stays visible.
const NoticeDuration = 3 * time.Second

// Notice is a transient toast.
type Notice struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewNotice(message string, now time.Time) *Notice {
	return &Notice{Message: message, ExpiresAt: now.Add(NoticeDuration)}
}

func (n *Notice) Expired(now time.Time) bool {
	return n == nil || !now.Before(n.ExpiresAt)
}

// ViewState mirrors the storefront shell: which page is shown and which
// overlays are open.
type ViewState struct {
	Mode           ViewMode        `json:"view_mode"`
	ActiveCategory ProductCategory `json:"active_category"`
	CartOpen       bool            `json:"cart_open"`
	CheckoutOpen   bool            `json:"checkout_open"`
	ChatOpen       bool            `json:"chat_open"`
	CorporateOpen  bool            `json:"corporate_open"`
	MobileMenuOpen bool            `json:"mobile_menu_open"`
	Notice         *Notice         `json:"notice,omitempty"`
}

func DefaultViewState() ViewState {
	return ViewState{Mode: ViewHome, ActiveCategory: CategoryAll}
}

// WithoutExpiredNotice drops the toast once it has timed out.
func (s ViewState) WithoutExpiredNotice(now time.Time) ViewState {
	if s.Notice.Expired(now) {
		s.Notice = nil
	}
	return s
}

type ViewEventType string

const (
	EventShowHome          ViewEventType = "show_home"
	EventShowPhilosophy    ViewEventType = "show_philosophy"
	EventSelectCategory    ViewEventType = "select_category"
	EventFilterCategory    ViewEventType = "filter_category"
	EventOpenCart          ViewEventType = "open_cart"
	EventCloseCart         ViewEventType = "close_cart"
	EventStartCheckout     ViewEventType = "start_checkout"
	EventCloseCheckout     ViewEventType = "close_checkout"
	EventToggleChat        ViewEventType = "toggle_chat"
	EventCloseChat         ViewEventType = "close_chat"
	EventOpenCorporate     ViewEventType = "open_corporate"
	EventCloseCorporate    ViewEventType = "close_corporate"
	EventOpenMobileMenu    ViewEventType = "open_mobile_menu"
	EventCloseMobileMenu   ViewEventType = "close_mobile_menu"
	EventCheckoutSucceeded ViewEventType = "checkout_succeeded"
)

type ViewEvent struct {
	Type     ViewEventType   `json:"type"`
	Category ProductCategory `json:"category,omitempty"`
}

var (
	ErrUnknownViewEvent = errors.New("unknown view event")
	ErrUnknownCategory  = errors.New("unknown product category")
)

// Reduce applies one shell event. It never mutates s.
func Reduce(s ViewState, e ViewEvent) (ViewState, error) {
	switch e.Type {
	case EventShowHome:
		s.Mode = ViewHome
	case EventShowPhilosophy:
		s.Mode = ViewPhilosophy
	case EventSelectCategory:
		if !e.Category.IsValid() {
			return s, ErrUnknownCategory
		}
		s.ActiveCategory = e.Category
		s.Mode = ViewHome
		s.MobileMenuOpen = false
	case EventFilterCategory:
		if !e.Category.IsValid() {
			return s, ErrUnknownCategory
		}
		s.ActiveCategory = e.Category
	case EventOpenCart:
		s.CartOpen = true
	case EventCloseCart:
		s.CartOpen = false
	case EventStartCheckout:
		s.CartOpen = false
		s.CheckoutOpen = true
	case EventCloseCheckout:
		s.CheckoutOpen = false
	case EventToggleChat:
		s.ChatOpen = !s.ChatOpen
	case EventCloseChat:
		s.ChatOpen = false
	case EventOpenCorporate:
		s.CorporateOpen = true
	case EventCloseCorporate:
		s.CorporateOpen = false
	case EventOpenMobileMenu:
		s.MobileMenuOpen = true
	case EventCloseMobileMenu:
		s.MobileMenuOpen = false
	case EventCheckoutSucceeded:
		s.CheckoutOpen = false
		s.CartOpen = false
	default:
		return s, ErrUnknownViewEvent
	}
	return s, nil
}
