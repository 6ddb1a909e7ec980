package model

import "time"

// Session is everything one storefront visitor has accumulated: the cart,
// the checkout wizard, the chat transcript, generated images and shell state.
type Session struct {
	ID        string            `json:"id"`
	Cart      Cart              `json:"cart"`
	Checkout  *Checkout         `json:"checkout,omitempty"`
	Chat      *ChatTranscript   `json:"chat,omitempty"`
	Images    map[string]string `json:"images,omitempty"` // product id -> image URL
	View      ViewState         `json:"view"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Cart:      Cart{Lines: []CartLine{}},
		Images:    map[string]string{},
		View:      DefaultViewState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Transcript returns the chat transcript, creating it with the greeting on
// first use.
func (s *Session) Transcript(now time.Time) *ChatTranscript {
	if s.Chat == nil {
		s.Chat = NewChatTranscript(now)
	}
	return s.Chat
}

func (s *Session) SetImage(productID, url string) {
	if s.Images == nil {
		s.Images = map[string]string{}
	}
	s.Images[productID] = url
}
