package model

import "time"

type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

const (
	ChatGreeting   = "안녕하십니까. 牛아韓의 마스터 부처, 이 상 준입니다. 오늘 어떤 한우를 찾으십니까? 최고의 한우로 귀하의 품격을 증명해 드리겠습니다."
	ChatApology    = "상담량이 많아 답변이 늦어지고 있습니다. 잠시만 기다려 주십시오."
	ChatEmptyReply = "죄송합니다. 통신이 지연되었습니다. 잠시 후 다시 말씀해 주시겠습니까?"
)

type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatTranscript is append-only and always starts with the butcher's greeting.
type ChatTranscript struct {
	Messages []ChatMessage `json:"messages"`
}

func NewChatTranscript(now time.Time) *ChatTranscript {
	return &ChatTranscript{
		Messages: []ChatMessage{{Role: ChatRoleModel, Text: ChatGreeting, CreatedAt: now}},
	}
}

func (t *ChatTranscript) Append(role ChatRole, text string, at time.Time) ChatMessage {
	msg := ChatMessage{Role: role, Text: text, CreatedAt: at}
	t.Messages = append(t.Messages, msg)
	return msg
}
