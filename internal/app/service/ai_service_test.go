package service

import (
	"context"
	"strings"
	"testing"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildImagePrompt_Mungtigi(t *testing.T) {
	prompt := BuildImagePrompt(model.GenerationConfig{Cut: model.CutMungtigi, CookingState: model.CookingRaw})

	assert.Contains(t, prompt, "gelatinous, sticky sheen")
	assert.NotContains(t, prompt, "snowflake marbling")
	assert.Contains(t, prompt, "Single premium cut, hero shot.")
	assert.Contains(t, prompt, "Subject: Raw "+string(model.CutMungtigi)+" Hanwoo beef.")
}

func TestBuildImagePrompt_Platter(t *testing.T) {
	prompt := BuildImagePrompt(model.GenerationConfig{Cut: model.CutPlatter})

	assert.Contains(t, prompt, "snowflake marbling")
	assert.Contains(t, prompt, "artfully arranged platter")
	assert.NotContains(t, prompt, "hero shot")
}

func TestBuildImagePrompt_GiftSetIsPlatter(t *testing.T) {
	assert.Equal(t, platterComposition, CompositionPrompt(model.CutGiftSet))
	assert.Equal(t, platterComposition, CompositionPrompt("Premium Modem Set"))
}

func TestBuildImagePrompt_OtherCut(t *testing.T) {
	prompt := BuildImagePrompt(model.GenerationConfig{Cut: model.CutSirloin})

	assert.Contains(t, prompt, "snowflake marbling")
	assert.Contains(t, prompt, "Single premium cut, hero shot.")
}

func TestBuildImagePrompt_Ceremonial(t *testing.T) {
	cfg := model.GenerationConfigFor(model.Product{Cut: model.CutGiftSet, Category: model.CategoryCeremonial})
	prompt := BuildImagePrompt(cfg)

	assert.Contains(t, prompt, "gift box")
	assert.Contains(t, prompt, "Garnished")
}

func TestAIService_Disabled(t *testing.T) {
	ai := NewAIService(nil)
	assert.False(t, ai.Enabled())

	_, err := ai.Chat(context.Background(), nil, "안녕하세요")
	assert.ErrorIs(t, err, ErrAIDisabled)

	_, err = ai.GenerateImage(context.Background(), model.GenerationConfig{Cut: model.CutYukhoe})
	assert.ErrorIs(t, err, ErrAIDisabled)
}

func TestAIService_Chat_SendsPersonaAndHistory(t *testing.T) {
	client := &fakeGenerativeClient{reply: "최고의 선택이십니다."}
	ai := NewAIService(client)

	history := model.NewChatTranscript(fixedNow()).Messages
	reply, err := ai.Chat(context.Background(), history, "선물용 추천해주세요")
	require.NoError(t, err)
	assert.Equal(t, "최고의 선택이십니다.", reply)

	assert.Equal(t, ButcherPersona, client.system)
	require.Len(t, client.turns, 2)
	assert.Equal(t, gemini.RoleModel, client.turns[0].Role)
	assert.Equal(t, model.ChatGreeting, client.turns[0].Text)
	assert.Equal(t, gemini.RoleUser, client.turns[1].Role)
	assert.Equal(t, "선물용 추천해주세요", client.turns[1].Text)
}

func TestAIService_Chat_Error(t *testing.T) {
	ai := NewAIService(&fakeGenerativeClient{err: errGatewayDown})

	_, err := ai.Chat(context.Background(), nil, "hi")
	assert.ErrorIs(t, err, errGatewayDown)
}

func TestAIService_GenerateImage(t *testing.T) {
	client := &fakeGenerativeClient{image: &gemini.Image{Data: []byte{0x89, 0x50}, MIMEType: "image/png"}}
	ai := NewAIService(client)

	image, err := ai.GenerateImage(context.Background(), model.GenerationConfig{Cut: model.CutPlatter})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50}, image.Data)
	require.Len(t, client.prompts, 1)
	assert.True(t, strings.Contains(client.prompts[0], "platter"))
}

func TestAIService_GenerateImage_NoImage(t *testing.T) {
	ai := NewAIService(&fakeGenerativeClient{})

	_, err := ai.GenerateImage(context.Background(), model.GenerationConfig{Cut: model.CutPlatter})
	assert.ErrorIs(t, err, ErrNoImageInResponse)
}
