package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/pkg/gemini"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
	"github.com/jangheelee880707/wooahhan/pkg/metrics"
)

var (
	ErrAIDisabled        = errors.New("generative AI is not configured")
	ErrNoImageInResponse = errors.New("no image found in AI response")
)

// ButcherPersona 마스터 부처 상담 페르소나
const ButcherPersona = `당신은 대한민국 최고급 한우 전문점 '牛아韓(우아한)'의 마스터 부처 '이 상 준'입니다.
고객의 질문에 매우 정중하고 신뢰감 있는 어조로 답변하십시오.
우리는 오직 1++ No.9 등급(BMS 9)의 눈꽃 마블링이 피어난 최상급 한우만을 취급하며, 장인의 칼끝에서 완성되는 신선함을 가장 중요하게 여깁니다.`

const (
	leanMarblingPrompt = "Deep, dark ruby red colour with a unique gelatinous, sticky sheen. Very lean meat texture emphasizing freshness and density. Minimal visible fat, focusing on the rich red protein."
	snowMarblingPrompt = "Korean 1++ BMS No.9 (The Absolute Zenith of Marbling). Intricate, heavy snowflake marbling (Seol-hwa) evenly distributed throughout the red meat. The fat is pure white and crystalline, contrasting beautifully with the vibrant ruby-red meat. Looks like it melts in your mouth."

	heroComposition    = "Single premium cut, hero shot."
	platterComposition = "A luxurious, artfully arranged platter featuring multiple premium cuts (Salchi-sal, Kkot-deungsim, Galbi-sal). Perfectly sliced and fanned out to show the cross-section of the intense marbling. A true visual feast of various textures arranged on a large platter."
)

// GenerativeClient is the subset of the Gemini client the storefront uses.
type GenerativeClient interface {
	GenerateText(ctx context.Context, system string, turns []gemini.Turn) (string, error)
	GenerateImage(ctx context.Context, prompt string) (*gemini.Image, error)
}

// AIService is the stateless gateway to the generative model. It never retries.
type AIService interface {
	Enabled() bool
	Chat(ctx context.Context, history []model.ChatMessage, text string) (string, error)
	GenerateImage(ctx context.Context, cfg model.GenerationConfig) (*gemini.Image, error)
}

type aiService struct {
	client GenerativeClient
}

// NewAIService accepts a nil client; every call then fails with ErrAIDisabled.
func NewAIService(client GenerativeClient) AIService {
	return &aiService{client: client}
}

func (s *aiService) Enabled() bool {
	return s.client != nil
}

// Chat sends the persona, the prior transcript and the new message, and
// returns the model's reply. An empty reply is returned as "".
func (s *aiService) Chat(ctx context.Context, history []model.ChatMessage, text string) (reply string, err error) {
	if s.client == nil {
		return "", ErrAIDisabled
	}

	outcome := "error"
	defer metrics.ObserveGateway("chat", &outcome, time.Now())

	turns := make([]gemini.Turn, 0, len(history)+1)
	for _, msg := range history {
		turns = append(turns, gemini.Turn{Role: toGeminiRole(msg.Role), Text: msg.Text})
	}
	turns = append(turns, gemini.Turn{Role: gemini.RoleUser, Text: text})

	reply, err = s.client.GenerateText(ctx, ButcherPersona, turns)
	if err != nil {
		logger.Error("AI chat request failed", err, map[string]interface{}{
			"turns": len(turns),
		})
		return "", fmt.Errorf("chat generation failed: %w", err)
	}

	if strings.TrimSpace(reply) == "" {
		outcome = "empty"
	} else {
		outcome = "ok"
	}
	return reply, nil
}

// GenerateImage renders a product photo for cfg.
func (s *aiService) GenerateImage(ctx context.Context, cfg model.GenerationConfig) (*gemini.Image, error) {
	if s.client == nil {
		return nil, ErrAIDisabled
	}

	outcome := "error"
	defer metrics.ObserveGateway("image", &outcome, time.Now())

	image, err := s.client.GenerateImage(ctx, BuildImagePrompt(cfg))
	if err != nil {
		if errors.Is(err, gemini.ErrNoImage) {
			outcome = "empty"
			logger.Warn("AI response contained no image", map[string]interface{}{
				"cut": cfg.Cut,
			})
			return nil, ErrNoImageInResponse
		}
		logger.Error("AI image generation failed", err, map[string]interface{}{
			"cut": cfg.Cut,
		})
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	if image == nil || len(image.Data) == 0 {
		outcome = "empty"
		return nil, ErrNoImageInResponse
	}

	outcome = "ok"
	return image, nil
}

func toGeminiRole(role model.ChatRole) gemini.Role {
	if role == model.ChatRoleModel {
		return gemini.RoleModel
	}
	return gemini.RoleUser
}

// MarblingPrompt picks the fat description: lean for Mungtigi, snowflake otherwise.
func MarblingPrompt(cut model.BeefCut) string {
	if strings.Contains(string(cut), "Mungtigi") {
		return leanMarblingPrompt
	}
	return snowMarblingPrompt
}

// CompositionPrompt picks a multi-cut platter for sets, a single hero cut otherwise.
func CompositionPrompt(cut model.BeefCut) string {
	c := string(cut)
	if strings.Contains(c, "Platter") || strings.Contains(c, "Gift Set") || strings.Contains(c, "Modem") {
		return platterComposition
	}
	return heroComposition
}

// BuildImagePrompt 상품 사진 생성 프롬프트
func BuildImagePrompt(cfg model.GenerationConfig) string {
	var prompt strings.Builder

	prompt.WriteString("High-end commercial food photography for a luxury Michelin-star butcher shop.\n")
	prompt.WriteString(fmt.Sprintf("Subject: %s %s Hanwoo beef.\n", cookingLabel(cfg.CookingState), cfg.Cut))
	prompt.WriteString("Marbling Focus: " + MarblingPrompt(cfg.Cut) + "\n")
	prompt.WriteString("Composition: " + CompositionPrompt(cfg.Cut) + "\n")
	prompt.WriteString("Setting: Placed on a premium dark matte slate or handcrafted black ceramic plate, glistening with freshness.")
	if cfg.Garnish {
		prompt.WriteString(" Garnished with coarse sea salt, fresh wasabi and a sprig of herbs.")
	}
	if cfg.IsCeremonial {
		prompt.WriteString(" Presented in a lacquered wooden gift box wrapped with traditional Korean bojagi cloth.")
	}
	prompt.WriteString("\n")
	prompt.WriteString("Lighting: Dramatic cinematic lighting, soft high-contrast side-lighting to highlight the depth of the meat's grain and the crystalline fat structures.\n")
	prompt.WriteString("Atmosphere: Ultra-premium, expensive, sophisticated, cold freshness (subtle mist).\n")
	prompt.WriteString("Technical: 8k resolution, highly detailed, photorealistic, macro photography depth of field, Phase One camera quality.")

	return prompt.String()
}

func cookingLabel(state model.CookingState) string {
	switch state {
	case model.CookingCooking:
		return "Sizzling"
	case model.CookingCooked:
		return "Perfectly seared"
	default:
		return "Raw"
	}
}
