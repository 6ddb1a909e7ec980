package controller

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatController_GetTranscript(t *testing.T) {
	sf := setupStorefrontTest(t, nil)

	w := sf.do(t, http.MethodGet, "/chat", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	messages := decode(t, w)["messages"].([]interface{})
	require.Len(t, messages, 1)
	assert.Equal(t, model.ChatGreeting, messages[0].(map[string]interface{})["text"])
}

func TestChatController_SendMessage(t *testing.T) {
	sf := setupStorefrontTest(t, &stubGenerativeClient{reply: "꽃등심을 추천드립니다."})

	w := sf.do(t, http.MethodPost, "/chat", map[string]string{"message": "구이용 추천해주세요"})
	assert.Equal(t, http.StatusOK, w.Code)

	response := decode(t, w)
	assert.Equal(t, "구이용 추천해주세요", response["user"].(map[string]interface{})["text"])
	assert.Equal(t, "꽃등심을 추천드립니다.", response["reply"].(map[string]interface{})["text"])

	w = sf.do(t, http.MethodGet, "/chat", nil)
	assert.Len(t, decode(t, w)["messages"], 3)
}

func TestChatController_SendMessage_GatewayFailure(t *testing.T) {
	sf := setupStorefrontTest(t, &stubGenerativeClient{err: errors.New("503 from upstream")})

	w := sf.do(t, http.MethodPost, "/chat", map[string]string{"message": "안녕하세요"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.ChatApology, decode(t, w)["reply"].(map[string]interface{})["text"])
}

func TestChatController_SendMessage_Blank(t *testing.T) {
	sf := setupStorefrontTest(t, &stubGenerativeClient{reply: "x"})

	w := sf.do(t, http.MethodPost, "/chat", map[string]string{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_EMPTY_MESSAGE", decode(t, w)["error"])
}
