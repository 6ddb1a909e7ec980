package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-testing"

func TestGenerateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken("session-1", testSecret, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = GenerateSessionToken("", testSecret, time.Hour)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken("session-1", testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{
			name:    "Valid token",
			token:   token,
			secret:  testSecret,
			wantErr: nil,
		},
		{
			name:    "Invalid secret",
			token:   token,
			secret:  "wrong-secret",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "Invalid token format",
			token:   "invalid.token.format",
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "Empty token",
			token:   "",
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateSessionToken(tt.token, tt.secret)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
			} else {
				require.NoError(t, err)
				require.NotNil(t, claims)
				assert.Equal(t, "session-1", claims.SessionID)
				assert.True(t, claims.IssuedAt.Before(claims.ExpiresAt.Time))
			}
		})
	}
}

func TestExpiredSessionToken(t *testing.T) {
	token, err := GenerateSessionToken("session-1", testSecret, -time.Minute)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}
