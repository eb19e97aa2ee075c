// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package auth

import (
	"context"
	"errors"
	"testing"

	errs "github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConciseError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "single error",
			err:      errors.New("token is expired"),
			expected: "token is expired",
		},
		{
			name:     "two levels",
			err:      errors.New("could not parse the token: token is malformed"),
			expected: "could not parse the token: token is malformed",
		},
		{
			name:     "deeper causes are dropped",
			err:      errors.New("could not parse the token: go-jose/go-jose/jwt: validation failed: key id mismatch"),
			expected: "could not parse the token: validation failed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, conciseError(tc.err))
		})
	}
}

func TestHeimdallClaimsValidate(t *testing.T) {
	assert.Error(t, (&HeimdallClaims{}).Validate(context.Background()))
	assert.NoError(t, (&HeimdallClaims{Principal: "editor"}).Validate(context.Background()))
}

func TestJWTAuthRejectsInvalidToken(t *testing.T) {
	jwtAuth, err := NewJWTAuth(JWTAuthConfig{JWKSURL: "http://127.0.0.1:1/.well-known/jwks"})
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-token"} {
		editor, err := jwtAuth.Authenticate(context.Background(), token)
		require.Error(t, err)
		assert.Nil(t, editor)
		var unauthorized errs.Unauthorized
		assert.ErrorAs(t, err, &unauthorized)
	}
}

func TestJWTAuthConfigDefaults(t *testing.T) {
	config := JWTAuthConfig{Audience: "pages"}.withDefaults()
	assert.Equal(t, defaultJWKSURL, config.JWKSURL)
	assert.Equal(t, defaultIssuer, config.Issuer)
	assert.Equal(t, "pages", config.Audience)
}
