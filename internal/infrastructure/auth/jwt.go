// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
	errs "github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

const (
	// PS256 is what the Heimdall JWT finalizer signs with
	signatureAlgorithm = validator.PS256

	defaultIssuer   = "heimdall"
	defaultAudience = "lfx-v2-blockplus-service"
	defaultJWKSURL  = "http://heimdall:4457/.well-known/jwks"

	jwksCacheTTL = 5 * time.Minute
	clockSkew    = 5 * time.Second
)

// JWTAuthConfig holds the settings of the token validation.
// Empty fields fall back to the Heimdall defaults.
type JWTAuthConfig struct {
	JWKSURL  string
	Issuer   string
	Audience string
}

func (c JWTAuthConfig) withDefaults() JWTAuthConfig {
	if c.JWKSURL == "" {
		c.JWKSURL = defaultJWKSURL
	}
	if c.Issuer == "" {
		c.Issuer = defaultIssuer
	}
	if c.Audience == "" {
		c.Audience = defaultAudience
	}
	return c
}

// HeimdallClaims are the custom claims added by Heimdall to editor tokens
type HeimdallClaims struct {
	Principal string `json:"principal"`
	Email     string `json:"email,omitempty"`
}

// Validate implements validator.CustomClaims
func (c *HeimdallClaims) Validate(ctx context.Context) error {
	if c.Principal == "" {
		return errors.New("principal must be provided")
	}
	return nil
}

// JWTAuth authenticates the editors of site pages
type JWTAuth struct {
	validator *validator.Validator
}

// Authenticate validates the token and returns the editor named by its claims
func (j *JWTAuth) Authenticate(ctx context.Context, token string) (*model.Editor, error) {
	if token == "" {
		return nil, errs.NewUnauthorized("bearer token is required")
	}

	validated, err := j.validator.ValidateToken(ctx, token)
	if err != nil {
		slog.WarnContext(ctx, "failed to validate JWT token", "error", err)
		return nil, errs.NewUnauthorized(conciseError(err))
	}

	claims, ok := validated.(*validator.ValidatedClaims)
	if !ok {
		return nil, errs.NewUnauthorized("failed to get validated authorization claims")
	}
	heimdall, ok := claims.CustomClaims.(*HeimdallClaims)
	if !ok {
		return nil, errs.NewUnauthorized("failed to get custom authorization claims")
	}

	slog.DebugContext(ctx, "authenticated editor", constants.PrincipalAttribute, heimdall.Principal)
	return &model.Editor{Principal: heimdall.Principal, Email: heimdall.Email}, nil
}

// conciseError keeps the first two levels of a validation error. Deeper
// causes may describe the keys and are not returned to clients.
func conciseError(err error) string {
	msg := strings.Replace(err.Error(), ": go-jose/go-jose/jwt", "", 1)
	parts := strings.SplitN(msg, ":", 3)
	if len(parts) < 3 {
		return msg
	}
	return parts[0] + ":" + parts[1]
}

// NewJWTAuth creates an authenticator validating Heimdall tokens against the JWKS endpoint
func NewJWTAuth(config JWTAuthConfig) (*JWTAuth, error) {
	config = config.withDefaults()

	jwksURL, err := url.Parse(config.JWKSURL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWKS URL: %w", err)
	}
	issuer, err := url.Parse(config.Issuer)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT issuer: %w", err)
	}
	provider := jwks.NewCachingProvider(issuer, jwksCacheTTL, jwks.WithCustomJWKSURI(jwksURL))

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		signatureAlgorithm,
		issuer.String(),
		[]string{config.Audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &HeimdallClaims{}
		}),
		validator.WithAllowedClockSkew(clockSkew),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the JWT validator: %w", err)
	}

	return &JWTAuth{validator: jwtValidator}, nil
}
