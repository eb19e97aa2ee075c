// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/log"
)

const bearerPrefix = "bearer "

// AuthMiddleware rejects requests without a valid bearer token. The
// authenticated editor is stored in the context and its principal added to the logs.
func AuthMiddleware(authenticator port.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := r.Header.Get("Authorization")
			if len(token) >= len(bearerPrefix) && strings.EqualFold(token[:len(bearerPrefix)], bearerPrefix) {
				token = strings.TrimSpace(token[len(bearerPrefix):])
			}

			editor, err := authenticator.Authenticate(ctx, token)
			if err != nil {
				slog.WarnContext(ctx, "request rejected", "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"name":    "Unauthorized",
					"message": err.Error(),
				})
				return
			}

			ctx = log.AppendCtx(ctx, slog.String(constants.PrincipalAttribute, editor.Principal))
			ctx = context.WithValue(ctx, constants.PrincipalContextID, editor)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EditorFromContext returns the editor set by AuthMiddleware
func EditorFromContext(ctx context.Context) (*model.Editor, bool) {
	editor, ok := ctx.Value(constants.PrincipalContextID).(*model.Editor)
	return editor, ok && editor != nil
}
