// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/jeranaias/tutor-tui/internal/model"
)

// identityClaims holds the subset of JWT claims the client cares about.
type identityClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// DecodeIdentityToken extracts display claims from a federated credential
// without verifying its signature. Verification belongs to the backend; the
// client only needs name and email for the sidebar footer, and it forwards
// the raw credential untouched as the bearer token.
func DecodeIdentityToken(credential string) (model.Identity, error) {
	parts := strings.Split(credential, ".")
	if len(parts) != 3 {
		return model.Identity{}, &ClientError{Type: ErrTypeInvalidResponse, Message: "malformed identity token"}
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return model.Identity{}, &ClientError{Type: ErrTypeInvalidResponse, Message: "malformed identity token", Cause: err}
	}

	var claims identityClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return model.Identity{}, &ClientError{Type: ErrTypeInvalidResponse, Message: "malformed identity token", Cause: err}
	}
	if claims.Email == "" {
		return model.Identity{}, &ClientError{Type: ErrTypeInvalidResponse, Message: "identity token missing email claim"}
	}

	return model.Identity{
		Name:    claims.Name,
		Email:   claims.Email,
		Picture: claims.Picture,
		Token:   credential,
	}, nil
}
