package api

import (
	"net/http"

	respond "github.com/tradejournal/tradejournal-server/internal/api/respond"
	"github.com/tradejournal/tradejournal-server/internal/auth"
)

// AuthHandler exchanges an identity provider token for an API bearer token.
// The provider's ID token is itself the bearer, so the exchange only verifies it.
type AuthHandler struct {
	verifier auth.Verifier
}

func NewAuthHandler(v auth.Verifier) *AuthHandler { return &AuthHandler{verifier: v} }

type tokenRequest struct {
	IDToken string `json:"id_token"`
}

type tokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	User        auth.Identity `json:"user"`
}

// ExchangeFirebaseToken POST /auth/firebase
func (h *AuthHandler) ExchangeFirebaseToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, nil, err, "")
		return
	}
	if req.IDToken == "" {
		respond.WriteFieldError(w, "id_token", "id_token is required")
		return
	}
	id, err := h.verifier.Verify(r.Context(), req.IDToken)
	if err != nil {
		respond.WriteError(w, auth.StatusFor(err), "Invalid token: "+err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: req.IDToken,
		TokenType:   "bearer",
		User:        id,
	})
}
