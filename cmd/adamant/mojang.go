package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const authenticateURL = "https://authserver.mojang.com/authenticate"

// mojangAuth is the outcome of exchanging an email/password pair for a
// Yggdrasil session, grounded on original_source/src/bootstrap/mojang.rs's
// authenticate() (the "username" field of the request is the account's
// email, not the in-game name — that is not a typo, it is how Yggdrasil's
// legacy password auth is documented).
type mojangAuth struct {
	AccessToken string
	Username    string
	ProfileUUID string
}

type authenticateRequest struct {
	Agent       agentBlock `json:"agent"`
	Username    string     `json:"username"`
	Password    string     `json:"password"`
	RequestUser bool       `json:"requestUser"`
}

type agentBlock struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

type selectedProfile struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type authenticateResponse struct {
	AccessToken     string          `json:"accessToken"`
	SelectedProfile selectedProfile `json:"selectedProfile"`
}

// authenticateMojang exchanges an email/password pair for an access
// token and profile via the Yggdrasil authentication endpoint. This is
// bootstrap-level credential handling, not part of the core: spec.md §1
// explicitly scopes credential storage and authentication out of the
// core, which only ever receives an already-authenticated session.
func authenticateMojang(ctx context.Context, email, password string) (mojangAuth, error) {
	body, err := json.Marshal(authenticateRequest{
		Agent:       agentBlock{Name: "Minecraft", Version: 1},
		Username:    email,
		Password:    password,
		RequestUser: false,
	})
	if err != nil {
		return mojangAuth{}, fmt.Errorf("encode authenticate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, authenticateURL, bytes.NewReader(body))
	if err != nil {
		return mojangAuth{}, fmt.Errorf("create authenticate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return mojangAuth{}, fmt.Errorf("authenticate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return mojangAuth{}, fmt.Errorf("authenticate rejected, status %d", resp.StatusCode)
	}

	var out authenticateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return mojangAuth{}, fmt.Errorf("decode authenticate response: %w", err)
	}

	return mojangAuth{
		AccessToken: out.AccessToken,
		Username:    out.SelectedProfile.Name,
		ProfileUUID: out.SelectedProfile.ID,
	}, nil
}
