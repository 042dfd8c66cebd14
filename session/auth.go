package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const joinURL = "https://sessionserver.mojang.com/session/minecraft/join"

type joinRequest struct {
	AccessToken     string `json:"accessToken"`
	SelectedProfile string `json:"selectedProfile"`
	ServerID        string `json:"serverId"`
}

// Join calls the Mojang session server's join endpoint so the game server
// can later verify this client via hasJoined. profileUUID must be the
// undashed 32-char profile id.
func Join(ctx context.Context, accessToken, profileUUID, serverHash string) error {
	body, err := json.Marshal(joinRequest{
		AccessToken:     accessToken,
		SelectedProfile: strings.ReplaceAll(profileUUID, "-", ""),
		ServerID:        serverHash,
	})
	if err != nil {
		return fmt.Errorf("session: encode join request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("session: create join request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("session: join request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("session: join rejected, status %d", resp.StatusCode)
	}
	return nil
}
