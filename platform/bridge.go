package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"PinguinAgent/models"
)

// Bridge talks to the on-device OS shim over loopback HTTP. The shim owns
// the platform APIs (usage stats, overlay blocking); the agent only needs
// three operations from it.
type Bridge struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewBridge(baseURL string) *Bridge {
	return &Bridge{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// QueryEvents fetches the sorted foreground transitions for the window.
func (b *Bridge) QueryEvents(ctx context.Context, windowStart, windowEnd time.Time) ([]models.UsageEvent, error) {
	q := url.Values{}
	q.Set("start", windowStart.Format(time.RFC3339))
	q.Set("end", windowEnd.Format(time.RFC3339))

	var events []models.UsageEvent
	if err := b.get(ctx, "/usage/events?"+q.Encode(), &events); err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	return events, nil
}

// CurrentForegroundApp returns the package currently in the foreground, or
// empty when the screen is off or the launcher is showing.
func (b *Bridge) CurrentForegroundApp(ctx context.Context) (string, error) {
	var resp struct {
		AppPackage string `json:"app_package"`
	}
	if err := b.get(ctx, "/usage/foreground", &resp); err != nil {
		return "", fmt.Errorf("reading foreground app: %w", err)
	}
	return resp.AppPackage, nil
}

// SetBlockedApps replaces the shim's blocked set wholesale.
func (b *Bridge) SetBlockedApps(ctx context.Context, appPackages []string) error {
	payload, err := json.Marshal(map[string][]string{"app_packages": appPackages})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+"/enforcement/blocked", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("updating blocked set: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("blocker returned status %d", resp.StatusCode)
	}
	return nil
}

func (b *Bridge) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.BaseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("shim returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
