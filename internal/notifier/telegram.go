// Package notifier pushes session alerts to a chat and answers status commands.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTelegramAPI is the Bot API host.
const DefaultTelegramAPI = "https://api.telegram.org"

// Notifier delivers alert text somewhere a human will see it.
type Notifier interface {
	Send(text string) error
}

// NoopNotifier drops every message; used when no chat is configured.
type NoopNotifier struct{}

func (NoopNotifier) Send(string) error { return nil }

// TelegramNotifier posts alerts to one chat through the Bot API.
type TelegramNotifier struct {
	BaseURL      string
	BotToken     string
	ChatID       string
	Client       *http.Client
	RetryBackoff time.Duration // first wait in SendWithRetry, doubled per attempt
}

// NewTelegramNotifier creates a notifier; proxyURL may be empty.
func NewTelegramNotifier(botToken, chatID, proxyURL string) *TelegramNotifier {
	return &TelegramNotifier{
		BaseURL:      DefaultTelegramAPI,
		BotToken:     botToken,
		ChatID:       chatID,
		Client:       &http.Client{Timeout: 30 * time.Second, Transport: proxyTransport(proxyURL)},
		RetryBackoff: time.Second,
	}
}

func proxyTransport(proxyURL string) *http.Transport {
	tr := &http.Transport{}
	if proxyURL == "" {
		return tr
	}
	if u, err := url.Parse(proxyURL); err == nil {
		tr.Proxy = http.ProxyURL(u)
	} else {
		log.Printf("[WARN] ignoring invalid proxy %q: %v", proxyURL, err)
	}
	return tr
}

func (t *TelegramNotifier) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", strings.TrimRight(t.BaseURL, "/"), t.BotToken, method)
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send posts text, unformatted, to the configured chat.
func (t *TelegramNotifier) Send(text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: t.ChatID, Text: text})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	resp, err := t.Client.Post(t.endpoint("sendMessage"), "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	var ar apiResponse
	if json.Unmarshal(raw, &ar) == nil && ar.Description != "" {
		return fmt.Errorf("telegram sendMessage: status %d: %s", resp.StatusCode, ar.Description)
	}
	return fmt.Errorf("telegram sendMessage: status %d", resp.StatusCode)
}

// SendWithRetry makes up to maxRetries+1 attempts, waiting RetryBackoff,
// then twice that, and so on between them. Nothing waits after the last one.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	wait := t.RetryBackoff
	if wait <= 0 {
		wait = time.Second
	}
	var err error
	for attempt := 0; ; attempt++ {
		if err = t.Send(text); err == nil {
			return nil
		}
		if attempt >= maxRetries {
			break
		}
		log.Printf("[WARN] telegram send attempt %d/%d failed: %v, next in %v", attempt+1, maxRetries+1, err, wait)
		select {
		case <-ctx.Done():
			return fmt.Errorf("send aborted: %w", ctx.Err())
		case <-time.After(wait):
		}
		wait *= 2
	}
	return fmt.Errorf("send failed after %d attempts: %w", maxRetries+1, err)
}
