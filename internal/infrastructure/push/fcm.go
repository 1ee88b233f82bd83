package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goodspace/oneshot-server/internal/config"
)

const defaultEndpoint = "https://fcm.googleapis.com/fcm/send"

// FCMSender delivers push messages through the FCM HTTP API.
type FCMSender struct {
	endpoint  string
	serverKey string
	client    *http.Client
	logger    *zap.Logger
}

// NewFCMSender builds a sender from config. Returns nil when push is
// disabled so callers can wire a persist-only notification path.
func NewFCMSender(cfg *config.PushConfig, logger *zap.Logger) *FCMSender {
	if !cfg.Enabled {
		logger.Info("Push delivery disabled, notifications are persist-only")
		return nil
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &FCMSender{
		endpoint:  endpoint,
		serverKey: cfg.ServerKey,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

type fcmMessage struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
}

// Send pushes one message to the device token.
func (s *FCMSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	payload, err := json.Marshal(fcmMessage{
		To:           token,
		Notification: fcmNotification{Title: title, Body: body},
		Data:         data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal fcm message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build fcm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.serverKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call fcm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("fcm returned status %d: %s", resp.StatusCode, string(raw))
	}

	var result fcmResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode fcm response: %w", err)
	}
	if result.Failure > 0 {
		return fmt.Errorf("fcm rejected the message")
	}

	s.logger.Debug("Push message delivered", zap.String("title", title))
	return nil
}
