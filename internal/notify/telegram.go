package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Telegram allows ~30 bot messages per second overall; stay well below.
const telegramPerSecond = 5

type TelegramSender struct {
	APIURL string
	Token  string
	ChatID string
	Client *http.Client

	limiter *rate.Limiter
}

type telegramReq struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

func NewTelegramSender(apiURL, token, chatID string) *TelegramSender {
	if apiURL == "" {
		apiURL = "https://api.telegram.org"
	}
	return &TelegramSender{
		APIURL:  apiURL,
		Token:   token,
		ChatID:  chatID,
		Client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(telegramPerSecond), 1),
	}
}

func (s *TelegramSender) Name() string { return "telegram" }

func (s *TelegramSender) Configured() bool {
	return strings.TrimSpace(s.Token) != "" && strings.TrimSpace(s.ChatID) != ""
}

func (s *TelegramSender) Send(ctx context.Context, n Notification) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	if n.ChatText == "" {
		return ErrNothingToSend
	}
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	b, err := json.Marshal(telegramReq{ChatID: s.ChatID, Text: n.ChatText, ParseMode: "HTML"})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(s.APIURL, "/"), s.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return fmt.Errorf("telegram: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
