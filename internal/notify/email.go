package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

const DefaultSender = "onboarding@resend.dev"

// ResendSender posts to the Resend HTTP API.
type ResendSender struct {
	APIURL string
	APIKey string
	From   string
	Client *http.Client
}

type resendReq struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func NewResendSender(apiURL, apiKey, from string) *ResendSender {
	if apiURL == "" {
		apiURL = "https://api.resend.com"
	}
	if from == "" {
		from = DefaultSender
	}
	return &ResendSender{
		APIURL: apiURL,
		APIKey: apiKey,
		From:   from,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *ResendSender) Name() string { return "resend" }

func (s *ResendSender) Send(ctx context.Context, n Notification) error {
	if strings.TrimSpace(s.APIKey) == "" {
		return ErrNotConfigured
	}
	if n.EmailTo == "" || n.EmailHTML == "" {
		return ErrNothingToSend
	}

	b, err := json.Marshal(resendReq{
		From:    s.From,
		To:      []string{n.EmailTo},
		Subject: n.EmailSubject,
		HTML:    n.EmailHTML,
	})
	if err != nil {
		return err
	}

	url := strings.TrimRight(s.APIURL, "/") + "/emails"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return fmt.Errorf("resend: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// SMTPSender relays through a plain SMTP server with STARTTLS negotiated by
// net/smtp when offered.
type SMTPSender struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *SMTPSender) Name() string { return "smtp" }

func (s *SMTPSender) Send(ctx context.Context, n Notification) error {
	if s.cfg.Host == "" || s.cfg.From == "" {
		return ErrNotConfigured
	}
	if n.EmailTo == "" || n.EmailHTML == "" {
		return ErrNothingToSend
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	}
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	return s.sendMail(addr, auth, s.cfg.From, []string{n.EmailTo}, buildMIME(s.cfg.From, n))
}

func buildMIME(from string, n Notification) []byte {
	var b bytes.Buffer
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + n.EmailTo + "\r\n")
	b.WriteString("Subject: " + n.EmailSubject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(n.EmailHTML)
	return b.Bytes()
}
