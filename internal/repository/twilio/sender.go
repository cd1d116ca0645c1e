package twilio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/check"
	v "github.com/NordCoder/Uptimer/internal/validation"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.twilio.com"

var ErrInvalidInput = errors.New("invalid sms input")

type Config struct {
	BaseURL    string        `mapstructure:"base_url"`
	AccountSID string        `mapstructure:"account_sid"`
	AuthToken  string        `mapstructure:"auth_token"`
	FromPhone  string        `mapstructure:"from_phone"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

var smsSchema = v.Schema{
	v.Required("phone", v.TypeOf(v.KindString), v.Regex(regexp.MustCompile(`^\s*\d{10}\s*$`)), v.MaxLength(10)),
	v.Required("message", v.TypeOf(v.KindString), v.MinLength(1), v.MaxLength(1600)),
}

var _ check.AlertSender = (*Sender)(nil)

// Sender delivers SMS through the Twilio REST API.
type Sender struct {
	cfg    Config
	client *http.Client
	log    *zap.Logger
}

func New(cfg Config) *Sender {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Sender{
		cfg: cfg,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: zap.L().With(zap.String("component", "twilio.sender")),
	}
}

func (s *Sender) WithLogger(l *zap.Logger) *Sender {
	if l == nil {
		return s
	}
	cp := *s
	cp.log = l.With(zap.String("component", "twilio.sender"))
	return &cp
}

// Send texts message to a 10 digit US phone number.
func (s *Sender) Send(ctx context.Context, phone, message string) error {
	rep := smsSchema.Validate(map[string]any{"phone": phone, "message": message})
	if !rep.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidInput, rep.Err())
	}
	data := rep.Extract(nil, false)
	to := "+1" + data["phone"].(string)
	body := data["message"].(string)

	form := url.Values{}
	form.Set("From", s.cfg.FromPhone)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(s.cfg.BaseURL, "/"), url.PathEscape(s.cfg.AccountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("twilio request failed", zap.Error(err))
		return fmt.Errorf("twilio request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		s.log.Warn("twilio rejected message", zap.Int("status", resp.StatusCode), zap.String("to", to))
		return fmt.Errorf("twilio: unexpected status %d", resp.StatusCode)
	}
	s.log.Debug("sms sent", zap.String("to", to), zap.Duration("elapsed", time.Since(start)))
	return nil
}
