package twilio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captured struct {
	path, user, pass, ctype string
	form                    map[string]string
}

func newServer(t *testing.T, status int) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.user, got.pass, _ = r.BasicAuth()
		got.ctype = r.Header.Get("Content-Type")
		assert.NoError(t, r.ParseForm())
		got.form = map[string]string{
			"From": r.PostForm.Get("From"),
			"To":   r.PostForm.Get("To"),
			"Body": r.PostForm.Get("Body"),
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func newSender(baseURL string) *Sender {
	return New(Config{
		BaseURL:    baseURL,
		AccountSID: "AC123",
		AuthToken:  "secret",
		FromPhone:  "+15550000000",
	}).WithLogger(zap.NewNop())
}

func TestSendRequestShape(t *testing.T) {
	srv, got := newServer(t, http.StatusCreated)

	err := newSender(srv.URL).Send(context.Background(), "5551234567", "  site is down  ")
	require.NoError(t, err)

	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", got.path)
	assert.Equal(t, "AC123", got.user)
	assert.Equal(t, "secret", got.pass)
	assert.Equal(t, "application/x-www-form-urlencoded", got.ctype)
	assert.Equal(t, "+15550000000", got.form["From"])
	assert.Equal(t, "+15551234567", got.form["To"])
	assert.Equal(t, "site is down", got.form["Body"])
}

func TestSendStatusMapping(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated} {
		srv, _ := newServer(t, status)
		assert.NoError(t, newSender(srv.URL).Send(context.Background(), "5551234567", "hi"))
	}
	srv, _ := newServer(t, http.StatusBadRequest)
	err := newSender(srv.URL).Send(context.Background(), "5551234567", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestSendRejectsBadInput(t *testing.T) {
	s := newSender("http://127.0.0.1:1")
	cases := map[string][2]string{
		"short phone":   {"555", "hi"},
		"letters":       {"555123456a", "hi"},
		"empty message": {"5551234567", "   "},
		"long message":  {"5551234567", strings.Repeat("x", 1601)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.Send(context.Background(), in[0], in[1]), ErrInvalidInput)
		})
	}
}
