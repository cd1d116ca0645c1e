package check

import (
	"context"
	"testing"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarget(t *testing.T) {
	c := &Check{Protocol: "https", URL: "  example.com:8443/a/b?x=1#frag "}
	u, err := c.Target()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com:8443/a/b?x=1", u.String())

	_, err = (&Check{Protocol: "http", URL: "/no-host"}).Target()
	assert.Error(t, err)
}

func TestAlertMessage(t *testing.T) {
	c := &Check{Method: "post", Protocol: "http", URL: "example.com/hook", State: StateUp}
	assert.Equal(t, "Alert: Your check for POST http://example.com/hook is currently up", c.AlertMessage())
}

func TestRecordShape(t *testing.T) {
	c := &Check{
		ID: "abcdefghij0123456789", UserPhone: "5551234567", Protocol: "http", URL: "a.io",
		Method: "get", SuccessCodes: []int{200}, TimeoutSeconds: 2, State: StateDown,
	}
	rec, err := c.Record()
	require.NoError(t, err)
	assert.Equal(t, []any{200.0}, rec["successCodes"])
	assert.Equal(t, 2.0, rec["timeoutSeconds"])
	assert.NotContains(t, rec, "lastChecked")

	ts := int64(1_700_000_000_123)
	c.LastChecked = &ts
	rec, err = c.Record()
	require.NoError(t, err)
	assert.Equal(t, float64(ts), rec["lastChecked"])
	assert.Equal(t, 2*time.Second, c.Timeout())
}

func TestOutcomeResponded(t *testing.T) {
	assert.True(t, Outcome{Code: 404}.Responded())
	assert.False(t, Outcome{Err: ErrTimeout}.Responded())
	assert.False(t, Outcome{}.Responded())
}

func TestIDContext(t *testing.T) {
	_, ok := IDFrom(context.Background())
	assert.False(t, ok)

	id, ok := IDFrom(WithID(context.Background(), "x"))
	assert.True(t, ok)
	assert.Equal(t, "x", id)
}

func TestStampedOnlyTouchesWorkerFields(t *testing.T) {
	loaded := record.Record{"id": "x", "url": " a.io ", "extra": true, "lastChecked": 5.0}
	ts := int64(9)
	c := &Check{URL: "a.io", State: StateUp, LastChecked: &ts}

	out := c.Stamped(loaded)
	assert.Equal(t, record.Record{"id": "x", "url": " a.io ", "extra": true, "state": "up", "lastChecked": 9.0}, out)
	assert.Equal(t, 5.0, loaded["lastChecked"], "loaded record is not mutated")

	c.LastChecked = nil
	assert.NotContains(t, c.Stamped(loaded), "lastChecked")
}
