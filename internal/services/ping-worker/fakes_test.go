package ping_worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/NordCoder/Uptimer/internal/domain/check"
	"github.com/NordCoder/Uptimer/internal/domain/record"
)

type memChecks struct {
	mu      sync.Mutex
	recs    map[string]record.Record
	saves   int
	saveErr error
	listErr error
}

func newMemChecks() *memChecks { return &memChecks{recs: map[string]record.Record{}} }

func (m *memChecks) IDs(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	ids := make([]string, 0, len(m.recs))
	for id := range m.recs {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memChecks) Load(_ context.Context, id string) (record.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	if !ok {
		return nil, record.ErrNotFound
	}
	return rec.Clone(), nil
}

func (m *memChecks) Save(_ context.Context, id string, rec record.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.recs[id] = rec
	return nil
}

func (m *memChecks) get(id string) record.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recs[id]
}

type fixedProbe struct {
	mu    sync.Mutex
	out   check.Outcome
	calls int
}

func (p *fixedProbe) Probe(context.Context, *check.Check) check.Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.out
}

type fakeAlerts struct {
	mu   sync.Mutex
	err  error
	sent []sentAlert
}

type sentAlert struct {
	id, phone, message string
}

func (a *fakeAlerts) Send(ctx context.Context, phone, message string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, _ := check.IDFrom(ctx)
	a.sent = append(a.sent, sentAlert{id: id, phone: phone, message: message})
	return a.err
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var errBoom = errors.New("boom")

const testID = "abcdefghij0123456789"

func validRecord() record.Record {
	return record.Record{
		"id":             testID,
		"userPhone":      "5551234567",
		"protocol":       "https",
		"url":            "example.com/health",
		"method":         "get",
		"successCodes":   []any{200.0, 201.0},
		"timeoutSeconds": 3.0,
	}
}
