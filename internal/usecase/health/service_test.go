package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}).With("database", &mockPinger{}).With("redis", &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	for _, name := range []string{"search_engine", "database", "redis"} {
		if r.Checks[name] != CheckOK {
			t.Errorf("expected %s %q, got %q", name, CheckOK, r.Checks[name])
		}
	}
}

func TestCheck_EngineError(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("conn refused")}).With("database", &mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["search_engine"] != CheckError {
		t.Errorf("expected search_engine %q, got %q", CheckError, r.Checks["search_engine"])
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
}

func TestCheck_OptionalBackendError(t *testing.T) {
	svc := New(&mockPinger{}).With("redis", &mockPinger{err: errors.New("timeout")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["redis"] != CheckError {
		t.Errorf("expected redis %q, got %q", CheckError, r.Checks["redis"])
	}
}

func TestCheck_NilBackendIgnored(t *testing.T) {
	svc := New(&mockPinger{}).With("database", nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["database"]; ok {
		t.Error("database check should be absent when not configured")
	}
	if got := svc.Components(); len(got) != 1 || got[0] != "search_engine" {
		t.Errorf("components = %v", got)
	}
}
