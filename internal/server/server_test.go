package server

import (
    "net/http/httptest"
    "testing"

    "github.com/carelink/carelink/internal/config"
    "github.com/carelink/carelink/internal/infra"
    "github.com/carelink/carelink/internal/logging"
)

func TestNewServesPing(t *testing.T) {
    srv, err := New(config.Config{AppName: "CareLink", Env: "test", JWTSecret: "a", RefreshSecret: "b"}, infra.Backends{}, logging.Discard())
    if err != nil {
        t.Fatalf("new: %v", err)
    }
    resp, err := srv.app.Test(httptest.NewRequest("GET", "/api/v1/ping", nil))
    if err != nil {
        t.Fatalf("ping: %v", err)
    }
    if resp.StatusCode != 200 {
        t.Fatalf("expected 200, got %d", resp.StatusCode)
    }
}

func TestNewRejectsProductionWithoutBackends(t *testing.T) {
    if _, err := New(config.Config{Env: "production"}, infra.Backends{}, logging.Discard()); err == nil {
        t.Fatal("expected error")
    }
}
