package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hcoles/tourneybank/internal/logger"
	"github.com/hcoles/tourneybank/internal/models"
	"github.com/hcoles/tourneybank/pkg/schedule"
)

func createTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(logger.New(), ":memory:", schedule.NewStaticClient(false))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func TestNew_InitializesApp(t *testing.T) {
	a := createTestApp(t)

	if a.handlers == nil {
		t.Error("expected handlers to be initialized")
	}
	if a.repo == nil {
		t.Error("expected repo to be initialized")
	}
}

func TestNew_FailsWithBadDBPath(t *testing.T) {
	_, err := New(logger.New(), "/nonexistent/path/db.sqlite", schedule.NewStaticClient(false))
	if err == nil {
		t.Error("expected error for invalid db path")
	}
}

func TestApp_Router_ServesSnapshot(t *testing.T) {
	a := createTestApp(t)
	server := httptest.NewServer(a.Router())
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/bank")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for /api/bank, got %d", resp.StatusCode)
	}

	var snap models.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(snap.Players) != 9 {
		t.Errorf("expected default roster of 9, got %d", len(snap.Players))
	}
}

func TestSetDefaultBaseURL(t *testing.T) {
	a := createTestApp(t)
	ctx := context.Background()

	a.setDefaultBaseURL("http://192.168.1.5:8081")
	url, err := a.repo.GetSetting(ctx, "base_url")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if url != "http://192.168.1.5:8081" {
		t.Errorf("expected default base URL set, got %q", url)
	}

	// A real configured URL is never overwritten.
	a.setDefaultBaseURL("http://10.0.0.9:8081")
	url, _ = a.repo.GetSetting(ctx, "base_url")
	if url != "http://192.168.1.5:8081" {
		t.Errorf("expected existing base URL kept, got %q", url)
	}
}

func TestSetDefaultBaseURL_ReplacesLocalhost(t *testing.T) {
	a := createTestApp(t)
	ctx := context.Background()

	if err := a.repo.SetSetting(ctx, "base_url", "http://localhost:8081"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	a.setDefaultBaseURL("http://192.168.1.5:8081")
	url, _ := a.repo.GetSetting(ctx, "base_url")
	if url != "http://192.168.1.5:8081" {
		t.Errorf("expected localhost URL replaced, got %q", url)
	}
}

// fakeInterface implements networkInterface for IP selection tests.
type fakeInterface struct {
	flags net.Flags
	addrs []net.Addr
}

func (f fakeInterface) Flags() net.Flags           { return f.flags }
func (f fakeInterface) Addrs() ([]net.Addr, error) { return f.addrs, nil }

type fakeProvider struct {
	ifaces []networkInterface
}

func (p fakeProvider) Interfaces() ([]networkInterface, error) {
	return p.ifaces, nil
}

func ipNet(s string) *net.IPNet {
	return &net.IPNet{IP: net.ParseIP(s), Mask: net.CIDRMask(24, 32)}
}

func TestGetPreferredIP_PrefersPrivate(t *testing.T) {
	provider := fakeProvider{ifaces: []networkInterface{
		fakeInterface{flags: net.FlagUp, addrs: []net.Addr{ipNet("203.0.113.5")}},
		fakeInterface{flags: net.FlagUp, addrs: []net.Addr{ipNet("192.168.1.10")}},
	}}

	if ip := getPreferredIP(provider); ip != "192.168.1.10" {
		t.Errorf("expected private address preferred, got %s", ip)
	}
}

func TestGetPreferredIP_SkipsDownAndLoopback(t *testing.T) {
	provider := fakeProvider{ifaces: []networkInterface{
		fakeInterface{flags: 0, addrs: []net.Addr{ipNet("192.168.1.10")}},
		fakeInterface{flags: net.FlagUp | net.FlagLoopback, addrs: []net.Addr{ipNet("127.0.0.1")}},
	}}

	if ip := getPreferredIP(provider); ip != "localhost" {
		t.Errorf("expected localhost fallback, got %s", ip)
	}
}

func TestGetPreferredIP_FallsBackToAnyPublic(t *testing.T) {
	provider := fakeProvider{ifaces: []networkInterface{
		fakeInterface{flags: net.FlagUp, addrs: []net.Addr{ipNet("203.0.113.5")}},
	}}

	if ip := getPreferredIP(provider); ip != "203.0.113.5" {
		t.Errorf("expected public fallback, got %s", ip)
	}
}

func TestGetPreferredIP_RealProviderDoesNotPanic(t *testing.T) {
	ip := getPreferredIP(realNetworkProvider{})
	if ip == "" {
		t.Error("expected non-empty result")
	}
	if ip != "localhost" && net.ParseIP(ip) == nil {
		t.Errorf("expected valid IP, got %s", ip)
	}
}

func TestIsPrivate172(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"172.15.0.1", false},
		{"172.32.0.1", false},
		{"192.168.1.1", false},
		{"10.0.0.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			got := isPrivate172(net.ParseIP(tt.ip))
			if got != tt.expected {
				t.Errorf("isPrivate172(%s) = %v, want %v", tt.ip, got, tt.expected)
			}
		})
	}
}
