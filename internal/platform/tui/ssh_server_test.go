package tui

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewSSHServer(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")

	srv, err := NewSSHServer(cfg, testLevels(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer() error = %v", err)
	}
	if got := srv.Addr(); got != cfg.Address {
		t.Errorf("Addr() = %q, want %q", got, cfg.Address)
	}
	if info, err := os.Stat(filepath.Dir(cfg.HostKeyPath)); err != nil || !info.IsDir() {
		t.Errorf("host key directory not created: %v", err)
	}
}
