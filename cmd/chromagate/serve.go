package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chromagate/internal/platform/tui"
	"github.com/vovakirdan/chromagate/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagWebAddr     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chromagate SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the level picker and its own
game state. Levels are loaded once at startup and shared by all sessions.

Host key handling:
  - If --host-key (or ssh.host_key) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.chromagate/host_key

Examples:
  chromagate serve                           # Listen on :23234
  chromagate serve --ssh :2222               # Listen on port 2222
  chromagate --levels sqlite serve           # Serve the level library

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP + websocket server",
	Long: `Start an HTTP server for browser clients.

Endpoints:
  GET /health   - liveness check
  GET /levels   - [{"id":1,"name":"..."}]
  GET /ws       - websocket; send {"type":"move","direction":"up"},
                  {"type":"click","row":1,"col":2} or {"type":"select","level":2}
                  and receive {"type":"snapshot",...} frames

Examples:
  chromagate web
  chromagate web --http :9000`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")

	webCmd.Flags().StringVar(&flagWebAddr, "http", "", "HTTP server address (host:port)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "chromagate-ssh")

	lvls, err := loadLevels(cmd.Context(), logger)
	if err != nil {
		return err
	}

	sshCfg := appConfig.SSH
	if cmd.Flags().Changed("ssh") {
		sshCfg.Address = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		sshCfg.HostKey = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		sshCfg.IdleTimeoutMinutes = flagIdleTimeout
	}

	cfg := tui.SSHServerConfig{
		Address:     sshCfg.Address,
		HostKeyPath: sshCfg.HostKey,
		IdleTimeout: sshCfg.IdleTimeout(),
		Runtime:     runtimeConfig(),
		Game:        gameOptions(0),
	}

	server, err := tui.NewSSHServer(cfg, lvls, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Starting chromagate SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}

func runWeb(cmd *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "chromagate-web")

	lvls, err := loadLevels(cmd.Context(), logger)
	if err != nil {
		return err
	}

	cfg := web.Config{
		Address:        appConfig.Web.Address,
		AllowedOrigins: appConfig.Web.AllowedOrigins,
		Seed:           appConfig.Game.Seed,
	}
	if cmd.Flags().Changed("http") {
		cfg.Address = flagWebAddr
	}

	fmt.Printf("Starting chromagate web server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return web.New(cfg, lvls, logger).ListenAndServe()
}

// port returns the port part of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
