// unawareness-server serves the loadout editor over SSH so a game directory
// on another machine can be edited from any terminal. Build:
//
//	go build -o unawareness-server ./cmd/server
//
// Usage:
//
//	./unawareness-server [--port 2222] [--key server_host_key]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
//
// Only one client edits at a time; others are told the editor is busy.
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"unawareness/internal/app"
	"unawareness/internal/editor"
	internalssh "unawareness/internal/ssh"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/spf13/cobra"
	xssh "golang.org/x/crypto/ssh"
)

var (
	port    int
	keyFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "unawareness-server",
	Short: "Serve the necrodancer.xml loadout editor over SSH",
	RunE:  runServer,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().IntVar(&port, "port", 2222, "SSH server port")
	rootCmd.Flags().StringVar(&keyFile, "key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	rootCmd.Flags().StringVar(&envFile, "env", ".env", "Optional .env file read before the environment")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	a, err := app.Bootstrap(envFile)
	if err != nil {
		return err
	}
	defer a.Close()

	signer, err := loadOrCreateHostKey(keyFile, a.Logger)
	if err != nil {
		return err
	}
	d := newDesk(editor.NewState(a.Doc, a.Logger), a.Source, a.Logger)

	srv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", port),
		Handler:     d.handleSession,
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}

	a.Logger.Info("SSH server listening", "port", port)
	fmt.Fprintf(cmd.OutOrStdout(), "unawareness editor on :%d  (ssh -t -p %d localhost)\n", port, port)
	return srv.ListenAndServe()
}

// ─── desk ────────────────────────────────────────────────────────────────────

// desk hands the single editor state to one SSH session at a time.
type desk struct {
	mu     sync.Mutex
	busy   bool
	state  *editor.State
	source string
	logger *slog.Logger
}

func newDesk(state *editor.State, source string, logger *slog.Logger) *desk {
	return &desk{state: state, source: source, logger: logger}
}

// acquire claims the editor. It returns false when another session holds it.
func (d *desk) acquire() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.busy {
		return false
	}
	d.busy = true
	return true
}

func (d *desk) release() {
	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()
}

// allowedTerms lists the TERM values accepted from clients; anything else is
// replaced with xterm-256color before terminfo lookup.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

// sessionTerm picks the terminal type from the session environment.
func sessionTerm(environ []string) string {
	for _, env := range environ {
		if term, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[term] {
			return term
		}
	}
	return "xterm-256color"
}

// termMu protects os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

// handleSession is the gliderlabs SSH handler for one connection. It blocks
// for as long as the client is editing.
func (d *desk) handleSession(s gossh.Session) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "The editor needs a PTY. Connect with: ssh -t -p <port> <host>")
		return
	}

	open := func() (tcell.Screen, error) {
		tty := internalssh.NewSessionTty(s, pty.Window, winCh)
		termMu.Lock()
		_ = os.Setenv("TERM", sessionTerm(s.Environ()))
		screen, err := tcell.NewTerminfoScreenFromTty(tty)
		termMu.Unlock()
		if err != nil {
			return nil, fmt.Errorf("terminal setup: %w", err)
		}
		if err := screen.Init(); err != nil {
			return nil, fmt.Errorf("screen init: %w", err)
		}
		return screen, nil
	}

	d.logger.Info("editor session opened", "user", s.User(), "remote", s.RemoteAddr().String())
	admitted, err := d.occupy(open, s.Context().Done())
	switch {
	case !admitted:
		fmt.Fprintln(s, "Someone else is editing necrodancer.xml right now. Try again later.")
	case err != nil:
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
	default:
		d.logger.Info("editor session closed", "user", s.User())
	}
}

// occupy claims the desk, opens a screen and runs the editor on it until the
// user quits, the input fails, or hangup is closed. The desk is always
// released before occupy returns. admitted is false when another session
// already holds the desk.
func (d *desk) occupy(open func() (tcell.Screen, error), hangup <-chan struct{}) (admitted bool, err error) {
	if !d.acquire() {
		return false, nil
	}
	defer d.release()

	screen, err := open()
	if err != nil {
		return true, err
	}

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-hangup:
			d.logger.Info("client hung up")
			screen.Fini()
		case <-finished:
		}
	}()

	editor.New(screen, d.state, d.source, d.logger).Run()
	return true, nil
}

// ─── host key ────────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if signer, err := readHostKey(path); err == nil {
		logger.Info("loaded host key", "path", path)
		return signer, nil
	}

	logger.Info("generating ed25519 host key", "path", path)
	key, signer, err := generateHostKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	// Non-fatal: the server still runs with an unsaved key.
	if err := saveHostKey(path, key); err != nil {
		logger.Warn("cannot save host key", "path", path, "error", err)
	}
	return signer, nil
}

func readHostKey(path string) (gossh.Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return xssh.ParsePrivateKey(data)
}

// generateHostKey derives an ed25519 key from entropy.
func generateHostKey(entropy io.Reader) (ed25519.PrivateKey, gossh.Signer, error) {
	_, key, err := ed25519.GenerateKey(entropy)
	if err != nil {
		return nil, nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, nil, fmt.Errorf("create signer: %w", err)
	}
	return key, signer, nil
}

func saveHostKey(path string, key ed25519.PrivateKey) error {
	block, err := xssh.MarshalPrivateKey(key, "unawareness server")
	if err != nil {
		return fmt.Errorf("marshal host key: %w", err)
	}
	return os.WriteFile(path, pem.EncodeToMemory(block), 0o600)
}
