// Package ssh adapts an SSH channel to the tcell.Tty interface so the editor
// can draw to a remote terminal.
package ssh

import (
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty is a tcell.Tty over an SSH channel. Keyboard input is read from
// the channel and rendered output written back to it; window-change requests
// arrive on a separate channel.
type SessionTty struct {
	rw      io.ReadWriteCloser
	resizes <-chan gossh.Window

	mu        sync.Mutex
	size      tcell.WindowSize
	onResize  func()
	watching  bool
	drained   chan struct{} // closed by Drain, renewed by Start
	isDrained bool

	pumpOnce  sync.Once
	chunks    chan []byte
	readErr   error // set before chunks is closed
	pending   []byte
	closed    chan struct{}
	closeOnce sync.Once
}

// NewSessionTty wraps rw, usually a gossh.Session. initial is the window size
// from the PTY request and resizes delivers later changes.
func NewSessionTty(rw io.ReadWriteCloser, initial gossh.Window, resizes <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		rw:      rw,
		resizes: resizes,
		size:    tcell.WindowSize{Width: initial.Width, Height: initial.Height},
		drained: make(chan struct{}),
		chunks:  make(chan []byte),
		closed:  make(chan struct{}),
	}
}

// Read returns keyboard input from the channel. A Read blocked waiting for
// input returns 0, nil once Drain is called, so tcell can stop its reader
// without the client typing another key.
func (t *SessionTty) Read(b []byte) (int, error) {
	if len(t.pending) > 0 {
		n := copy(b, t.pending)
		t.pending = t.pending[n:]
		return n, nil
	}
	t.pumpOnce.Do(func() { go t.pump() })

	t.mu.Lock()
	drained := t.drained
	t.mu.Unlock()

	select {
	case chunk, ok := <-t.chunks:
		if !ok {
			return 0, t.readErr
		}
		n := copy(b, chunk)
		t.pending = chunk[n:]
		return n, nil
	case <-drained:
		return 0, nil
	}
}

// pump copies channel input to t.chunks until the channel fails or closes.
func (t *SessionTty) pump() {
	for {
		buf := make([]byte, 256)
		n, err := t.rw.Read(buf)
		if n > 0 {
			select {
			case t.chunks <- buf[:n]:
			case <-t.closed:
				return
			}
		}
		if err != nil {
			t.readErr = err
			close(t.chunks)
			return
		}
	}
}

func (t *SessionTty) Write(b []byte) (int, error) { return t.rw.Write(b) }

// Close closes the channel and stops the input pump.
func (t *SessionTty) Close() error {
	t.closeOnce.Do(func() { close(t.closed) })
	return t.rw.Close()
}

// Start re-arms reads after a Drain.
func (t *SessionTty) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isDrained {
		t.drained = make(chan struct{})
		t.isDrained = false
	}
	return nil
}

// Stop has nothing to do: the SSH server owns the channel.
func (t *SessionTty) Stop() error { return nil }

// Drain releases any Read waiting for input.
func (t *SessionTty) Drain() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.isDrained {
		close(t.drained)
		t.isDrained = true
	}
	return nil
}

// WindowSize returns the last reported terminal size.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size, nil
}

// NotifyResize registers cb to run after every window change. The first call
// starts the goroutine that follows the resize channel until it is closed.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	start := !t.watching && t.resizes != nil
	t.watching = true
	t.mu.Unlock()

	if start {
		go t.watchResizes()
	}
}

func (t *SessionTty) watchResizes() {
	for win := range t.resizes {
		t.mu.Lock()
		t.size = tcell.WindowSize{Width: win.Width, Height: win.Height}
		cb := t.onResize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}
