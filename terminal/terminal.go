package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
)

// outputBufferSize holds a full frame of a large terminal without intermediate flushes
const outputBufferSize = 128 * 1024

// Terminal is an ANSI display sink over a Backend
// Writes accumulate in memory; nothing reaches the device until Flush
type Terminal struct {
	backend Backend
	writer  *bufio.Writer

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal on stdout
func New() *Terminal {
	return NewWithBackend(newBackend())
}

// NewWithBackend creates a Terminal on the given backend
func NewWithBackend(b Backend) *Terminal {
	return &Terminal{
		backend: b,
		writer:  bufio.NewWriterSize(backendWriter{b: b}, outputBufferSize),
	}
}

// Init enters the alternate screen with auto-wrap off and the cursor hidden
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	t.writer.Write(csiAltScreenEnter)
	t.writer.Write(csiAutoWrapOff)
	t.writer.Write(csiCursorHide)
	t.writer.Write(csiClear)
	if err := t.writer.Flush(); err != nil {
		t.backend.Fini()
		return fmt.Errorf("enter alternate screen: %w", err)
	}

	t.initialized = true
	return nil
}

// Fini restores terminal state. Safe to call multiple times
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	// Drop any partial frame
	t.writer.Reset(backendWriter{b: t.backend})

	t.writer.Write(csiCursorShow)
	t.writer.Write(csiAltScreenExit)
	// Re-enable auto-wrap after leaving the alternate screen so the main buffer has it
	t.writer.Write(csiAutoWrapOn)
	t.writer.Write(csiSGR0)
	t.writer.Flush()

	t.backend.Fini()
	t.finalized = true
}

// Size returns current terminal dimensions
func (t *Terminal) Size() (int, int, error) {
	return t.backend.Size()
}

func (t *Terminal) HideCursor() {
	t.writer.Write(csiCursorHide)
}

func (t *Terminal) ShowCursor() {
	t.writer.Write(csiCursorShow)
}

// Clear erases the screen and homes the cursor
func (t *Terminal) Clear() {
	t.writer.Write(csiClear)
}

// MoveCursor positions the cursor (0-indexed)
func (t *Terminal) MoveCursor(x, y int) {
	writeCursorPos(t.writer, x, y)
}

func (t *Terminal) WriteString(s string) {
	t.writer.WriteString(s)
}

// Flush sends buffered output to the device
func (t *Terminal) Flush() error {
	if err := t.writer.Flush(); err != nil {
		return fmt.Errorf("flush terminal output: %w", err)
	}
	return nil
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
