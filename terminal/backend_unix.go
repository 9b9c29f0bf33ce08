//go:build unix

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixBackend struct {
	out   *os.File
	outFd int
}

func newBackend() Backend {
	return &unixBackend{
		out:   os.Stdout,
		outFd: int(os.Stdout.Fd()),
	}
}

func (b *unixBackend) Init() error {
	if !term.IsTerminal(b.outFd) {
		return fmt.Errorf("stdout is not a terminal")
	}
	return nil
}

func (b *unixBackend) Fini() {}

func (b *unixBackend) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("query terminal size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

func (b *unixBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}
