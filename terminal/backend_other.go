//go:build !unix

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

type stdBackend struct {
	out   *os.File
	outFd int
}

func newBackend() Backend {
	return &stdBackend{
		out:   os.Stdout,
		outFd: int(os.Stdout.Fd()),
	}
}

func (b *stdBackend) Init() error {
	if !term.IsTerminal(b.outFd) {
		return fmt.Errorf("stdout is not a terminal")
	}
	return nil
}

func (b *stdBackend) Fini() {}

func (b *stdBackend) Size() (int, int, error) {
	w, h, err := term.GetSize(b.outFd)
	if err != nil {
		return 0, 0, fmt.Errorf("query terminal size: %w", err)
	}
	return w, h, nil
}

func (b *stdBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}
