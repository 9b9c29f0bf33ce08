package terminal

// Backend abstracts the platform terminal device
type Backend interface {
	// Init verifies the output is a terminal
	Init() error
	Fini()

	// Size returns the terminal dimensions in cells
	Size() (width, height int, err error)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error
}

// backendWriter adapts a Backend to io.Writer for buffering
type backendWriter struct {
	b Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
