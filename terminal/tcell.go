package terminal

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TcellSink is a display sink over a tcell Screen
// Output is staged in tcell's back buffer and shown on Flush
type TcellSink struct {
	screen tcell.Screen
	style  tcell.Style
	x, y   int
}

// NewTcellSink wraps screen; the screen is initialized by Init
func NewTcellSink(screen tcell.Screen) *TcellSink {
	return &TcellSink{
		screen: screen,
		style:  tcell.StyleDefault,
	}
}

// NewTcellScreen creates a sink on the real terminal
func NewTcellScreen() (*TcellSink, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create tcell screen: %w", err)
	}
	return NewTcellSink(screen), nil
}

func (s *TcellSink) Init() error {
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("init tcell screen: %w", err)
	}
	s.screen.HideCursor()
	s.screen.Clear()
	return nil
}

func (s *TcellSink) Fini() {
	s.screen.Fini()
}

// Size returns current screen dimensions
func (s *TcellSink) Size() (int, int, error) {
	w, h := s.screen.Size()
	return w, h, nil
}

func (s *TcellSink) HideCursor() {
	s.screen.HideCursor()
}

func (s *TcellSink) ShowCursor() {
	s.screen.ShowCursor(s.x, s.y)
}

func (s *TcellSink) Clear() {
	s.screen.Clear()
	s.x, s.y = 0, 0
}

func (s *TcellSink) MoveCursor(x, y int) {
	s.x, s.y = x, y
}

// WriteString places one rune per cell from the cursor rightwards
// Cells past the right edge are dropped by tcell
func (s *TcellSink) WriteString(str string) {
	for _, r := range str {
		s.screen.SetContent(s.x, s.y, r, nil, s.style)
		s.x++
	}
}

func (s *TcellSink) Flush() error {
	s.screen.Show()
	return nil
}

// WatchInterrupt drains screen events until the screen is finalized
// Ctrl-C and Escape call cancel; tcell owns the input so SIGINT never arrives
func (s *TcellSink) WatchInterrupt(cancel context.CancelFunc) {
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					cancel()
				}
			case *tcell.EventResize:
				s.screen.Sync()
			}
		}
	}()
}
