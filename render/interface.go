package render

// Sink is the display surface a frame is presented on
// Write calls may buffer; errors surface from Size and Flush
type Sink interface {
	// Size returns the current surface dimensions in cells
	Size() (width, height int, err error)

	HideCursor()
	ShowCursor()

	// Clear blanks the whole surface
	Clear()

	// MoveCursor positions the write cursor (0-indexed)
	MoveCursor(x, y int)

	// WriteString writes s at the cursor, advancing it
	WriteString(s string)

	// Flush makes everything written since the last flush visible
	Flush() error
}
