package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// DefaultFont is small enough for two lines on a 32 pixel high panel
var DefaultFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// TextScroller scrolls a line of text from right to left, one pixel per
// frame, vertically centered.
type TextScroller struct {
	Text  string
	Color color.RGBA
	Font  tinyfont.Fonter
}

// NewTextScroller creates a scroller using DefaultFont
func NewTextScroller(text string, c color.RGBA) *TextScroller {
	return &TextScroller{Text: text, Color: c, Font: DefaultFont}
}

// Draw draws the text at the position for the given frame
func (s *TextScroller) Draw(d drivers.Displayer, frame int) {
	font := s.Font
	if font == nil {
		font = DefaultFont
	}
	w, h := d.Size()
	_, textWidth := tinyfont.LineWidth(font, s.Text)

	// Starts just off the right edge and wraps once fully off the left
	period := int(textWidth) + int(w)
	x := int(w) - frame%period
	y := (int(h) + int(font.GetYAdvance())) / 2

	tinyfont.WriteLine(d, font, int16(x), int16(y), s.Text, s.Color)
}
