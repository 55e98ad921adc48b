package demo

import (
	"image"

	"github.com/1broseidon/lvport/internal/ui"
)

type button struct {
	rect    image.Rectangle
	label   string
	pressed bool
}

func (b *button) draw(dst *image.RGBA) {
	bg := ui.RGB(ui.ColorSurface)
	if b.pressed {
		bg = ui.RGB(ui.ColorAccent)
	}
	ui.FillRect(dst, b.rect, bg)
	ui.StrokeRect(dst, b.rect, 1, ui.RGB(ui.ColorMuted))
	ui.DrawTextCentered(dst, b.rect, b.label, ui.RGB(ui.ColorText))
}

// handle tracks press state and reports a click on release inside the
// button.
func (b *button) handle(p ui.PointerState) bool {
	inside := p.Point().In(b.rect)
	switch p.Action {
	case ui.PointerPress:
		b.pressed = inside
	case ui.PointerRelease:
		clicked := b.pressed && inside
		b.pressed = false
		return clicked
	}
	return false
}

type slider struct {
	rect     image.Rectangle
	value    int // 0..100
	dragging bool
}

func (s *slider) knobX() int {
	return s.rect.Min.X + s.value*s.rect.Dx()/100
}

func (s *slider) draw(dst *image.RGBA) {
	midY := s.rect.Min.Y + s.rect.Dy()/2
	track := image.Rect(s.rect.Min.X, midY-2, s.rect.Max.X, midY+2)
	ui.FillRect(dst, track, ui.RGB(ui.ColorMuted))
	ui.FillRect(dst, image.Rect(s.rect.Min.X, midY-2, s.knobX(), midY+2), ui.RGB(ui.ColorAccent))
	ui.FillCircle(dst, image.Pt(s.knobX(), midY), s.rect.Dy()/2, ui.RGB(ui.ColorText))
}

// handle drags the knob and reports whether the value changed.
func (s *slider) handle(p ui.PointerState) bool {
	switch p.Action {
	case ui.PointerPress:
		s.dragging = p.Point().In(s.rect)
	case ui.PointerRelease:
		if !s.dragging {
			return false
		}
		s.dragging = false
	}
	if !s.dragging && p.Action != ui.PointerRelease {
		return false
	}
	return s.setFromX(p.X)
}

func (s *slider) setFromX(x int) bool {
	w := s.rect.Dx()
	if w <= 0 {
		return false
	}
	v := (x - s.rect.Min.X) * 100 / w
	v = min(max(v, 0), 100)
	if v == s.value {
		return false
	}
	s.value = v
	return true
}

type checkbox struct {
	rect    image.Rectangle
	label   string
	checked bool
}

func (c *checkbox) box() image.Rectangle {
	side := c.rect.Dy()
	return image.Rect(c.rect.Min.X, c.rect.Min.Y, c.rect.Min.X+side, c.rect.Min.Y+side)
}

func (c *checkbox) draw(dst *image.RGBA) {
	box := c.box()
	ui.FillRect(dst, box, ui.RGB(ui.ColorSurface))
	ui.StrokeRect(dst, box, 2, ui.RGB(ui.ColorMuted))
	if c.checked {
		ui.FillRect(dst, box.Inset(box.Dx()/4), ui.RGB(ui.ColorAccentAlt))
	}
	ui.DrawText(dst, box.Max.X+8, c.rect.Min.Y+(c.rect.Dy()-ui.LineHeight)/2, c.label, ui.RGB(ui.ColorText))
}

// handle toggles on press inside the box or its label.
func (c *checkbox) handle(p ui.PointerState) bool {
	if p.Action != ui.PointerPress || !p.Point().In(c.rect) {
		return false
	}
	c.checked = !c.checked
	return true
}
