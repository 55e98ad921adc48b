package demo

import (
	"fmt"
	"image"
	"time"

	"github.com/1broseidon/lvport/internal/ui"
)

// Widgets shows a few interactive controls laid out on a grid of cards.
type Widgets struct {
	engine  *ui.Engine
	cards   []image.Rectangle
	volume  slider
	options []*checkbox
	reset   button
}

var widgetOptions = []string{"Wi-Fi", "Bluetooth", "Dark theme"}

func NewWidgets(e *ui.Engine) *Widgets {
	w := &Widgets{engine: e, volume: slider{value: 50}}
	for _, label := range widgetOptions {
		w.options = append(w.options, &checkbox{label: label})
	}
	w.options[2].checked = true
	w.layout(e.Bounds())
	// The status card shows a clock.
	e.AddTimer(time.Second, func(*ui.Timer) { e.Invalidate() })
	return w
}

func (w *Widgets) layout(b image.Rectangle) {
	content := image.Rect(b.Min.X, b.Min.Y+32, b.Max.X, b.Max.Y)
	w.cards = ui.GridCells(4, content, 12)
	if len(w.cards) < 4 {
		return
	}

	vol := w.cards[0]
	w.volume.rect = image.Rect(vol.Min.X+16, vol.Min.Y+vol.Dy()/2-8, vol.Max.X-16, vol.Min.Y+vol.Dy()/2+8)

	opts := w.cards[1]
	for i, c := range w.options {
		y := opts.Min.Y + 32 + i*28
		c.rect = image.Rect(opts.Min.X+16, y, opts.Max.X-16, y+20)
	}

	rc := w.cards[3]
	w.reset = button{
		rect:  image.Rect(rc.Min.X+16, rc.Max.Y-52, rc.Min.X+136, rc.Max.Y-16),
		label: "Reset",
	}
}

// Volume returns the slider value in percent.
func (w *Widgets) Volume() int { return w.volume.value }

// Checked reports the state of option i.
func (w *Widgets) Checked(i int) bool { return w.options[i].checked }

func (w *Widgets) HandlePointer(p ui.PointerState) {
	changed := w.volume.handle(p)
	for _, c := range w.options {
		if c.handle(p) {
			changed = true
		}
	}
	if w.reset.handle(p) {
		w.volume.value = 50
		for i, c := range w.options {
			c.checked = i == 2
		}
		changed = true
	}
	if changed || p.Action != ui.PointerMove {
		w.engine.Invalidate()
	}
}

func (w *Widgets) Draw(dst *image.RGBA, now time.Time) {
	b := dst.Bounds()
	ui.Fill(dst, ui.RGB(ui.ColorBackground))
	ui.DrawText(dst, b.Min.X+12, b.Min.Y+10, "Widgets", ui.RGB(ui.ColorText))
	if len(w.cards) < 4 {
		return
	}

	titles := []string{"Volume", "Connectivity", "Status", "Actions"}
	for i, c := range w.cards {
		ui.FillRect(dst, c, ui.RGB(ui.ColorSurface))
		ui.DrawText(dst, c.Min.X+12, c.Min.Y+8, titles[i], ui.RGB(ui.ColorTextDim))
	}

	w.volume.draw(dst)
	ui.DrawText(dst, w.volume.rect.Min.X, w.volume.rect.Max.Y+8,
		fmt.Sprintf("%d%%", w.volume.value), ui.RGB(ui.ColorText))

	for _, c := range w.options {
		c.draw(dst)
	}

	st := w.cards[2]
	on := 0
	for _, c := range w.options {
		if c.checked {
			on++
		}
	}
	ui.DrawText(dst, st.Min.X+12, st.Min.Y+32, now.Format("15:04:05"), ui.RGB(ui.ColorText))
	ui.DrawText(dst, st.Min.X+12, st.Min.Y+52, fmt.Sprintf("%d of %d options on", on, len(w.options)), ui.RGB(ui.ColorText))

	w.reset.draw(dst)
}
