package demo

import (
	"fmt"
	"image"
	"time"

	"github.com/1broseidon/lvport/internal/ui"
)

// Track is one entry of the music player playlist.
type Track struct {
	Title    string
	Artist   string
	Duration time.Duration
}

var playlist = []Track{
	{"Waiting for You", "Rachel Wu", 2*time.Minute + 43*time.Second},
	{"Lights Over Harbour", "The Breakwater", 3*time.Minute + 12*time.Second},
	{"Night Train", "Kilometre Zero", 4*time.Minute + 5*time.Second},
	{"Paper Planes", "Iris & the Kites", 2*time.Minute + 58*time.Second},
	{"Low Tide", "Marlow", 3*time.Minute + 31*time.Second},
}

const progressStep = time.Second

// Music is a player screen: playlist, transport buttons and a progress bar
// advanced by an engine timer while playing.
type Music struct {
	engine  *ui.Engine
	tracks  []Track
	current int
	playing bool
	elapsed time.Duration
	ticker  *ui.Timer

	prev, play, next button
	rows             []image.Rectangle
	progress         image.Rectangle
}

func NewMusic(e *ui.Engine) *Music {
	m := &Music{engine: e, tracks: playlist}
	m.ticker = e.AddTimer(progressStep, func(*ui.Timer) { m.advance(progressStep) })
	m.ticker.Pause()
	e.AddTimer(time.Minute, func(*ui.Timer) { e.Invalidate() })
	m.layout(e.Bounds())
	return m
}

func (m *Music) layout(b image.Rectangle) {
	const (
		header = 40
		rowH   = 28
		footer = 110
		pad    = 12
	)
	m.rows = m.rows[:0]
	listTop := b.Min.Y + header
	for i := range m.tracks {
		y := listTop + i*rowH
		if y+rowH > b.Max.Y-footer {
			break
		}
		m.rows = append(m.rows, image.Rect(b.Min.X+pad, y, b.Max.X-pad, y+rowH-2))
	}

	m.progress = image.Rect(b.Min.X+pad, b.Max.Y-footer+12, b.Max.X-pad, b.Max.Y-footer+20)

	const btnW, btnH = 64, 40
	cx := b.Min.X + b.Dx()/2
	by := b.Max.Y - 56
	m.play = button{rect: image.Rect(cx-btnW/2, by, cx+btnW/2, by+btnH)}
	m.prev = button{rect: m.play.rect.Sub(image.Pt(btnW+16, 0)), label: "<<"}
	m.next = button{rect: m.play.rect.Add(image.Pt(btnW+16, 0)), label: ">>"}
}

// Current returns the selected track.
func (m *Music) Current() Track { return m.tracks[m.current] }

func (m *Music) Playing() bool { return m.playing }

func (m *Music) Elapsed() time.Duration { return m.elapsed }

// Toggle starts or pauses playback.
func (m *Music) Toggle() {
	m.playing = !m.playing
	if m.playing {
		m.ticker.Reset()
		m.ticker.Resume()
	} else {
		m.ticker.Pause()
	}
	m.engine.Invalidate()
}

// Select jumps to track i and restarts it.
func (m *Music) Select(i int) {
	n := len(m.tracks)
	m.current = ((i % n) + n) % n
	m.elapsed = 0
	m.engine.Invalidate()
}

func (m *Music) advance(d time.Duration) {
	if !m.playing {
		return
	}
	m.elapsed += d
	if m.elapsed >= m.Current().Duration {
		m.Select(m.current + 1)
	}
	m.engine.Invalidate()
}

func (m *Music) HandlePointer(p ui.PointerState) {
	if m.play.handle(p) {
		m.Toggle()
	}
	if m.prev.handle(p) {
		m.Select(m.current - 1)
	}
	if m.next.handle(p) {
		m.Select(m.current + 1)
	}
	if p.Action == ui.PointerPress {
		for i, r := range m.rows {
			if p.Point().In(r) {
				m.Select(i)
				if !m.playing {
					m.Toggle()
				}
				break
			}
		}
	}
	m.engine.Invalidate()
}

func (m *Music) Draw(dst *image.RGBA, now time.Time) {
	b := dst.Bounds()
	ui.Fill(dst, ui.RGB(ui.ColorBackground))
	ui.DrawText(dst, b.Min.X+12, b.Min.Y+14, "Music", ui.RGB(ui.ColorText))
	clock := now.Format("15:04")
	ui.DrawText(dst, b.Max.X-12-ui.TextWidth(clock), b.Min.Y+14, clock, ui.RGB(ui.ColorTextDim))

	for i, r := range m.rows {
		t := m.tracks[i]
		if i == m.current {
			ui.FillRect(dst, r, ui.RGB(ui.ColorSurface))
			ui.FillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+3, r.Max.Y), ui.RGB(ui.ColorAccent))
		}
		ty := r.Min.Y + (r.Dy()-ui.LineHeight)/2
		ui.DrawText(dst, r.Min.X+10, ty, t.Title, ui.RGB(ui.ColorText))
		ui.DrawText(dst, r.Min.X+10+ui.TextWidth(t.Title)+12, ty, t.Artist, ui.RGB(ui.ColorTextDim))
		d := formatDuration(t.Duration)
		ui.DrawText(dst, r.Max.X-10-ui.TextWidth(d), ty, d, ui.RGB(ui.ColorTextDim))
	}

	ui.FillRect(dst, m.progress, ui.RGB(ui.ColorSurface))
	if total := m.Current().Duration; total > 0 {
		w := int(int64(m.progress.Dx()) * int64(m.elapsed) / int64(total))
		ui.FillRect(dst, image.Rect(m.progress.Min.X, m.progress.Min.Y, m.progress.Min.X+w, m.progress.Max.Y), ui.RGB(ui.ColorAccent))
	}
	ty := m.progress.Max.Y + 4
	ui.DrawText(dst, m.progress.Min.X, ty, formatDuration(m.elapsed), ui.RGB(ui.ColorTextDim))
	total := formatDuration(m.Current().Duration)
	ui.DrawText(dst, m.progress.Max.X-ui.TextWidth(total), ty, total, ui.RGB(ui.ColorTextDim))

	m.play.label = "Play"
	if m.playing {
		m.play.label = "Pause"
	}
	m.prev.draw(dst)
	m.play.draw(dst)
	m.next.draw(dst)
}

func formatDuration(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
