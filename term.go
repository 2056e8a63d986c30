package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/Archna-29/portfolio/internal/layout"
	"github.com/Archna-29/portfolio/internal/music"
	"github.com/Archna-29/portfolio/internal/player"
)

const (
	rowUnits        = 16 // scroll units per terminal row
	sidebarExpanded = 30
	sidebarCompact  = 20
	volumeNudge     = 0.05
	wheelRows       = 3
)

var (
	styleText    = tcell.StyleDefault
	styleName    = tcell.StyleDefault.Foreground(tcell.ColorHotPink).Bold(true)
	styleMuted   = tcell.StyleDefault.Foreground(tcell.ColorPink)
	styleHeading = tcell.StyleDefault.Foreground(tcell.ColorDeepPink).Bold(true)
	styleLink    = tcell.StyleDefault.Foreground(tcell.ColorLightSkyBlue).Underline(true)
	styleSidebar = tcell.StyleDefault.Background(tcell.ColorMistyRose).Foreground(tcell.ColorMaroon)
	styleWidget  = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorDeepPink)
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Read the portfolio in the terminal",
	Long: `Renders the portfolio in the terminal with the same scroll-driven sidebar
and plays the welcome music on the local audio device.

Keys: arrows/PgUp/PgDn/Home/End or the mouse wheel scroll, space toggles the
music, +/- change the volume, q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTerm(cfg)
	},
}

func init() {
	rootCmd.AddCommand(termCmd)
}

type line struct {
	text  string
	style tcell.Style
}

// termView draws the page and routes terminal input to the layout and
// music controllers.
type termView struct {
	screen tcell.Screen
	scroll *layout.Signal
	layout *layout.Controller
	player *player.Controller
	offset int
}

func newTermView(screen tcell.Screen, p *player.Controller) *termView {
	v := &termView{
		screen: screen,
		scroll: layout.NewSignal(),
		layout: layout.New(),
		player: p,
	}

	redraw := func() { screen.PostEvent(tcell.NewEventInterrupt(nil)) }
	v.layout.OnChange(func(layout.Mode) { redraw() })
	p.OnChange(func(player.State) { redraw() })

	v.layout.Mount(v.scroll)
	return v
}

func (v *termView) close() {
	v.player.Unmount()
	v.layout.Unmount()
}

func (v *termView) run() {
	v.draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		if !v.handleEvent(ev) {
			return
		}
	}
}

// handleEvent applies one terminal event and redraws. It returns false
// when the user asked to quit.
func (v *termView) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.scrollBy(-1)
		case tcell.KeyDown:
			v.scrollBy(1)
		case tcell.KeyPgUp:
			v.scrollBy(-v.pageRows())
		case tcell.KeyPgDn:
			v.scrollBy(v.pageRows())
		case tcell.KeyHome:
			v.scrollTo(0)
		case tcell.KeyEnd:
			v.scrollTo(v.maxOffset())
		case tcell.KeyLeft:
			v.nudgeVolume(-volumeNudge)
		case tcell.KeyRight:
			v.nudgeVolume(volumeNudge)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ', 'p':
				v.player.HandlePlayPause()
			case '+', '=':
				v.nudgeVolume(volumeNudge)
			case '-', '_':
				v.nudgeVolume(-volumeNudge)
			case 'j':
				v.scrollBy(1)
			case 'k':
				v.scrollBy(-1)
			}
		}

	case *tcell.EventMouse:
		switch {
		case ev.Buttons()&tcell.WheelUp != 0:
			v.scrollBy(-wheelRows)
		case ev.Buttons()&tcell.WheelDown != 0:
			v.scrollBy(wheelRows)
		}

	case *tcell.EventResize:
		v.screen.Sync()
		v.scrollTo(v.offset)
	}

	v.draw()
	return true
}

func (v *termView) scrollBy(rows int) {
	v.scrollTo(v.offset + rows)
}

// scrollTo moves the viewport and reports the new offset to the layout
// controller in page units. The row is bounded by the page as laid out
// for the sidebar it will be shown with.
func (v *termView) scrollTo(row int) {
	row = max(0, row)
	row = min(row, v.maxOffsetFor(float64(row*rowUnits) > layout.Threshold))
	if row == v.offset {
		return
	}
	v.offset = row
	v.scroll.Publish(float64(row * rowUnits))
}

func (v *termView) nudgeVolume(delta float64) {
	vol := math.Round((v.player.Volume()+delta)*100) / 100
	v.player.HandleVolumeChange(vol)
}

func (v *termView) sidebarWidth() int {
	return sidebarFor(v.layout.IsScrolled())
}

func sidebarFor(compact bool) int {
	if compact {
		return sidebarCompact
	}
	return sidebarExpanded
}

func (v *termView) pageRows() int {
	_, h := v.screen.Size()
	return max(1, h-1)
}

func (v *termView) maxOffset() int {
	return v.maxOffsetFor(v.layout.IsScrolled())
}

// maxOffsetFor is the last row the viewport may start at with the sidebar
// compact or expanded.
func (v *termView) maxOffsetFor(compact bool) int {
	w, h := v.screen.Size()
	lines := pageLines(w - sidebarFor(compact) - 4)
	return max(0, len(lines)-h+1)
}

func (v *termView) draw() {
	s := v.screen
	s.Clear()
	w, h := s.Size()

	side := v.sidebarWidth()
	v.drawSidebar(side, h)

	lines := pageLines(w - side - 4)
	for row := 0; row < h; row++ {
		i := v.offset + row
		if i >= len(lines) {
			break
		}
		drawText(s, side+2, row, w-side-4, lines[i].style, lines[i].text)
	}

	v.drawWidget(w, h)
	s.Show()
}

func (v *termView) drawSidebar(width, height int) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v.screen.SetContent(x, y, ' ', nil, styleSidebar)
		}
	}

	y := 1
	put := func(text string, style tcell.Style) {
		drawText(v.screen, 2, y, width-3, style, text)
		y++
	}

	put(Name, styleSidebar.Bold(true))
	for _, l := range wrap(Tagline, width-3) {
		put(l, styleSidebar)
	}

	if v.layout.IsScrolled() {
		return
	}

	y++
	for _, link := range SocialLinks {
		put("◆ "+link.Label, styleSidebar)
	}
	y++
	for _, item := range NavItems {
		put("› "+item, styleSidebar)
	}

	drawText(v.screen, 2, height-1, width-3, styleSidebar, "space ♪  +/- vol  q quit")
}

func (v *termView) drawWidget(w, h int) {
	st := v.player.State()

	icon := "▶"
	if st.IsPlaying() {
		icon = "❚❚"
	}
	filled := int(math.Round(st.Volume * 10))
	bar := strings.Repeat("▮", filled) + strings.Repeat("▯", 10-filled)
	controls := fmt.Sprintf(" %s  %s %3d%% ", icon, bar, int(math.Round(st.Volume*100)))
	title := " Welcome Music "

	width := max(runewidth.StringWidth(controls), runewidth.StringWidth(title))
	x := w - width - 1
	if x < 0 || h < 3 {
		return
	}
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < width; dx++ {
			v.screen.SetContent(x+dx, h-3+dy, ' ', nil, styleWidget)
		}
	}
	drawText(v.screen, x, h-3, width, styleWidget.Bold(true), title)
	drawText(v.screen, x, h-2, width, styleWidget, controls)
}

// pageLines lays the static content out for a column of the given width.
func pageLines(width int) []line {
	if width < 10 {
		width = 10
	}

	var lines []line
	add := func(style tcell.Style, texts ...string) {
		for _, t := range texts {
			lines = append(lines, line{text: t, style: style})
		}
	}
	para := func(style tcell.Style, text string) {
		add(style, wrap(text, width)...)
	}
	blank := func() { add(styleText, "") }

	// Home
	para(styleName, HeroTitle)
	para(styleMuted, HeroSubtitle)
	blank()
	para(styleText, AboutMe)
	blank()

	add(styleHeading, "Projects")
	blank()
	for _, p := range Projects {
		para(styleHeading, p.Title)
		para(styleText, p.Description)
		if p.Link != "#" {
			para(styleLink, p.Link)
		}
		blank()
	}

	add(styleHeading, "Skills")
	blank()
	para(styleMuted, strings.Join(Skills, " · "))
	blank()

	add(styleHeading, "Education")
	blank()
	para(styleHeading, Degree.Degree)
	para(styleText, Degree.Institution)
	add(styleMuted, Degree.Years, Degree.Grade)
	blank()
	add(styleText, "Relevant Coursework:")
	for _, c := range Degree.Coursework {
		para(styleText, "• "+c)
	}
	blank()

	add(styleHeading, "Get In Touch")
	blank()
	para(styleText, ContactBlurb)
	blank()
	for _, l := range ContactLinks {
		para(styleLink, l.Label+"  "+l.URL)
	}
	return lines
}

// wrap splits text on whitespace into lines no wider than width cells.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	cur := words[0]
	for _, word := range words[1:] {
		if runewidth.StringWidth(cur)+1+runewidth.StringWidth(word) > width {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur += " " + word
	}
	return append(lines, cur)
}

// drawText writes text at (x, y), clipped to maxWidth cells.
func drawText(s tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	col := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if col+rw > maxWidth {
			return
		}
		s.SetContent(x+col, y, r, nil, style)
		col += rw
	}
}

func runTerm(cfg Config) error {
	if f, err := openTermLog(); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	screen.EnableMouse()
	defer screen.Fini()

	p := player.New(player.WithVolume(cfg.InitialVolume))
	v := newTermView(screen, p)
	defer v.close()

	p.Mount(context.Background(), music.NewTrack(cfg.MusicPath, music.Speaker))
	v.run()
	return nil
}

// openTermLog sends diagnostics to a file so they do not tear the screen.
func openTermLog() (*os.File, error) {
	dir := os.TempDir()
	if configDir, err := os.UserConfigDir(); err == nil {
		d := filepath.Join(configDir, "portfolio")
		if err := os.MkdirAll(d, 0o755); err == nil {
			dir = d
		}
	}
	return os.OpenFile(filepath.Join(dir, "term.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
