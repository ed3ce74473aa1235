// Package board is the terminal presentation surface of the quiz.
// It keeps every visual element (life icons, labels, button colors, panels)
// and reconciles them from round effects; the engine never sees any of it.
package board

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/round"
)

// Panel is the view currently shown.
type Panel int

const (
	PanelMenu Panel = iota
	PanelGame
	PanelGameOver
)

// Visual characters and sizes.
const (
	LifeChar      = '♥'
	ButtonFill    = '█'
	buttonHeight  = 3
	minButtonW    = 5
	maxButtonW    = 14
	buttonGap     = 2
	hudRows       = 3 // score/time line, lives line, spacer
	noButton      = -1
	gameOverHint  = "R: restart   Esc: menu"
	menuTitle     = "R E F L E X"
	menuRules     = "Hit the green button before the clock runs out."
	menuPrompt    = "Press Enter to play"
	markedColor   = core.ColorBrightGreen
	unmarkedColor = core.ColorRed
)

// Board implements round.Surface for a terminal screen.
type Board struct {
	options int
	labels  []string
	logger  *log.Logger

	panel     Panel
	lifeIcons []rune
	timeText  string
	scoreText string
	marked    int
	overText  string

	buttons []core.Rect // Layout from the last Render, for hit-testing
}

// New creates a board for the given number of options.
// labels name the key bound to each option; missing labels are left blank.
func New(options int, labels []string, logger *log.Logger) *Board {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := &Board{
		options: options,
		labels:  append([]string(nil), labels...),
		logger:  logger,
		marked:  noButton,
	}
	b.ShowMenu()
	return b
}

// ShowMenu discards the game view and shows the start panel.
func (b *Board) ShowMenu() {
	b.panel = PanelMenu
	b.lifeIcons = nil
	b.timeText = ""
	b.scoreText = ""
	b.marked = noButton
	b.overText = ""
}

// ShowGame builds the game view: one icon per life and the initial labels.
func (b *Board) ShowGame(lives int, secondsLeft float64, points int) {
	b.panel = PanelGame
	b.lifeIcons = make([]rune, lives)
	for i := range b.lifeIcons {
		b.lifeIcons[i] = LifeChar
	}
	b.marked = noButton
	b.overText = ""
	b.ShowTime(secondsLeft)
	b.ShowScore(points)
}

// Panel returns the view currently shown.
func (b *Board) Panel() Panel {
	return b.panel
}

// MarkTarget highlights option id.
func (b *Board) MarkTarget(id int) {
	if id < 0 || id >= b.options {
		b.logger.Warn("trying to mark nonexistent button", "id", id)
		return
	}
	b.marked = id
}

// UnmarkTarget removes the highlight from option id.
func (b *Board) UnmarkTarget(id int) {
	if id < 0 || id >= b.options {
		b.logger.Warn("trying to unmark nonexistent button", "id", id)
		return
	}
	if b.marked == id {
		b.marked = noButton
	}
}

// ShowTime updates the countdown label.
func (b *Board) ShowTime(secondsLeft float64) {
	b.timeText = FormatClock(secondsLeft)
}

// ShowScore updates the score label.
func (b *Board) ShowScore(points int) {
	b.scoreText = FormatScore(points)
}

// ShowLives removes life icons until remaining are left.
// Icons are only ever removed; a higher count leaves the bar as is.
func (b *Board) ShowLives(remaining int) {
	if remaining < 0 {
		remaining = 0
	}
	for len(b.lifeIcons) > remaining {
		b.lifeIcons = b.lifeIcons[:len(b.lifeIcons)-1]
	}
}

// ShowGameOver switches to the game-over panel with the final score.
func (b *Board) ShowGameOver(finalScore int) {
	b.panel = PanelGameOver
	b.overText = FormatGameOver(finalScore)
}

// Marked returns the highlighted option, if any.
func (b *Board) Marked() (int, bool) {
	return b.marked, b.marked != noButton
}

// Lives returns the number of life icons currently shown.
func (b *Board) Lives() int {
	return len(b.lifeIcons)
}

// ButtonAt returns the option under screen position (x, y).
// Buttons only accept clicks while the game panel is shown.
func (b *Board) ButtonAt(x, y int) (int, bool) {
	if b.panel != PanelGame {
		return 0, false
	}
	for id, r := range b.buttons {
		if r.Contains(x, y) {
			return id, true
		}
	}
	return 0, false
}

// Render draws the current panel to the screen.
func (b *Board) Render(dst *core.Screen) {
	dst.Clear()
	b.buttons = layoutButtons(b.options, dst.Width(), dst.Height())

	if b.panel == PanelMenu {
		b.drawMenu(dst)
		return
	}

	b.drawHUD(dst)
	b.drawButtons(dst)
	if b.panel == PanelGameOver {
		b.drawCenteredMessage(dst, b.overText, gameOverHint)
	}
}

func (b *Board) drawMenu(dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-2, menuTitle, core.ColorBrightGreen)
	dst.DrawTextCentered(mid, menuRules, core.ColorDefault)
	dst.DrawTextCentered(mid+2, menuPrompt, core.ColorBrightYellow)
}

func (b *Board) drawHUD(dst *core.Screen) {
	dst.DrawTextColor(2, 0, b.scoreText, core.ColorBrightWhite)
	dst.DrawTextColor(dst.Width()-len(b.timeText)-2, 0, b.timeText, core.ColorBrightYellow)

	var lives strings.Builder
	for i, r := range b.lifeIcons {
		if i > 0 {
			lives.WriteRune(' ')
		}
		lives.WriteRune(r)
	}
	dst.DrawTextColor(2, 1, lives.String(), core.ColorBrightRed)
}

func (b *Board) drawButtons(dst *core.Screen) {
	for id, r := range b.buttons {
		color := unmarkedColor
		if id == b.marked {
			color = markedColor
		}
		dst.DrawRect(r, ButtonFill, color)

		if id < len(b.labels) && b.labels[id] != "" {
			label := " " + b.labels[id] + " "
			x := r.X + (r.W-len(label))/2
			dst.DrawTextColor(x, r.Y+r.H/2, label, core.ColorBrightWhite)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (b *Board) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)

	// Draw text
	titleX := boxX + (boxW-len(title))/2
	dst.DrawTextColor(titleX, boxY+1, title, core.ColorBrightWhite)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawTextColor(subtitleX, boxY+3, subtitle, core.ColorGray)
}

// layoutButtons places options left to right below the HUD, wrapping into
// more rows when the screen is too narrow.
func layoutButtons(options, screenW, screenH int) []core.Rect {
	if options <= 0 || screenW <= 0 {
		return nil
	}

	usable := screenW - 4
	cols := core.Clamp(usable/(minButtonW+buttonGap), 1, options)
	rows := (options + cols - 1) / cols
	w := core.Clamp((usable-(cols-1)*buttonGap)/cols, 1, maxButtonW)

	rowW := cols*w + (cols-1)*buttonGap
	left := (screenW - rowW) / 2
	blockH := rows*buttonHeight + (rows-1)
	top := core.Max(hudRows, hudRows+(screenH-hudRows-blockH)/2)

	rects := make([]core.Rect, options)
	for id := range rects {
		row, col := id/cols, id%cols
		rects[id] = core.NewRect(
			left+col*(w+buttonGap),
			top+row*(buttonHeight+1),
			w,
			buttonHeight,
		)
	}
	return rects
}

var _ round.Surface = (*Board)(nil)
