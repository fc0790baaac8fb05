package game

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"

	"github.com/vovakirdan/ten-second-life/internal/core"
)

// Playfield layout in screen rows: two HUD rows, the bordered field, and a
// message row at the bottom.
const (
	hudRows      = 2
	messageRows  = 1
	maxPanelWide = 64
)

// Render draws the current state into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.state == StateMenu {
		g.renderMenu(dst)
		return
	}

	if g.level != nil {
		g.renderHUD(dst)
		g.renderField(dst)
		g.renderMessage(dst)
	}

	switch g.state {
	case StateDeath:
		g.renderPanel(dst, "YOU RAN OUT OF TIME", core.ColorBrightRed, g.quote,
			fmt.Sprintf("Lives remaining: %d", g.lives),
			"Press SPACE to try again")
	case StateLevelComplete:
		lesson := ""
		if g.level != nil {
			lesson = g.level.Lesson()
		}
		g.renderPanel(dst, "LEVEL COMPLETE!", core.ColorBrightGreen, lesson,
			fmt.Sprintf("Time left: %.1fs", g.timer.Remaining()),
			"Press SPACE to continue")
	case StateVictory:
		g.renderPanel(dst, "CONGRATULATIONS!", core.ColorGold,
			fmt.Sprintf("You cleared all %d levels. Ten seconds at a time was enough.", g.catalog.Len()),
			fmt.Sprintf("Total lives used: %d", g.lastRun.Attempts),
			fmt.Sprintf("Time played: %.1fs", g.lastRun.Seconds),
			"SPACE to play again, ESC for the menu")
	case StateGameOver:
		g.renderPanel(dst, "GAME OVER", core.ColorRed,
			fmt.Sprintf("You reached Level %d using %d lives.", g.lastRun.LevelReached, g.lastRun.Attempts),
			"Press SPACE to return to the menu")
	}
}

func (g *Game) renderMenu(dst *core.Screen) {
	h := dst.Height()
	y := max(1, h/2-6)

	dst.DrawTextCenteredColor(y, "T E N   S E C O N D   L I F E", core.ColorBrightCyan)
	y += 2
	for _, line := range wrap("You have ten seconds per life. Make every one of them count.", min(dst.Width()-4, maxPanelWide)) {
		dst.DrawTextCenteredColor(y, line, core.ColorWhite)
		y++
	}
	y++
	dst.DrawTextCenteredColor(y, fmt.Sprintf("Lives: %d   Levels: %d", g.cfg.Life.Lives, g.catalog.Len()), core.ColorGray)
	y += 2

	if cur := g.world.CurrentLevel; cur != "" {
		if i, ok := g.catalog.Index(cur); ok {
			def, _ := g.catalog.At(i)
			dst.DrawTextCenteredColor(y, fmt.Sprintf("Resume at Level %d: %s", def.Number, def.Title), core.ColorYellow)
			y++
		}
	}
	dst.DrawTextCenteredColor(y, "Press SPACE to start", core.ColorBrightGreen)
	dst.DrawTextCenteredColor(y+1, "ESC to quit", core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen) {
	hearts := strings.Repeat("♥", g.lives)
	left := fmt.Sprintf(" Level %d: %s", g.level.Number(), g.level.Title())
	right := fmt.Sprintf("Lives %s  Time %4.1fs ", hearts, g.timer.Remaining())
	if inv := g.player.Inventory; inv.String() != "none" {
		right = fmt.Sprintf("Holding %s  %s", inv.Label(), right)
	}

	dst.DrawTextColor(0, 0, left, core.ColorBrightWhite)
	timeColor := core.ColorBrightGreen
	switch {
	case g.timer.Remaining() <= g.cfg.Life.LowTimeWarning:
		timeColor = core.ColorBrightRed
	case g.timer.Fraction() < 0.5:
		timeColor = core.ColorBrightYellow
	}
	dst.DrawTextColor(dst.Width()-utf8.RuneCountInString(right), 0, right, timeColor)
	dst.DrawTextColor(1, 1, g.level.Objective(g.player), core.ColorCyan)
}

// field returns the screen rectangle inside the playfield border.
func field(dst *core.Screen) (x, y, w, h int) {
	return 1, hudRows + 1, dst.Width() - 2, dst.Height() - hudRows - messageRows - 2
}

// project maps a world rectangle to screen cells, at least one cell wide.
func (g *Game) project(dst *core.Screen, r core.Rect) (x, y, w, h int) {
	fx, fy, fw, fh := field(dst)
	sx := float64(fw) / g.bounds.W
	sy := float64(fh) / g.bounds.H

	x0 := int(math.Floor(r.X * sx))
	y0 := int(math.Floor(r.Y * sy))
	x1 := int(math.Ceil(r.Right() * sx))
	y1 := int(math.Ceil(r.Bottom() * sy))
	return fx + x0, fy + y0, max(1, x1-x0), max(1, y1-y0)
}

func (g *Game) renderField(dst *core.Screen) {
	fx, fy, fw, fh := field(dst)
	if fw < 2 || fh < 2 {
		return
	}
	dst.DrawBox(fx-1, fy-1, fw+2, fh+2, core.ColorGray)

	for _, e := range g.level.Entities() {
		if !e.Visible() {
			continue
		}
		r, c := e.Glyph()
		x, y, w, h := g.project(dst, e.Box)
		dst.FillRect(x, y, w, h, core.Cell{Rune: r, Color: c})
		if e.Name != "" && y > fy {
			label := e.Name
			dst.DrawTextColor(x+w/2-utf8.RuneCountInString(label)/2, y-1, label, core.ColorGreen)
		}
	}

	x, y, w, h := g.project(dst, g.player.Box)
	dst.FillRect(x, y, w, h, core.Cell{Rune: '@', Color: core.ColorBrightWhite})
}

func (g *Game) renderMessage(dst *core.Screen) {
	y := dst.Height() - 1
	switch {
	case g.message != "":
		dst.DrawTextCenteredColor(y, g.message, core.ColorBrightYellow)
	case g.banner != "":
		dst.DrawTextCenteredColor(y, g.banner, core.ColorBrightCyan)
	}
}

// renderPanel draws a centered box with a title, a wrapped body and
// trailing single lines.
func (g *Game) renderPanel(dst *core.Screen, title string, color core.Color, body string, lines ...string) {
	width := min(dst.Width()-4, maxPanelWide)
	if width < 10 {
		return
	}
	bodyLines := wrap(body, width-4)

	height := 4 + len(lines)
	if len(bodyLines) > 0 {
		height += len(bodyLines) + 1
	}
	x := (dst.Width() - width) / 2
	y := max(0, (dst.Height()-height)/2)

	dst.FillRect(x, y, width, height, core.Cell{Rune: ' '})
	dst.DrawBox(x, y, width, height, color)

	row := y + 1
	dst.DrawTextCenteredColor(row, title, color)
	row += 2
	for _, l := range bodyLines {
		dst.DrawTextCenteredColor(row, l, core.ColorWhite)
		row++
	}
	if len(bodyLines) > 0 {
		row++
	}
	for i, l := range lines {
		c := core.ColorBrightYellow
		if i == len(lines)-1 {
			c = core.ColorBrightGreen
		}
		dst.DrawTextCenteredColor(row, l, c)
		row++
	}
}

// wrap word-wraps text to width and drops empty trailing lines.
func wrap(text string, width int) []string {
	text = strings.TrimSpace(text)
	if text == "" || width <= 0 {
		return nil
	}
	return strings.Split(wordwrap.String(text, width), "\n")
}
