package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Each grid cell is drawn two columns wide so the board looks square.
const cellW = 2

// boardSize returns the screen area the HUD plus the framed board needs.
func (g *Game) boardSize() (w, h int) {
	n := g.cfg.Grid.Size
	return n*cellW + 2, n + 3
}

func (g *Game) fits(w, h int) bool {
	needW, needH := g.boardSize()
	return w >= needW && h >= needH
}

// Render draws the HUD, the board and any overlay into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	g.renderHUD(dst)

	if !g.fits(dst.Width(), dst.Height()) {
		needW, needH := g.boardSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", needW, needH))
		return
	}

	box := g.boardRect(dst)
	dst.DrawBox(box, core.ColorGray)
	g.renderSnake(dst, box)
	g.renderFood(dst, box)

	switch {
	case g.state.Status == StatusOver && g.state.EndReason == EndBoardFull:
		g.renderOverlay(dst, "Board cleared!", fmt.Sprintf("Score: %d  Press R to restart", g.state.Score))
	case g.state.Status == StatusOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  Press R to restart", g.state.Score))
	case g.PlaybackDone():
		g.renderOverlay(dst, "Replay finished", "Press R to watch again")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Score: %d  Best: %d  Len: %d  Speed: %dms",
		g.title, g.state.Score, g.state.HighScore, g.state.Len(), g.state.Speed)
	if g.difficulty.IsEnabled() {
		level := g.difficulty.Level(g.state.Score, g.state.Tick)
		hud += fmt.Sprintf("  Lvl: %.0f%%", level*100)
	}
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
}

// boardRect centers the framed board horizontally below the HUD.
func (g *Game) boardRect(dst *core.Screen) core.Rect {
	w, h := g.boardSize()
	return core.NewRect((dst.Width()-w)/2, 1, w, h-1)
}

// cellPos maps a grid cell to the screen column and row of its left half.
func cellPos(box core.Rect, c Cell) (int, int) {
	return box.X + 1 + c.X*cellW, box.Y + 1 + c.Y
}

func (g *Game) renderSnake(dst *core.Screen, box core.Rect) {
	// Tail first so the head stays on top
	for i := len(g.state.Snake) - 1; i >= 0; i-- {
		x, y := cellPos(box, g.state.Snake[i])
		if i == 0 {
			dst.SetWide(x, y, '█', '█', core.ColorBrightGreen) // Head
			continue
		}
		dst.SetWide(x, y, '▓', '▓', core.ColorGreen)
	}
}

func (g *Game) renderFood(dst *core.Screen, box core.Rect) {
	if len(g.state.Snake) > 0 && g.state.Food == g.state.Snake[0] {
		return
	}
	x, y := cellPos(box, g.state.Food)
	dst.SetWide(x, y, '(', ')', core.ColorBrightRed)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	r := core.Centered(dst.Width(), dst.Height(), maxLen+4, 5)

	dst.Fill(r, ' ')
	dst.DrawBox(r, core.ColorWhite)
	dst.DrawTextCentered(r.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(r.Y+3, line2, core.ColorWhite)
}
