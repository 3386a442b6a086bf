//go:build ebiten

package app

import (
	"image/color"
	"log/slog"

	"rdcore/internal/core"
	"rdcore/internal/render"
	"rdcore/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a reaction-diffusion engine to the ebiten.Game interface.
type Game struct {
	engine  core.Engine
	cfg     Config
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	clock   *Clock
	log     *slog.Logger

	onColor  color.Color
	offColor color.Color

	chemical int
	paused   bool
	tickOnce bool
	painting bool
}

// New constructs a Game for the provided engine.
func New(engine core.Engine, cfg *Config, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	size := engine.Size()
	g := &Game{
		engine:   engine,
		cfg:      *cfg,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(engine, cfg.HUDWidth),
		overlay:  ui.NewOverlay(engine),
		clock:    NewClock(cfg.TPS),
		log:      logger,
		onColor:  color.White,
		offColor: color.Black,
		chemical: cfg.Chemical,
	}
	if g.cfg.Scale <= 0 {
		g.cfg.Scale = 1
	}
	if g.chemical < 0 || g.chemical >= engine.NumberOfChemicals() {
		g.chemical = 0
	}
	return g
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ) && !shift:
		g.undo()
	case ctrl && (inpututil.IsKeyJustPressed(ebiten.KeyY) || (shift && inpututil.IsKeyJustPressed(ebiten.KeyZ))):
		g.redo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.save()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
		g.clock.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.tickOnce = true
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := g.engine.GenerateInitialPattern(); err != nil {
			return err
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.chemical = (g.chemical + 1) % g.engine.NumberOfChemicals()
	}

	g.overlay.Update()
	g.hud.Update(g.arenaWidth())
	g.handlePaint()

	steps := 0
	if !g.paused {
		steps = g.clock.Due() * g.cfg.StepsPerTick
	} else if g.tickOnce {
		steps = 1
	}
	g.tickOnce = false
	if steps > 0 {
		return g.engine.Update(steps)
	}
	return nil
}

func (g *Game) handlePaint() {
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.painting {
		g.painting = false
		g.engine.SetUndoPoint()
		return
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y := mx/g.cfg.Scale, my/g.cfg.Scale
	size := g.engine.Size()
	if mx < 0 || my < 0 || x >= size.W || y >= size.H {
		return
	}
	if err := g.engine.SetValuesInRadius(x, y, g.chemical, g.cfg.BrushRadius, g.cfg.BrushValue); err != nil {
		g.log.Warn("paint failed", "x", x, "y", y, "err", err)
		return
	}
	g.painting = true
}

func (g *Game) undo() {
	if !g.engine.CanUndo() {
		return
	}
	if err := g.engine.Undo(); err != nil {
		g.log.Warn("undo failed", "err", err)
	}
}

func (g *Game) redo() {
	if !g.engine.CanRedo() {
		return
	}
	if err := g.engine.Redo(); err != nil {
		g.log.Warn("redo failed", "err", err)
	}
}

func (g *Game) save() {
	if g.cfg.File == "" {
		g.log.Warn("no file to save to, pass --file")
		return
	}
	if err := Save(g.engine, g.cfg.File); err != nil {
		g.log.Error("save failed", "path", g.cfg.File, "err", err)
		return
	}
	g.log.Info("saved", "path", g.cfg.File)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	values, err := g.engine.Data(g.chemical)
	if err != nil {
		return
	}
	low, high := g.cfg.Low, g.cfg.High
	if high <= low {
		low, high = render.Range(values)
	}
	g.painter.Blit(screen, values, low, high, g.onColor, g.offColor, g.cfg.Scale)
	g.hud.Draw(screen, g.arenaWidth(), g.cfg.Scale)
	g.overlay.Draw(screen, g.chemical, g.paused)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.engine.Size()
	return g.arenaWidth() + g.cfg.HUDWidth, s.H * g.cfg.Scale
}

func (g *Game) arenaWidth() int {
	return g.engine.Size().W * g.cfg.Scale
}
