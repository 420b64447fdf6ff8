// orrery - Terminal Solar System
// Fly a ship through a procedurally shaded solar system in your terminal.
//
// Controls:
//
//	W/S         - Throttle up/down (hold Shift for a bigger push)
//	A/D         - Yaw left/right
//	Up/Down     - Pitch up/down
//	Q/E         - Roll left/right
//	Space       - Pause the simulation clock
//	O           - Toggle orbit lines
//	+/-         - Simulation speed
//	?           - Toggle HUD overlay
//	Esc         - Quit
//
// With -frames the scene is rendered offline to numbered PNG files instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/schollz/progressbar/v3"
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
)

var (
	targetFPS = flag.Int("fps", 30, "Target FPS")
	width     = flag.Int("width", 320, "Offline frame width in pixels")
	height    = flag.Int("height", 180, "Offline frame height in pixels")
	frames    = flag.Int("frames", 0, "Render this many frames to PNG instead of the terminal")
	outDir    = flag.String("out", "frames", "Output directory for -frames")
	workers   = flag.Int("workers", runtime.NumCPU(), "Screen bands drawn in parallel (1 = sequential)")
	shipPath  = flag.String("ship", "", "Ship model (OBJ/GLB); a cube when empty")
	scenePath = flag.String("scene", "", "Scene YAML; the built-in solar system when empty")
	logLevel  = flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	logFile   = flag.String("log", "", "Log file (interactive mode only logs when set)")
)

// startPosition is outside Earth's orbit, facing the sun.
var startPosition = math3d.V3(0, 150, 2600)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "orrery - Terminal Solar System\n\n")
		fmt.Fprintf(os.Stderr, "Usage: orrery [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S         - Throttle\n")
		fmt.Fprintf(os.Stderr, "  A/D         - Yaw\n")
		fmt.Fprintf(os.Stderr, "  Up/Down     - Pitch\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll\n")
		fmt.Fprintf(os.Stderr, "  Space       - Pause\n")
		fmt.Fprintf(os.Stderr, "  O           - Toggle orbits\n")
		fmt.Fprintf(os.Stderr, "  +/-         - Simulation speed\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if *targetFPS < 1 {
		*targetFPS = 1
	}
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging installs the process logger. The returned func closes any log
// file.
func setupLogging(interactive bool) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	out, closeFn := os.Stderr, func() {}
	switch {
	case *logFile != "":
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	case interactive:
		// stderr would tear the alternate screen.
		return slog.New(slog.DiscardHandler), closeFn, nil
	}

	log := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	render.SetLogger(log)
	return log, closeFn, nil
}

func loadWorld(log *slog.Logger) (*World, error) {
	sys := scene.Default()
	if *scenePath != "" {
		var err error
		if sys, err = scene.Load(*scenePath, log); err != nil {
			return nil, err
		}
	}

	var ship *models.Mesh
	if *shipPath != "" {
		var err error
		if ship, err = LoadShip(*shipPath); err != nil {
			return nil, err
		}
		log.Info("loaded ship", "path", *shipPath, "triangles", ship.TriangleCount())
	}
	return NewWorld(sys, ship, *workers), nil
}

func run() error {
	interactive := *frames <= 0
	log, closeLog, err := setupLogging(interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	world, err := loadWorld(log)
	if err != nil {
		return err
	}

	// Context for clean shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !interactive {
		return renderFrames(ctx, world, log)
	}
	return runTerminal(ctx, cancel, world)
}

// renderFrames writes -frames PNGs at a fixed timestep while the ship cruises
// toward the sun.
func renderFrames(ctx context.Context, world *World, log *slog.Logger) error {
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fb := render.NewFramebuffer(*width, *height)
	ship := NewShip(startPosition, *targetFPS)
	ship.Throttle, ship.Speed = maxThrottle/4, maxThrottle/4
	dt := 1 / float64(*targetFPS)

	bar := progressbar.Default(int64(*frames), "rendering")
	start := time.Now()
	for i := range *frames {
		ship.Update(dt)
		eye := render.DefaultChase.ChaseEye(ship.Position, ship.Forward(), ship.Up())
		if _, err := world.Draw(ctx, fb, float64(i)*dt, ship, eye); err != nil {
			return err
		}

		path := filepath.Join(*outDir, fmt.Sprintf("frame_%04d.png", i))
		if err := fb.SavePNG(path); err != nil {
			return err
		}
		if err := bar.Add(1); err != nil {
			return fmt.Errorf("progress: %w", err)
		}
	}
	log.Info("rendered frames", "count", *frames, "dir", *outDir, "elapsed", time.Since(start))
	return nil
}

// View holds interactive toggles shared between the event goroutine and the
// main loop.
type View struct {
	Paused     bool
	ShowHUD    bool
	ShowOrbits bool
	Speed      float64 // simulation seconds per real second
}

// HUD renders an overlay with flight info.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD directly to the terminal.
func (h *HUD) Render(width, height int, view *View, ship *Ship, stats render.Stats) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)
	if !view.ShowHUD {
		return
	}

	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	tris := fmt.Sprintf("%d/%d tris", stats.Drawn, stats.Triangles)
	fmt.Print(moveTo(1, max(width-len(tris)-1, 1)) +
		fmt.Sprintf("%s%s%s %s %s", bgBlack, fgCyan, bold, tris, reset))

	clock := fmt.Sprintf("x%.2g", view.Speed)
	if view.Paused {
		clock = "paused"
	}
	fmt.Print(moveTo(height, 1) +
		fmt.Sprintf("%s%s speed %4.0f  time %s %s", bgBlack, fgWhite, ship.Speed, clock, reset))

	pos := fmt.Sprintf("%.0f, %.0f, %.0f", ship.Position.X, ship.Position.Y, ship.Position.Z)
	fmt.Print(moveTo(height, max(width-len(pos)-1, 1)) +
		fmt.Sprintf("%s%s%s %s", bgBlack, fgYellow, pos, reset))
}

func runTerminal(ctx context.Context, cancel context.CancelFunc, world *World) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fb := render.NewFramebuffer(termRenderer.FramebufferSize())

	ship := NewShip(startPosition, *targetFPS)
	chase := NewChase(*targetFPS)
	view := &View{ShowHUD: true, ShowOrbits: true, Speed: 1}
	hud := NewHUD()

	// Input state
	inputTorque := struct{ pitch, yaw, roll float64 }{}
	const (
		torqueStrength = 0.6
		throttleStep   = 8.0
		turbo          = 3.0
	)

	// mu guards ship, view and inputTorque against the event goroutine.
	var mu sync.Mutex

	// Event handler
	resized := make(chan [2]int, 1)
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case <-resized:
				default:
				}
				resized <- [2]int{ev.Width, ev.Height}

			case uv.KeyPressEvent:
				mu.Lock()
				switch {
				case ev.MatchString("escape", "ctrl+c"):
					mu.Unlock()
					cancel()
					return
				case ev.MatchString("w"):
					ship.AddThrottle(throttleStep)
				case ev.MatchString("shift+w", "W"):
					ship.AddThrottle(throttleStep * turbo)
				case ev.MatchString("s"):
					ship.AddThrottle(-throttleStep)
				case ev.MatchString("shift+s", "S"):
					ship.AddThrottle(-throttleStep * turbo)
				case ev.MatchString("a", "left"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("up"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("down"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("q"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("space"):
					view.Paused = !view.Paused
				case ev.MatchString("o"):
					view.ShowOrbits = !view.ShowOrbits
				case ev.MatchString("+", "="):
					view.Speed = min(view.Speed*1.5, 64)
				case ev.MatchString("-", "_"):
					view.Speed = max(view.Speed/1.5, 1.0/64)
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					view.ShowHUD = !view.ShowHUD
				}
				mu.Unlock()

			case uv.KeyReleaseEvent:
				mu.Lock()
				switch {
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("up"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
				}
				mu.Unlock()
			}
		}
	}()

	// Main loop
	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()
	var simTime float64

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		case size := <-resized:
			width, height = size[0], size[1]
			term.Erase()
			term.Resize(width, height)
			termRenderer = render.NewTerminalRenderer(term, width, height)
			fb = render.NewFramebuffer(termRenderer.FramebufferSize())
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		mu.Lock()
		// Apply input torque and decay it (key release events unreliable)
		ship.Steer(inputTorque.pitch*dt, inputTorque.yaw*dt, inputTorque.roll*dt)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9
		ship.Update(dt)

		if !view.Paused {
			simTime += dt * view.Speed
		}

		eye := chase.Update(render.DefaultChase.ChaseEye(ship.Position, ship.Forward(), ship.Up()))
		world.ShowOrbits = view.ShowOrbits
		snapshot, hudView := *ship, *view
		mu.Unlock()

		stats, err := world.Draw(ctx, fb, simTime, &snapshot, eye)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			cleanup()
			return err
		}

		// Display
		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height, &hudView, &snapshot, stats)

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
