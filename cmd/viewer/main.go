package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"antcolony.ai/internal/render/termview"
	"antcolony.ai/internal/sim/geom"
	"antcolony.ai/internal/sim/tuning"
	"antcolony.ai/internal/sim/world"
)

func main() {
	var (
		configDir  = flag.String("configs", "./configs", "config directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		seed       = flag.Int64("seed", 0, "world seed (0: use tuning seed)")
		cellSize   = flag.Float64("cell", 1, "world units per terminal cell")
	)
	flag.Parse()

	tp := *tuningPath
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "load tuning:", err)
			os.Exit(1)
		}
		tune = tuning.Defaults()
	}
	if *seed != 0 {
		tune.Seed = *seed
	}

	w, err := world.New(world.ConfigFromTuning("viewer", tune))
	if err != nil {
		fmt.Fprintln(os.Stderr, "world:", err)
		os.Exit(1)
	}
	if err := w.SeedScenario(tune.Scenario); err != nil {
		fmt.Fprintln(os.Stderr, "seed scenario:", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "screen:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "screen:", err)
		os.Exit(1)
	}
	defer screen.Fini()

	v := newViewer(w, screen, *cellSize)
	v.run()
}

type viewer struct {
	w        *world.World
	screen   tcell.Screen
	renderer *termview.Renderer

	center   geom.Vec2
	cellSize float64

	// notice is the outcome of the last spawn key, shown on the status line.
	notice string
}

func newViewer(w *world.World, screen tcell.Screen, cellSize float64) *viewer {
	if cellSize <= 0 {
		cellSize = 1
	}
	v := &viewer{w: w, screen: screen, renderer: termview.New(screen), cellSize: cellSize}
	if r := w.Roster(); len(r) > 0 {
		v.center = r[0].Pos
	}
	return v
}

// view is the world rectangle currently mapped onto the screen.
func (v *viewer) view() geom.Rect {
	cols, rows := v.screen.Size()
	half := geom.V(float64(cols)*v.cellSize/2, float64(max(rows-1, 1))*v.cellSize/2)
	return geom.RectFromCorners(v.center.Sub(half), v.center.Add(half))
}

func (v *viewer) draw() {
	v.renderer.Draw(v.w.ViewMsg(v.view(), 0))
	v.renderer.Notice(v.notice)
}

// handle applies one input event and reports whether the viewer should keep running.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) handleKey(k tcell.Key, r rune) bool {
	cols, rows := v.screen.Size()
	panX, panY := float64(max(cols/8, 1))*v.cellSize, float64(max(rows/8, 1))*v.cellSize
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.center.X -= panX
	case tcell.KeyRight:
		v.center.X += panX
	case tcell.KeyUp:
		v.center.Y -= panY
	case tcell.KeyDown:
		v.center.Y += panY
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case 'w', 's':
			kind := world.KindWorker
			if r == 's' {
				kind = world.KindScout
			}
			if id, err := v.spawn(kind); err != nil {
				v.notice = "spawn: " + err.Error()
			} else {
				v.notice = "spawned " + id
			}
		case '+', '=':
			v.cellSize /= 2
		case '-':
			v.cellSize *= 2
		}
	}
	return true
}

// spawn adds one agent of kind to the first base and returns its id.
func (v *viewer) spawn(kind world.AgentKind) (string, error) {
	bases := v.w.Bases()
	if len(bases) == 0 {
		return "", errors.New("no base in view world")
	}
	as, err := v.w.CreateAgents(bases[0], string(kind), 1)
	if err != nil {
		return "", err
	}
	return as[0].ID(), nil
}

func (v *viewer) run() {
	ticker := time.NewTicker(time.Second / time.Duration(v.w.TickRateHz()))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	v.draw()
	for {
		select {
		case ev := <-eventChan:
			if !v.handle(ev) {
				return
			}
			v.draw()
		case <-ticker.C:
			v.w.Update()
			v.draw()
		}
	}
}
