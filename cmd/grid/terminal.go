package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/grid/pkg/control"
	"github.com/taigrr/grid/pkg/render"
	"github.com/taigrr/grid/pkg/viewer"
	"golang.org/x/sync/errgroup"
)

var (
	hudFg = render.ColorWhite
	hudBg = render.ColorBlack
)

// runTerminal shows v on the terminal until the user quits or ctx ends.
// Terminal events are read on their own goroutine and handed to the render
// loop, which is the only goroutine touching the viewer.
func runTerminal(ctx context.Context, v *viewer.Viewer) error {
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

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			slog.Warn("terminal shutdown", "err", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan uv.Event, 64)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return forwardEvents(gctx, term.Events(), events)
	})
	g.Go(func() error {
		defer cancel()
		return renderLoop(gctx, term, v, width, height, events)
	})
	return g.Wait()
}

// forwardEvents passes terminal events to the render loop.
func forwardEvents(ctx context.Context, in <-chan uv.Event, out chan<- uv.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-in:
			if !ok {
				return nil
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func renderLoop(ctx context.Context, term *uv.Terminal, v *viewer.Viewer, width, height int, events <-chan uv.Event) error {
	presenter := render.NewTerminalPresenter(term, width, height)
	fb := render.NewFramebuffer(presenter.FramebufferSize())

	ticker := time.NewTicker(v.Config.FrameDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				presenter.Resize(width, height)
				fb = render.NewFramebuffer(presenter.FramebufferSize())
			case uv.KeyPressEvent:
				if ev.MatchString("escape", "ctrl+c") {
					return nil
				}
				handleKey(v, ev, time.Now())
			case uv.KeyReleaseEvent:
				for _, b := range control.Bindings {
					if ev.MatchString(b.Name) {
						v.Keys.Release(b.Key)
					}
				}
			}

		case now := <-ticker.C:
			v.Step(now)
			stats := v.Draw(fb)
			presenter.Render(fb)

			v.Meter.Tick(now)
			if v.ShowHUD {
				presenter.Text(0, 0, v.Status(stats), hudFg, hudBg)
			}

			if err := presenter.Flush(); err != nil {
				return fmt.Errorf("flush: %w", err)
			}
		}
	}
}

// handleKey records movement keys and runs action keys.
func handleKey(v *viewer.Viewer, ev uv.KeyPressEvent, now time.Time) {
	for _, b := range control.Bindings {
		if ev.MatchString(b.Name) {
			v.Keys.Press(b.Key, now)
			return
		}
	}
	for _, b := range viewer.ActionBindings {
		if ev.MatchString(b.Name) {
			v.Do(b.Action)
			return
		}
	}
}
