// Package bridge runs the display dispatcher against the simulated
// printer: VP reports from the display and the refresh cycle are served
// from a single goroutine.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"dgusbridge/config"
	"dgusbridge/dgus"
	"dgusbridge/host/display"
	"dgusbridge/protocol"
	"dgusbridge/sim"
)

// ErrDisconnected is returned by Run when the report channel closes.
var ErrDisconnected = errors.New("bridge: display disconnected")

// versionRequester is implemented by displays that can report their
// firmware version.
type versionRequester interface {
	RequestVersion() error
}

// Bridge owns the dispatcher and everything behind it.
type Bridge struct {
	Dispatcher *dgus.Dispatcher
	Printer    *sim.Printer
	Store      *sim.Store
	Media      *sim.Media // nil without SD support

	display  dgus.Display
	interval time.Duration
	logger   *log.Logger

	lastTick time.Time
}

// New builds the simulated printer, its settings store and media from
// cfg and a dispatcher writing to disp. cfg must be validated and
// normalized.
func New(cfg *config.Config, disp dgus.Display, logger *log.Logger) (*Bridge, error) {
	if logger == nil {
		logger = log.Default()
	}

	printer := sim.NewPrinter(cfg.Machine.MachineConfig)
	store := sim.NewStore(cfg.Machine.SettingsPath, printer)

	opts := cfg.DispatchOptions()
	opts.Machine = printer
	opts.Settings = store
	opts.Display = disp

	var media *sim.Media
	if cfg.Features.SDSupport {
		media = sim.NewMedia(cfg.Machine.MediaRoot)
		opts.Media = media
	}

	d, err := dgus.New(opts)
	if err != nil {
		return nil, fmt.Errorf("bridge: %w", err)
	}

	store.AttachUI(d.UI())
	if err := store.Load(); err != nil {
		// a broken settings file should not keep the display dark
		logger.Printf("bridge: settings=%s: %v, using defaults", store.Path(), err)
		if err := store.Reset(); err != nil {
			return nil, fmt.Errorf("bridge: %w", err)
		}
	}

	return &Bridge{
		Dispatcher: d,
		Printer:    printer,
		Store:      store,
		Media:      media,
		display:    disp,
		interval:   cfg.Interval(),
		logger:     logger,
	}, nil
}

// Start pushes the display settings and picks the first page.
func (b *Bridge) Start() error {
	if err := b.Dispatcher.Init(); err != nil {
		return err
	}
	if vr, ok := b.display.(versionRequester); ok {
		if err := vr.RequestVersion(); err != nil {
			b.logger.Printf("bridge: version request: %v", err)
		}
	}
	return nil
}

// Run serves reports and the refresh cycle until ctx is done or the
// display goes away. A deferred settings save is run on the way out.
func (b *Bridge) Run(ctx context.Context, reports <-chan protocol.Frame) error {
	if err := b.Start(); err != nil {
		return err
	}

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	b.lastTick = time.Now()

	for {
		select {
		case <-ctx.Done():
			return b.shutdown()

		case f, ok := <-reports:
			if !ok {
				return errors.Join(ErrDisconnected, b.shutdown())
			}
			b.HandleReport(f)

		case now := <-ticker.C:
			dt := now.Sub(b.lastTick)
			b.lastTick = now
			b.Step(dt)
		}
	}
}

// HandleReport dispatches one frame from the display.
func (b *Bridge) HandleReport(f protocol.Frame) {
	if f.Command != protocol.CmdReadVar {
		return
	}

	addr, data := dgus.Addr(f.Addr), f.Data
	if display.IsVersionReport(f) {
		addr, data = dgus.AddrInfosScreenVersion, []byte(display.Version(f))
	}

	err := b.Dispatcher.Dispatch(addr, data)
	var statusErr *dgus.StatusError
	switch {
	case err == nil:
	case errors.As(err, &statusErr):
		dgus.DebugPrintln(fmt.Sprintf("bridge: vp=%s rejected: %v", addr, err))
	default:
		b.logger.Printf("bridge: vp=%s: %v", addr, err)
	}
}

// Step advances the printer by dt and runs one refresh cycle.
func (b *Bridge) Step(dt time.Duration) {
	b.Printer.Tick(dt)
	if err := b.Dispatcher.Loop(); err != nil {
		b.logger.Printf("bridge: refresh: %v", err)
	}
}

func (b *Bridge) shutdown() error {
	if err := b.Dispatcher.Flush(); err != nil {
		return fmt.Errorf("bridge: %w", err)
	}
	return nil
}
