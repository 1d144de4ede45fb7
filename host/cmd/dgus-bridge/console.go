package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
	"golang.org/x/term"

	"dgusbridge/dgus"
	"dgusbridge/host/bridge"
	"dgusbridge/host/display"
	"dgusbridge/protocol"
)

type consoleCmd struct {
	Config string `short:"c" type:"existingfile" help:"YAML configuration, defaults otherwise"`
	Manual bool   `help:"advance the simulation only with the tick command"`
	Quiet  bool   `help:"do not print VP writes"`
}

func (c *consoleCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}

	disp := display.NewLogDisplay(os.Stdout, nil)
	disp.Quiet = c.Quiet

	b, err := bridge.New(cfg, disp, log.New(os.Stderr, "", log.LstdFlags))
	if err != nil {
		return err
	}
	disp.SetTable(b.Dispatcher.Table())

	con := newConsole(b, disp, os.Stdout, cfg.Interval())
	if err := b.Start(); err != nil {
		return err
	}
	b.Step(0)

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	prompt := func() {
		if interactive {
			fmt.Print("> ")
		}
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	var tick <-chan time.Time
	if !c.Manual {
		ticker := time.NewTicker(cfg.Interval())
		defer ticker.Stop()
		tick = ticker.C
	}
	last := time.Now()

	prompt()
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return b.Dispatcher.Flush()
			}
			quit, err := con.execLine(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if quit {
				return b.Dispatcher.Flush()
			}
			prompt()

		case now := <-tick:
			b.Step(now.Sub(last))
			last = now
		}
	}
}

// console interprets the commands of the console subcommand. It runs on
// the bridge goroutine.
type console struct {
	b        *bridge.Bridge
	disp     *display.LogDisplay
	out      io.Writer
	interval time.Duration
}

func newConsole(b *bridge.Bridge, disp *display.LogDisplay, out io.Writer, interval time.Duration) *console {
	return &console{b: b, disp: disp, out: out, interval: interval}
}

// execLine runs one command line and reports whether to quit.
func (c *console) execLine(line string) (bool, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "quit", "exit", "q":
		return true, nil

	case "help", "?":
		c.printHelp()

	case "vp":
		return false, c.sendVP(args)

	case "screen":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: screen NAME")
		}
		s, ok := dgus.ParseScreen(strings.ToUpper(args[0]))
		if !ok {
			return false, fmt.Errorf("unknown screen %q", args[0])
		}
		c.dispatch(dgus.AddrScreenChange, []byte{0x00, byte(s)})

	case "tick":
		d := c.interval
		if len(args) == 1 {
			if d, err = time.ParseDuration(args[0]); err != nil {
				return false, err
			}
		}
		c.advance(d)

	case "gcode":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: gcode LINE")
		}
		return false, c.b.Printer.Enqueue(strings.Join(args, " "))

	case "print":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: print FILE")
		}
		return false, c.b.Printer.StartPrint(args[0])

	case "powerloss":
		if !c.b.Printer.PowerLoss() {
			return false, fmt.Errorf("no job running")
		}
		fmt.Fprintln(c.out, "power lost, recovery record kept")

	case "runout":
		if !c.b.Printer.FilamentRunout() {
			return false, fmt.Errorf("no job to park, or runout detection is off")
		}
		fmt.Fprintln(c.out, "filament runout, job parked")

	case "state":
		c.printState()

	case "trace":
		for _, evt := range dgus.Trace() {
			fmt.Fprintf(c.out, "  %-10s %s %s value=0x%04X\n", evt.Result, evt.Addr, c.name(evt.Addr), evt.Value)
		}

	case "debug":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return false, fmt.Errorf("usage: debug on|off")
		}
		dgus.SetDebugEnabled(args[0] == "on")

	default:
		return false, fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
	return false, nil
}

// sendVP writes a value to a VP as the display would:
//
//	vp NAME|ADDR SELECTOR    for command VPs
//	vp NAME|ADDR TEXT...     for text VPs
//	vp NAME|ADDR RAW         raw integer otherwise
func (c *console) sendVP(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: vp NAME|ADDR VALUE")
	}
	table := c.b.Dispatcher.Table()

	vp, ok := table.Lookup(args[0])
	if !ok {
		addr, err := strconv.ParseUint(args[0], 0, 16)
		if err != nil {
			return fmt.Errorf("unknown VP %q", args[0])
		}
		if vp, ok = table.Resolve(dgus.Addr(addr)); !ok {
			return fmt.Errorf("no VP at %s", dgus.Addr(addr))
		}
	}

	var data []byte
	switch {
	case vp.Flags&dgus.FlagSelector != 0:
		v, ok := table.SelectorValue(vp.Addr, args[1])
		if !ok {
			n, err := strconv.ParseUint(args[1], 0, 8)
			if err != nil {
				return fmt.Errorf("%s has no selector %q", vp.Name, args[1])
			}
			v = uint8(n)
		}
		data = []byte{0x00, v}

	case vp.Flags&dgus.FlagRxString != 0:
		data = []byte(strings.Join(args[1:], " "))

	default:
		n, err := strconv.ParseInt(args[1], 0, 32)
		if err != nil {
			return fmt.Errorf("%s: %w", vp.Name, err)
		}
		w := protocol.Width(vp.Size)
		if !w.Valid() {
			return fmt.Errorf("%s is not a scalar VP", vp.Name)
		}
		data = protocol.EncodeInt(int32(n), w)
	}

	c.dispatch(vp.Addr, data)
	return nil
}

// dispatch hands data to the dispatcher the way a display report would
// arrive.
func (c *console) dispatch(addr dgus.Addr, data []byte) {
	words := (len(data) + 1) / 2
	c.b.HandleReport(protocol.Frame{
		Command: protocol.CmdReadVar,
		Addr:    uint16(addr),
		Words:   uint8(words),
		Data:    data,
	})
	if msg := c.b.Dispatcher.Screens().StatusMessage(); msg != "" {
		fmt.Fprintf(c.out, "status: %s\n", msg)
	}
}

// advance runs the simulation for d in refresh-interval steps, at
// least one cycle.
func (c *console) advance(d time.Duration) {
	step := c.interval
	if step <= 0 {
		step = d
	}
	for {
		dt := min(step, d)
		c.b.Step(dt)
		d -= dt
		if d <= 0 {
			return
		}
	}
}

func (c *console) name(addr dgus.Addr) string {
	if vp, ok := c.b.Dispatcher.Table().Resolve(addr); ok {
		return vp.Name
	}
	return ""
}

func (c *console) printState() {
	p := c.b.Printer
	fmt.Fprintf(c.out, "screen:   %s\n", c.disp.Screen())
	fmt.Fprintf(c.out, "activity: printing=%v paused=%v idle=%v queued=%d\n", p.IsPrinting(), p.IsPaused(), p.IsIdle(), p.Queued())
	fmt.Fprintf(c.out, "position: X%.2f Y%.2f Z%.2f homed=%v\n",
		p.AxisPosition(dgus.AxisX), p.AxisPosition(dgus.AxisY), p.AxisPosition(dgus.AxisZ), p.PositionKnown())
	fmt.Fprintf(c.out, "hotend:   %.1f/%.0f C  bed: %.1f/%.0f C\n",
		p.CurrentTemp(dgus.HeaterH0), p.TargetTemp(dgus.HeaterH0), p.CurrentTemp(dgus.HeaterBed), p.TargetTemp(dgus.HeaterBed))
	if p.JobRunning() {
		fmt.Fprintf(c.out, "job:      %d%% %s\n", p.Progress(), p.Elapsed().Round(time.Second))
	}
	if msg := c.b.Dispatcher.Screens().StatusMessage(); msg != "" {
		fmt.Fprintf(c.out, "status:   %s\n", msg)
	}
}

func (c *console) printHelp() {
	fmt.Fprintln(c.out, "\nAvailable commands:")
	fmt.Fprintln(c.out, "  screen NAME         - Request a page, e.g. screen move")
	fmt.Fprintln(c.out, "  vp NAME|ADDR VALUE  - Send a VP write (selector name, text or raw integer)")
	fmt.Fprintln(c.out, "  tick [DURATION]     - Advance the simulation")
	fmt.Fprintln(c.out, "  gcode LINE          - Queue a G-code line on the printer")
	fmt.Fprintln(c.out, "  print FILE          - Start a print job")
	fmt.Fprintln(c.out, "  powerloss           - Cut power to a running job")
	fmt.Fprintln(c.out, "  runout              - Trigger the filament runout sensor")
	fmt.Fprintln(c.out, "  state               - Show the printer state")
	fmt.Fprintln(c.out, "  trace               - Show the recent dispatches")
	fmt.Fprintln(c.out, "  debug on|off        - Toggle dispatch debug output")
	fmt.Fprintln(c.out, "  quit/exit/q         - Exit the program")
	fmt.Fprintln(c.out)
}

func formatSelectors(selectors map[uint8]string) string {
	if len(selectors) == 0 {
		return ""
	}
	values := make([]int, 0, len(selectors))
	for v := range selectors {
		values = append(values, int(v))
	}
	sort.Ints(values)

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d=%s", v, selectors[uint8(v)])
	}
	return strings.Join(parts, " ")
}
