// dgus-bridge drives a DWIN DGUS touchscreen running the "reloaded"
// printer UI from a simulated printer.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"

	"dgusbridge/config"
	"dgusbridge/dgus"
	"dgusbridge/host/bridge"
	"dgusbridge/host/display"
	"dgusbridge/host/serial"
	"dgusbridge/protocol"
)

type CLI struct {
	Debug bool `help:"print dispatch traces"`

	Run     runCmd     `cmd:"" help:"bridge a display on a serial port to the simulated printer"`
	Table   tableCmd   `cmd:"" help:"print the VP table"`
	Console consoleCmd `cmd:"" help:"drive the simulated printer from the terminal, without a display"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("dgus-bridge"),
		kong.Description("DGUS display bridge "+protocol.Version),
	)

	dgus.SetDebugWriter(func(msg string) { log.Print(msg) })
	dgus.SetDebugEnabled(cli.Debug)

	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

// loadConfig runs the three configuration stages. An empty path uses
// the defaults.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	config.Normalize(cfg)
	return cfg, nil
}

type runCmd struct {
	Config     string `short:"c" type:"existingfile" required:"" help:"YAML configuration"`
	Device     string `help:"serial device, overrides serial.device"`
	AckTimeout int    `name:"ack-timeout" default:"0" help:"milliseconds to wait for the ack of each write, 0 to not wait"`
}

func (r *runCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(r.Config)
	if err != nil {
		return err
	}
	if r.Device != "" {
		cfg.Serial.Device = r.Device
	}

	serialCfg := serial.DefaultConfig(cfg.Serial.Device)
	serialCfg.Baud = cfg.Serial.Baud
	serialCfg.ReadTimeout = cfg.Serial.ReadTimeoutMs

	log.Printf("connecting to display on %s at %d baud (crc=%v)", serialCfg.Device, serialCfg.Baud, cfg.Serial.CRC)
	disp, err := display.Connect(serialCfg, cfg.Serial.CRC, time.Duration(r.AckTimeout)*time.Millisecond)
	if err != nil {
		return err
	}
	defer disp.Close()

	b, err := bridge.New(cfg, disp, log.Default())
	if err != nil {
		return err
	}
	log.Printf("bridge up: machine=%q vps=%d settings=%s", cfg.Machine.Name, b.Dispatcher.Table().Len(), b.Store.Path())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = b.Run(ctx, disp.Reports())
	if errors.Is(err, bridge.ErrDisconnected) && disp.Err() != nil {
		return fmt.Errorf("%w: %v", err, disp.Err())
	}
	return err
}

type tableCmd struct {
	Config string `short:"c" type:"existingfile" help:"YAML configuration deciding the features, defaults otherwise"`
	JSON   bool   `name:"json" help:"print the table as JSON"`
}

func (t *tableCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(t.Config)
	if err != nil {
		return err
	}
	table, err := dgus.BuildTable(cfg.DgusFeatures())
	if err != nil {
		return err
	}

	if t.JSON {
		data, err := table.Dictionary()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(os.Stdout, "%s\n", data)
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ADDR\tNAME\tSIZE\tDIR\tAUTO\tSELECTORS")
	for _, e := range table.Entries() {
		auto := ""
		if e.AutoUpdate {
			auto = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n", e.Addr, e.Name, e.Size, e.Direction, auto, formatSelectors(e.Selectors))
	}
	return w.Flush()
}
