package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"fortio.org/cli"
	"fortio.org/log"

	"github.com/lixenwraith/donut/config"
	"github.com/lixenwraith/donut/engine"
	"github.com/lixenwraith/donut/render"
	"github.com/lixenwraith/donut/terminal"
	"github.com/lixenwraith/donut/vmath"
)

var (
	configPath  = flag.String("config", "", "Path to TOML configuration `file`")
	backendName = flag.String("backend", "ansi", "Display backend: ansi, tcell")
	logPath     = flag.String("log-file", "", "Write logs to `file` (default: discarded)")
	seed        = flag.Uint64("seed", 0, "Dither random seed (0: time based)")
	frameLimit  = flag.Uint64("frames", 0, "Stop after this many frames (0: run until interrupted)")
)

// display is a sink with a terminal lifecycle
type display interface {
	render.Sink
	Init() error
	Fini()
}

func main() {
	// Panic Recovery: Ensure terminal is reset even if rendering crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mDONUT CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	cli.MinArgs = 0
	cli.MaxArgs = 0
	cli.Main()
	os.Exit(run())
}

func run() int {
	// Reported on stderr, before logging is redirected and the terminal is taken
	cfg, err := config.Load(*configPath)
	if err != nil {
		return log.FErrf("load configuration: %v", err)
	}
	if *backendName != "ansi" && *backendName != "tcell" {
		return log.FErrf("unknown backend %q (use ansi or tcell)", *backendName)
	}

	logFile, err := setupLogging(*logPath)
	if err != nil {
		return log.FErrf("setup logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	disp, err := openDisplay(*backendName, stop)
	if err != nil {
		return fail("open display: %v", err)
	}

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	log.S(log.Info, "starting",
		log.Str("backend", *backendName),
		log.Attr("n1", cfg.Torus.N1),
		log.Attr("n2", cfg.Torus.N2),
		log.Attr("frame_delay_ms", cfg.Render.FrameDelayMs),
		log.Attr("seed", s))

	loop := engine.New(cfg, disp, vmath.NewFastRand(s))
	loop.SetFrameLimit(*frameLimit)

	err = loop.Run(ctx)
	disp.Fini()

	log.S(log.Info, "stopped", log.Attr("frames", loop.Frames()))
	if err != nil {
		return fail("render: %v", err)
	}
	return 0
}

// openDisplay creates and initializes the named backend
// cancel is invoked by backends that capture the interrupt key themselves
func openDisplay(name string, cancel context.CancelFunc) (display, error) {
	switch name {
	case "tcell":
		sink, err := terminal.NewTcellScreen()
		if err != nil {
			return nil, err
		}
		if err := sink.Init(); err != nil {
			return nil, err
		}
		sink.WatchInterrupt(cancel)
		return sink, nil
	default:
		term := terminal.New()
		if err := term.Init(); err != nil {
			return nil, err
		}
		return term, nil
	}
}

// fail logs and also prints to stderr, since the log may be a file or discarded
func fail(format string, args ...any) int {
	log.Errf(format, args...)
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return 1
}
