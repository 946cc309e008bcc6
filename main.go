package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/massung/chip-8/chip8"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

/// Options set from the command line.
///
type Options struct {
	Rom    string
	IPT    int
	Redraw bool
	Trace  bool
	Debug  bool
	Quiet  bool
	Scale  int
}

var (
	/// The CHIP-8 virtual machine.
	///
	VM *chip8.CHIP_8

	/// The SDL Window and Renderer.
	///
	Window   *sdl.Window
	Renderer *sdl.Renderer

	/// Command line options.
	///
	Opts Options

	/// Structured log shared with the virtual machine.
	///
	Logger *log.Logger
)

func init() {
	runtime.LockOSThread()
}

func main() {
	Opts = parseFlags()
	Logger = createLogger(Opts.Debug, Opts.Quiet)

	// without a rom on the command line, ask for one
	if Opts.Rom == "" {
		file, err := dialog.File().
			Filter("CHIP-8 ROM", "ch8", "c8").
			Filter("CHIP-8 assembly", "c8s", "asm").
			Title("Load CHIP-8 ROM").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				Logger.Error("Selecting ROM failed", err)
			}
			return
		}

		Opts.Rom = file
	}

	if err := Load(Opts.Rom); err != nil {
		Logger.Fatal("Loading ROM failed", log.Err(err))
	}

	// initialize SDL or panic
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		panic(err)
	}
	defer sdl.Quit()

	InitWindow()
	InitScreen()
	InitAudio()

	Console.Log("Press H for help")

	// one tick of the virtual machine per frame
	clock := time.NewTicker(time.Second / 60)
	defer clock.Stop()

	// loop until window closed or user quit
	for ProcessEvents() {
		<-clock.C

		if !Paused {
			Tick()
		}

		UpdateAudio()
		Refresh()
	}
}

/// parseFlags reads the command line options.
///
func parseFlags() Options {
	var opts Options

	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags.IntVar(&opts.IPT, "ipt", chip8.DefaultInstructionsPerTick, "instructions executed per 60 Hz tick")
	flags.BoolVar(&opts.Redraw, "redraw", true, "end a tick early when the display changes")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction (needs -debug)")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "quiet", false, "only log errors")
	flags.IntVar(&opts.Scale, "scale", 8, "size of a single CHIP-8 pixel")

	flags.Usage = func() {
		fmt.Printf("usage: chip-8 [options] [rom or assembly file]\n\n")
		flags.PrintDefaults()
	}

	_ = flags.Parse(os.Args[1:])

	if flags.NArg() > 0 {
		opts.Rom = flags.Arg(0)
	}
	if opts.Scale < 2 {
		opts.Scale = 2
	}

	return opts
}

/// createLogger creates a logger for the level picked on the command line.
///
func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

/// Load a ROM or assembly source file into a new virtual machine.
///
func Load(file string) error {
	program, err := ReadProgram(file)
	if err != nil {
		return err
	}

	cfg := chip8.DefaultConfig()
	cfg.InstructionsPerTick = Opts.IPT
	cfg.StopOnRedraw = Opts.Redraw
	cfg.Trace = Opts.Trace

	// keep the speed that was dialed in for the previous rom
	if VM != nil {
		cfg.InstructionsPerTick = VM.Config.InstructionsPerTick
	}

	vm, err := chip8.LoadROM(program, chip8.WithConfig(cfg), chip8.WithLogger(Logger))
	if err != nil {
		return err
	}

	VM = vm
	Opts.Rom = file
	Paused = false

	Logger.Info("Loaded ROM",
		log.String("file", file),
		log.Int("size", len(program)))
	Console.Logln("Loaded", filepath.Base(file))

	if Window != nil {
		Window.SetTitle("CHIP-8 - " + filepath.Base(file))
	}

	return nil
}

/// LoadDialog asks for a new ROM to load, keeping the current one if
/// nothing is picked.
///
func LoadDialog() {
	file, err := dialog.File().
		Filter("CHIP-8 ROM", "ch8", "c8").
		Filter("CHIP-8 assembly", "c8s", "asm").
		Title("Load CHIP-8 ROM").
		Load()
	if err != nil {
		return
	}

	if err = Load(file); err != nil {
		Logger.Error("Loading ROM failed", err)
		Console.Logln("LOAD FAILED")
		Console.Log(err.Error())
	}
}

/// Tick advances the virtual machine one frame with the keys held down.
///
func Tick() {
	if _, err := VM.Advance(KeyState()); err != nil {
		Paused = true

		Console.Logln("HALTED")
		Console.Log(err.Error())
	}
}

/// Refresh redraws the whole window.
///
func Refresh() {
	Renderer.SetDrawColor(32, 42, 53, 255)
	Renderer.Clear()

	// frame various portions of the app
	Bevel(Layout.Screen)
	Bevel(Layout.Assembly)
	Bevel(Layout.Registers)
	Bevel(Layout.Log)

	// update the video screen and copy it
	RefreshScreen()
	CopyScreen(Layout.Screen)

	// debug assembly, virtual registers and messages
	DebugAssembly(Layout.Assembly.X+4, Layout.Assembly.Y+4)
	DebugRegisters(Layout.Registers.X+4, Layout.Registers.Y+4)
	DebugLog(Layout.Log.X+4, Layout.Log.Y+4)

	// show the new frame
	Renderer.Present()
}

/// Bevel draws a sunken frame just outside a rectangle.
///
func Bevel(r sdl.Rect) {
	x, y := r.X-2, r.Y-2
	w, h := r.W+3, r.H+3

	Renderer.SetDrawColor(0, 0, 0, 255)
	Renderer.DrawLine(x, y, x+w, y)
	Renderer.DrawLine(x, y, x, y+h)

	// highlight
	Renderer.SetDrawColor(95, 112, 120, 255)
	Renderer.DrawLine(x+w, y, x+w, y+h)
	Renderer.DrawLine(x, y+h, x+w, y+h)
}
