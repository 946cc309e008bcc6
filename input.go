package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Mapping of modern keyboard to CHIP-8 keys.
	///
	KeyMap = map[sdl.Scancode]uint{
		sdl.SCANCODE_X: 0x0,
		sdl.SCANCODE_1: 0x1,
		sdl.SCANCODE_2: 0x2,
		sdl.SCANCODE_3: 0x3,
		sdl.SCANCODE_Q: 0x4,
		sdl.SCANCODE_W: 0x5,
		sdl.SCANCODE_E: 0x6,
		sdl.SCANCODE_A: 0x7,
		sdl.SCANCODE_S: 0x8,
		sdl.SCANCODE_D: 0x9,
		sdl.SCANCODE_Z: 0xA,
		sdl.SCANCODE_C: 0xB,
		sdl.SCANCODE_4: 0xC,
		sdl.SCANCODE_R: 0xD,
		sdl.SCANCODE_F: 0xE,
		sdl.SCANCODE_V: 0xF,
	}
)

/// KeyState snapshots which of the 16 CHIP-8 keys are held down.
///
func KeyState() (keys [16]bool) {
	state := sdl.GetKeyboardState()

	for scancode, key := range KeyMap {
		if int(scancode) < len(state) && state[scancode] != 0 {
			keys[key] = true
		}
	}

	return
}

/// ProcessEvents from SDL. Returns false once the user quits.
///
func ProcessEvents() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			if ev.Type != sdl.KEYDOWN {
				continue
			}

			// the virtual keys are read once per tick
			if _, ok := KeyMap[ev.Keysym.Scancode]; ok {
				continue
			}

			switch ev.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				return false
			case sdl.SCANCODE_BACKSPACE:
				VM.Reset()
				Console.Logln("Reset")

				// holding control during reset will reboot paused
				Paused = ev.Keysym.Mod&sdl.KMOD_CTRL != 0
			case sdl.SCANCODE_PAGEUP, sdl.SCANCODE_UP:
				Console.Scroll(-1, LogLines())
			case sdl.SCANCODE_PAGEDOWN, sdl.SCANCODE_DOWN:
				Console.Scroll(1, LogLines())
			case sdl.SCANCODE_HOME:
				Console.Home(LogLines())
			case sdl.SCANCODE_END:
				Console.End()
			case sdl.SCANCODE_F3:
				LoadDialog()
			case sdl.SCANCODE_H:
				DebugHelp()
			case sdl.SCANCODE_LEFTBRACKET:
				VM.DecSpeed()
			case sdl.SCANCODE_RIGHTBRACKET:
				VM.IncSpeed()
			case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
				if !VM.Halted() {
					Paused = !Paused
				}
			case sdl.SCANCODE_F6:
				if Paused {
					DebugStep()
				}
			case sdl.SCANCODE_F7:
				if Paused {
					Tick()
					Paused = true
				}
			}
		}
	}

	return true
}
