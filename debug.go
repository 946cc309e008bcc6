package main

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

/// DisassemblyLines is how many instructions the debugger shows.
///
const DisassemblyLines = 16

var (
	/// True if pausing emulation (single stepping).
	///
	Paused bool

	/// Current debug window address.
	///
	Address uint16
)

/// Show the HELP text in the log.
///
func DebugHelp() {
	Console.Logln("Virtual keys:")
	Console.Log("  1 2 3 4")
	Console.Log("  Q W E R")
	Console.Log("  A S D F")
	Console.Log("  Z X C V")
	Console.Logln("Emulation keys:")
	Console.Log("  ESC      - Quit")
	Console.Log("  F3       - Load ROM")
	Console.Log("  BS       - Reset")
	Console.Log("  F5/SPACE - Pause")
	Console.Log("  F6       - Step")
	Console.Log("  F7       - Tick")
	Console.Log("  [ ]      - Speed")
	Console.Log("  PGUP/DN  - Scroll log")
}

/// Step a single instruction while paused.
///
func DebugStep() {
	if err := VM.Step(); err != nil {
		Console.Logln("HALTED")
		Console.Log(err.Error())
	}
}

/// DebugAssembly renders the disassembled instructions around
/// the CHIP-8 program counter.
///
func DebugAssembly(x, y int32) {
	pc, a := int(VM.PC), int(Address)

	// keep the window still until the pc leaves it
	if a <= pc-DisassemblyLines*2+2 || a > pc-2 || (a^pc)&1 == 1 {
		Address = uint16(pc-2) & 0xFFF
	}

	// show the disassembled instructions
	for i := 0; i < DisassemblyLines; i++ {
		address := (Address + uint16(i*2)) & 0xFFF
		line := y + int32(i)*LineHeight

		if address == VM.PC {
			if Paused {
				Renderer.SetDrawColor(176, 32, 57, 255)
			} else {
				Renderer.SetDrawColor(57, 102, 176, 255)
			}

			// highlight the current instruction
			Renderer.FillRect(&sdl.Rect{
				X: x - 2,
				Y: line - 2,
				W: 23*CharWidth + 4,
				H: LineHeight,
			})
		}

		Renderer.SetDrawColor(220, 220, 210, 255)
		DrawText(VM.Disassemble(address), x, line)
	}
}

/// Show the current value of all the CHIP-8 registers.
///
func DebugRegisters(x, y int32) {
	Renderer.SetDrawColor(220, 220, 210, 255)

	for i := 0; i < 16; i++ {
		col := x + int32(i>>3)*8*CharWidth
		row := y + int32(i&7)*LineHeight

		DrawText(fmt.Sprintf("V%X #%02X", i, VM.V[i]), col, row)
	}

	// shift over past the v-registers
	x += 16 * CharWidth

	key := "-"
	if VM.Waiting() {
		key = "WAIT"
	}

	DrawText(fmt.Sprintf("PC #%04X", VM.PC), x, y)
	DrawText(fmt.Sprintf("SP #%02X", VM.SP), x, y+LineHeight)
	DrawText(fmt.Sprintf("I  #%04X", VM.I), x, y+LineHeight*2)
	DrawText(fmt.Sprintf("DT #%02X", VM.DT), x, y+LineHeight*3)
	DrawText(fmt.Sprintf("ST #%02X", VM.ST), x, y+LineHeight*4)
	DrawText(fmt.Sprintf("K  %s", key), x, y+LineHeight*5)
	DrawText(fmt.Sprintf("IPT %d", VM.Config.InstructionsPerTick), x, y+LineHeight*6)

	if VM.Halted() {
		Renderer.SetDrawColor(176, 32, 57, 255)
		DrawText("HALTED", x, y+LineHeight*7)
	} else if Paused {
		DrawText("PAUSED", x, y+LineHeight*7)
	}
}

/// LogLines is the number of console lines visible.
///
func LogLines() int {
	return int(Layout.Log.H-8) / LineHeight
}

/// Show the current console text.
///
func DebugLog(x, y int32) {
	width := int(Layout.Log.W-8) / CharWidth

	Renderer.SetDrawColor(220, 220, 210, 255)

	for _, line := range Console.Window(LogLines()) {
		if len(line) > width {
			line = line[:width-3] + "..."
		}

		DrawText(line, x, y)

		// advance to the next line
		y += LineHeight
	}
}
