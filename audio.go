package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

const (
	/// Audio sample rate and the frequency of the buzzer.
	///
	SampleRate = 22050
	ToneHz     = 440

	/// Samples queued per 60 Hz tick.
	///
	samplesPerTick = SampleRate / 60
)

var (
	/// Audio device the buzzer is queued to, zero if none could open.
	///
	Audio sdl.AudioDeviceID

	// square wave phase carried between ticks
	phase int

	// one tick of queued tone
	tone = make([]byte, samplesPerTick)
)

/// Initialize an audio device for the CHIP-8 virtual machine. Without
/// an audio device the emulator runs silent.
///
func InitAudio() {
	spec := &sdl.AudioSpec{
		Freq:     SampleRate,
		Format:   sdl.AUDIO_S8,
		Channels: 1,
		Samples:  512,
	}

	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		Console.Log("No audio:", err.Error())
		return
	}

	Audio = dev

	// start playing; silence is simply an empty queue
	sdl.PauseAudioDevice(Audio, false)
}

/// UpdateAudio queues one tick of tone while the sound timer runs.
///
func UpdateAudio() {
	if Audio == 0 {
		return
	}

	if Paused || !VM.SoundActive() {
		sdl.ClearQueuedAudio(Audio)
		return
	}

	// never let the queue get more than a couple ticks ahead
	if sdl.GetQueuedAudioSize(Audio) > 2*samplesPerTick {
		return
	}

	half := SampleRate / ToneHz / 2

	for i := range tone {
		if (phase/half)&1 == 0 {
			tone[i] = 0x20
		} else {
			tone[i] = 0xE0
		}

		phase = (phase + 1) % (2 * half)
	}

	sdl.QueueAudio(Audio, tone)
}
