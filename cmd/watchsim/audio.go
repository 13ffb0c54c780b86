package main

import (
	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"quartz/hal/system"
	"quartz/sim"
)

const sampleRate = 44100

// startAudio plays the buzzer through the host sound card. The tone
// frequency is derived from the timer registers the firmware actually
// programmed, not from the configuration, so a wrong register value is
// audible.
func startAudio(dev *sim.Device) error {
	ctx := audio.NewContext(sampleRate)
	p, err := ctx.NewPlayer(&buzzerStream{dev: dev})
	if err != nil {
		return err
	}
	p.Play()
	return nil
}

// buzzerStream synthesizes an endless 16-bit stereo stream: a sine burst
// while the counter runs, silence otherwise.
type buzzerStream struct {
	dev   *sim.Device
	phase float32
}

func (s *buzzerStream) Read(p []byte) (int, error) {
	on := s.dev.BuzzerOn()
	psc, arr, _ := s.dev.BuzzerRegisters()

	freq := float32(system.ClockFreq) /
		(float32(uint32(psc)+1) * float32(uint32(arr)+1))
	step := 2 * math32.Pi * freq / sampleRate

	for i := 0; i+3 < len(p); i += 4 {
		var sample int16
		if on {
			sample = int16(8000 * math32.Sin(s.phase))
			s.phase += step
			if s.phase > 2*math32.Pi {
				s.phase -= 2 * math32.Pi
			}
		}
		p[i+0] = byte(sample)
		p[i+1] = byte(sample >> 8)
		p[i+2] = byte(sample)
		p[i+3] = byte(sample >> 8)
	}
	return len(p) &^ 3, nil
}
