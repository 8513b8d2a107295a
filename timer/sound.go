package timer

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	sampleRate     = beep.SampleRate(44100)
	bufferSize     = 10
	chimeFrequency = 880.0
	chimeVolume    = 0.3
)

// Sound plays either a configured audio file or a built-in chime.
type Sound struct {
	initErr error
	path    string
	once    sync.Once
}

// NewSound returns a player for the file at path. An empty path selects the
// built-in chime.
func NewSound(path string) *Sound {
	return &Sound{path: path}
}

func (s *Sound) init() error {
	s.once.Do(func() {
		s.initErr = speaker.Init(
			sampleRate,
			sampleRate.N(time.Second/bufferSize),
		)
	})

	return s.initErr
}

// Play blocks until the sound has finished or ctx is done.
func (s *Sound) Play(ctx context.Context) error {
	if err := s.init(); err != nil {
		return err
	}

	var (
		stream beep.Streamer
		closer io.Closer
	)

	if s.path == "" {
		stream = chime(sampleRate)
	} else {
		decoded, format, err := decodeFile(s.path)
		if err != nil {
			return err
		}

		closer = decoded
		stream = decoded

		if format.SampleRate != sampleRate {
			stream = beep.Resample(4, format.SampleRate, sampleRate, decoded)
		}
	}

	if closer != nil {
		defer closer.Close()
	}

	done := make(chan struct{})

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

// decodeFile opens an mp3, ogg, flac or wav file.
func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, errInvalidSoundFormat
	}

	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, err
	}

	return stream, format, nil
}

// chime is two short sine beeps separated by a pause.
func chime(sr beep.SampleRate) beep.Streamer {
	return beep.Seq(
		tone(sr, chimeFrequency, 150*time.Millisecond),
		beep.Silence(sr.N(100*time.Millisecond)),
		tone(sr, chimeFrequency, 150*time.Millisecond),
	)
}

// tone is a sine wave at freq lasting d.
func tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	pos := 0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}

		n := 0

		for i := range samples {
			if pos >= total {
				break
			}

			v := chimeVolume * math.Sin(2*math.Pi*freq*float64(pos)/float64(sr))
			samples[i][0] = v
			samples[i][1] = v

			pos++
			n++
		}

		return n, true
	})
}
