// Package export renders the composition offline and hands the encoded
// result to a FileSaver. Exporting never touches playback or library
// state: it works from a snapshot of the track list and resolves sample
// buffers through the same resolver the engine uses.
package export

import (
	"fmt"
	"log"
	"strings"

	"github.com/rinald/sampler/internal/audio"
	"github.com/rinald/sampler/internal/audio/encode"
	"github.com/rinald/sampler/internal/conf"
	"github.com/rinald/sampler/internal/dsp"
	"github.com/rinald/sampler/internal/engine"
)

// Format is a requested export container format.
type Format string

const (
	FormatWAV  Format = "wav"
	FormatMP3  Format = "mp3"
	FormatFLAC Format = "flac"
)

// ParseFormat maps a user-supplied format name or file extension to a
// Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "wav", "wave":
		return FormatWAV, nil
	case "mp3":
		return FormatMP3, nil
	case "flac":
		return FormatFLAC, nil
	}
	return "", fmt.Errorf("%w: %s", audio.ErrUnsupportedFormat, name)
}

// Exporter renders compositions to files.
type Exporter struct {
	settings *conf.Settings
	saver    audio.FileSaver
	notifier audio.Notifier
}

// NewExporter creates an exporter. Pass a nil notifier to discard
// notifications.
func NewExporter(settings *conf.Settings, saver audio.FileSaver, notifier audio.Notifier) *Exporter {
	if notifier == nil {
		notifier = audio.NopNotifier{}
	}
	return &Exporter{
		settings: settings,
		saver:    saver,
		notifier: notifier,
	}
}

// Export renders the given tracks offline and saves the encoded result
// as "<name>.<format>". MP3 and FLAC encoding are not implemented; for
// those formats the file still carries the requested extension but
// contains WAV data, and a warning is raised.
func (e *Exporter) Export(name string, format Format, tracks []engine.Track, resolve engine.SampleResolver) error {
	data, err := e.Render(tracks, resolve)
	if err != nil {
		return err
	}

	if format != FormatWAV {
		log.Printf("%s export not implemented, writing WAV data instead", format)
		e.notifier.Warn(fmt.Sprintf("%s encoding is not available; the file contains WAV audio", strings.ToUpper(string(format))))
	}

	filename := fmt.Sprintf("%s.%s", name, format)
	if err := e.saver.Save(filename, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}

	e.notifier.Info(fmt.Sprintf("exported %s", filename))
	return nil
}

// Render renders the tracks offline and encodes the mix as WAV bytes,
// without saving anything.
func (e *Exporter) Render(tracks []engine.Track, resolve engine.SampleResolver) ([]byte, error) {
	buf, err := engine.RenderComposition(tracks, resolve, e.settings.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", audio.ErrRenderFailed, err)
	}

	if e.settings.NormalizeOnExport {
		normalize(buf)
	} else if level := mixLevel(buf); level.Clipping {
		log.Printf("rendered mix peaks at %.2f, encoder will clamp", level.Peak)
		e.notifier.Warn("the mix is clipping; lower track volumes or enable normalization")
	}

	return encode.WAV(buf, e.settings.ExportQuality), nil
}

func mixLevel(buf *audio.Buffer) dsp.LevelData {
	channels := make([][]float32, buf.NumChannels())
	for c := range channels {
		channels[c] = buf.Channel(c)
	}
	return dsp.MeasureLevel(channels)
}

// normalize scales the freshly rendered mix so its peak hits full
// scale. Silence is left untouched.
func normalize(buf *audio.Buffer) {
	level := mixLevel(buf)
	if level.Peak == 0 || level.Peak == 1 {
		return
	}

	gain := float32(1 / level.Peak)
	for c := 0; c < buf.NumChannels(); c++ {
		ch := buf.Channel(c)
		for i := range ch {
			ch[i] *= gain
		}
	}
}
