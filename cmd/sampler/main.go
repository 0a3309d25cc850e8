// Command sampler is a headless demo of the workstation engine: it
// decodes audio files into the sample library, arranges them
// back-to-back as composition tracks, and plays the result through the
// default output device and/or exports it as a WAV file.
//
// Usage:
//
//	sampler -export mix.wav kick.wav loop.flac voice.mp3
//	sampler -play -pitch 3 -reverb 0.4 loop.wav
//	sampler -list-devices
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tphakala/malgo"

	"github.com/rinald/sampler/internal/audio"
	"github.com/rinald/sampler/internal/audio/decode"
	"github.com/rinald/sampler/internal/conf"
	"github.com/rinald/sampler/internal/engine"
	"github.com/rinald/sampler/internal/export"
	"github.com/rinald/sampler/internal/library"
	"github.com/rinald/sampler/internal/playback"
)

// diskSaver writes exported files to the working directory.
type diskSaver struct{}

func (diskSaver) Save(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}

// logNotifier routes user-visible notifications to the process log.
type logNotifier struct{}

func (logNotifier) Info(msg string)  { log.Print(msg) }
func (logNotifier) Warn(msg string)  { log.Printf("warning: %s", msg) }
func (logNotifier) Error(msg string) { log.Printf("error: %s", msg) }

func main() {
	var (
		listDevices = flag.Bool("list-devices", false, "list playback devices and exit")
		play        = flag.Bool("play", false, "play the composition through the output device")
		exportPath  = flag.String("export", "", "export the composition to this file (.wav, .mp3, .flac)")
		gap         = flag.Float64("gap", 0, "silence in seconds between arranged samples")
		volume      = flag.Float64("volume", 1, "track volume, 0..1")
		pitch       = flag.Int("pitch", 0, "pitch shift in semitones, -12..12")
		reverb      = flag.Float64("reverb", 0, "reverb amount, 0..1")
		delay       = flag.Float64("delay", 0, "delay time in seconds, 0 disables the delay")
		feedback    = flag.Float64("feedback", 0.3, "delay feedback, 0..0.9")
	)
	flag.Parse()

	settings := conf.Load()
	notifier := logNotifier{}

	if *listDevices {
		if err := printDevices(settings); err != nil {
			log.Fatalf("failed to list devices: %v", err)
		}
		return
	}

	files := flag.Args()
	if len(files) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if !*play && *exportPath == "" {
		log.Fatal("nothing to do: pass -play and/or -export")
	}

	store := library.NewStore(notifier)
	cursor := 0.0
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("failed to read %s: %v", path, err)
		}
		buf, err := decode.Decode(data)
		if err != nil {
			log.Fatalf("failed to decode %s: %v", path, err)
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		sample := store.AddSample(name, buf)
		track := store.AddTrack(engine.Track{
			SampleID:       sample.ID,
			StartTime:      cursor,
			Repetitions:    1,
			Volume:         *volume,
			PitchSemitones: *pitch,
			ReverbAmount:   *reverb,
			DelayTime:      *delay,
			DelayFeedback:  *feedback,
		})

		log.Printf("added %s: %.2fs at %d Hz, starts at %.2fs",
			name, buf.Duration(), buf.SampleRate(), track.StartTime)
		cursor += buf.Duration()/engine.PitchRate(*pitch) + *gap
	}

	log.Printf("composition duration: %.2fs", store.Duration())

	if *exportPath != "" {
		if err := exportComposition(settings, store, *exportPath, notifier); err != nil {
			log.Fatalf("export failed: %v", err)
		}
	}

	if *play {
		if err := playComposition(settings, store); err != nil {
			log.Fatalf("playback failed: %v", err)
		}
	}
}

func printDevices(settings *conf.Settings) error {
	context, err := playback.NewMalgoContextAdapter(playback.DefaultBackends(), &malgo.ContextConfig{}, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := context.Uninit(); err != nil {
			log.Printf("error uninitializing audio context: %v", err)
		}
	}()

	output := playback.NewOutput(context, settings.SampleRate, settings.OutputDevice)
	names, err := output.ListDevices()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func exportComposition(settings *conf.Settings, store *library.Store, path string, notifier audio.Notifier) error {
	format, err := export.ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(path, filepath.Ext(path))

	exporter := export.NewExporter(settings, diskSaver{}, notifier)
	return exporter.Export(name, format, store.Tracks(), store.Resolve)
}

func playComposition(settings *conf.Settings, store *library.Store) error {
	context, err := playback.NewMalgoContextAdapter(playback.DefaultBackends(), &malgo.ContextConfig{}, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := context.Uninit(); err != nil {
			log.Printf("error uninitializing audio context: %v", err)
		}
	}()

	output := playback.NewOutput(context, settings.SampleRate, settings.OutputDevice)
	transport := engine.NewTransport(settings, output)
	defer func() {
		if err := transport.Close(); err != nil {
			log.Printf("error closing transport: %v", err)
		}
	}()

	if err := transport.Play(store.Tracks(), store.Resolve, 0); err != nil {
		return err
	}

	log.Print("playing, ctrl-c to abort")
	for transport.IsPlaying() {
		time.Sleep(settings.PollInterval)
	}
	return nil
}
