package playback

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"unsafe"

	"github.com/tphakala/malgo"

	"github.com/rinald/sampler/internal/audio"
)

// Output manages one stereo float32 playback device. It implements the
// engine's OutputDevice interface: Start wires the renderer's data
// callback into the device, Stop halts it, and both are safe to call
// repeatedly.
type Output struct {
	context    audio.AudioContext
	sampleRate uint32
	deviceName string

	mu     sync.Mutex
	device audio.AudioDevice
}

// NewOutput creates an output bound to the named playback device. An
// empty name selects the system default.
func NewOutput(context audio.AudioContext, sampleRate int, deviceName string) *Output {
	return &Output{
		context:    context,
		sampleRate: uint32(sampleRate),
		deviceName: deviceName,
	}
}

// ListDevices returns the available playback devices.
func (o *Output) ListDevices() ([]string, error) {
	infos, err := o.context.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate playback devices: %w", err)
	}

	names := make([]string, 0, len(infos))
	for i := range infos {
		names = append(names, infos[i].Name())
	}
	return names, nil
}

// findDevicePointer locates the configured device's ID pointer, or nil
// for the default device.
func (o *Output) findDevicePointer() (unsafe.Pointer, error) {
	if o.deviceName == "" {
		return nil, nil
	}

	infos, err := o.context.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate playback devices: %w", err)
	}

	for i := range infos {
		if infos[i].Name() == o.deviceName || strings.Contains(infos[i].Name(), o.deviceName) {
			return infos[i].ID.Pointer(), nil
		}
	}

	return nil, fmt.Errorf("%w: %s", audio.ErrDeviceNotFound, o.deviceName)
}

// Start initializes and starts the playback device, pulling audio
// through onData. The callback must fill out with interleaved stereo
// float32 frames.
func (o *Output) Start(onData func(out []byte, frameCount uint32)) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.device != nil {
		return nil
	}

	devicePtr, err := o.findDevicePointer()
	if err != nil {
		return err
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = 2
	deviceConfig.Playback.DeviceID = devicePtr
	deviceConfig.SampleRate = o.sampleRate
	deviceConfig.Alsa.NoMMap = 1

	callbacks := malgo.DeviceCallbacks{
		Data: func(outputBuffer, inputBuffer []byte, frameCount uint32) {
			onData(outputBuffer, frameCount)
		},
		Stop: func() {
			log.Printf("playback device stopped")
		},
	}

	malgoDevice, err := o.context.InitDevice(&deviceConfig, callbacks)
	if err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	device := NewMalgoDeviceAdapter(malgoDevice)
	if err := device.Start(); err != nil {
		if uninitErr := device.Uninit(); uninitErr != nil {
			log.Printf("error uninitializing playback device: %v", uninitErr)
		}
		return fmt.Errorf("failed to start playback device: %w", err)
	}

	o.device = device
	return nil
}

// Stop halts and releases the device. Stopping an already-stopped
// output is a no-op.
func (o *Output) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.device == nil {
		return nil
	}

	device := o.device
	o.device = nil

	if err := device.Stop(); err != nil {
		log.Printf("error stopping playback device: %v", err)
	}
	return device.Uninit()
}
