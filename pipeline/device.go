package pipeline

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/mkualquiera/webengine"
)

// Backend names accepted by Open. They match the backend field of the
// engine config file.
const (
	BackendAuto   = ""
	BackendVulkan = "vulkan"
	BackendNoop   = "noop"
)

// Device bundles a hal instance with the opened device and its queue.
// All pipeline resources are created against it; Close releases the
// device and the instance.
type Device struct {
	instance hal.Instance

	Device hal.Device
	Queue  hal.Queue

	// Name is the adapter name as reported by the backend.
	Name string
}

// Open acquires a GPU device for the named backend. BackendAuto tries
// Vulkan first and falls back to the noop backend, which accepts every
// command and renders nothing; BackendNoop selects it directly (useful
// for tests and headless CI).
//
// When several adapters are exposed, discrete and integrated GPUs are
// preferred over software implementations.
func Open(backend string) (*Device, error) {
	switch backend {
	case BackendVulkan:
		return openVulkan()
	case BackendNoop:
		return openNoop()
	case BackendAuto:
		dev, err := openVulkan()
		if err == nil {
			return dev, nil
		}
		webengine.Logger().Warn("vulkan unavailable, falling back to noop backend", "error", err)
		return openNoop()
	default:
		return nil, fmt.Errorf("open device: unknown backend %q", backend)
	}
}

func openVulkan() (*Device, error) {
	api, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("open device: vulkan backend not available")
	}
	instance, err := api.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	return openAdapter(instance)
}

func openNoop() (*Device, error) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("create noop instance: %w", err)
	}
	return openAdapter(instance)
}

func openAdapter(instance hal.Instance) (*Device, error) {
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("open device: no adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open adapter: %w", err)
	}

	webengine.Logger().Info("device opened", "adapter", selected.Info.Name)
	return &Device{
		instance: instance,
		Device:   openDev.Device,
		Queue:    openDev.Queue,
		Name:     selected.Info.Name,
	}, nil
}

// Close releases the device and its instance. Safe to call on a nil
// receiver or more than once.
func (d *Device) Close() {
	if d == nil {
		return
	}
	if d.Device != nil {
		d.Device.Destroy()
		d.Device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}
