// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/effects/render"
)

// ErrNoHAL is returned when a device handle does not expose HAL types.
var ErrNoHAL = errors.New("wgpu: device does not expose HAL types")

// halProvider is implemented by device handles that share their HAL device.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// variantProvider is implemented by device handles that know their HAL
// backend.
type variantProvider interface {
	Variant() gputypes.Backend
}

// halFrom extracts the HAL device and queue from d.
func halFrom(d render.DeviceHandle) (hal.Device, hal.Queue, error) {
	hp, ok := d.(halProvider)
	if !ok {
		return nil, nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return device, queue, nil
}

// gpuVariants lists the HAL backends tried by the registry factory, in
// order.
var gpuVariants = []gputypes.Backend{
	gputypes.BackendVulkan,
	gputypes.BackendMetal,
	gputypes.BackendDX12,
	gputypes.BackendGL,
}

// Device is a headless HAL device opened by Open.
// It implements render.DeviceHandle and exposes the HAL device and queue.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	info     gputypes.AdapterInfo
}

// Open creates an instance of the registered HAL backend variant and opens
// a device on its first GPU adapter, or its first adapter if none is a GPU.
func Open(variant gputypes.Backend) (*Device, error) {
	b, ok := hal.GetBackend(variant)
	if !ok {
		return nil, fmt.Errorf("wgpu: %s backend not registered", variant)
	}
	instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: no %s adapters found", variant)
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}
	return &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		info:     selected.Info,
	}, nil
}

// openFirst opens the first GPU variant that succeeds.
func openFirst() (*Device, error) {
	var errs []error
	for _, v := range gpuVariants {
		d, err := Open(v)
		if err == nil {
			return d, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// Close destroys the device and its instance.
func (d *Device) Close() {
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.queue = nil
}

// Device implements render.DeviceHandle.
func (d *Device) Device() gpucontext.Device { return d.device }

// Queue implements render.DeviceHandle.
func (d *Device) Queue() gpucontext.Queue { return d.queue }

// Adapter implements render.DeviceHandle. Headless devices do not keep
// their adapter.
func (d *Device) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat implements render.DeviceHandle. Headless devices have no
// surface.
func (d *Device) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo implements render.DeviceHandle.
func (d *Device) AdapterInfo() gpucontext.AdapterInfo {
	t := gpucontext.AdapterTypeUnknown
	switch d.info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		t = gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		t = gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		t = gpucontext.AdapterTypeSoftware
	}
	return gpucontext.AdapterInfo{Name: d.info.Name, Type: t}
}

// HalDevice returns the hal.Device.
func (d *Device) HalDevice() any { return d.device }

// HalQueue returns the hal.Queue.
func (d *Device) HalQueue() any { return d.queue }

// Variant returns the HAL backend the device was opened on.
func (d *Device) Variant() gputypes.Backend { return d.info.Backend }

var (
	_ render.DeviceHandle = (*Device)(nil)
	_ halProvider         = (*Device)(nil)
	_ variantProvider     = (*Device)(nil)
)
