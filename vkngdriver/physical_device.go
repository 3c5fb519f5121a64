package vkngdriver

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
	"github.com/vkngwrapper/triangle/bootstrap"
)

type PhysicalDevice struct {
	instance *Instance
	handle   core1_0.PhysicalDevice
}

var _ bootstrap.PhysicalDevice = (*PhysicalDevice)(nil)

func (d *PhysicalDevice) Properties() (*bootstrap.DeviceProperties, error) {
	properties, err := d.instance.driver.GetPhysicalDeviceProperties(d.handle)
	if err != nil {
		return nil, err
	}

	return &bootstrap.DeviceProperties{
		Name:                properties.DriverName,
		Type:                properties.DriverType,
		MaxImageDimension2D: properties.Limits.MaxImageDimension2D,
	}, nil
}

func (d *PhysicalDevice) Features() (*core1_0.PhysicalDeviceFeatures, error) {
	return d.instance.driver.GetPhysicalDeviceFeatures(d.handle), nil
}

func (d *PhysicalDevice) QueueFamilies() []bootstrap.QueueFamily {
	queueFamilies := d.instance.driver.GetPhysicalDeviceQueueFamilyProperties(d.handle)

	families := make([]bootstrap.QueueFamily, 0, len(queueFamilies))
	for _, queueFamily := range queueFamilies {
		families = append(families, bootstrap.QueueFamily{
			Flags:      queueFamily.QueueFlags,
			QueueCount: queueFamily.QueueCount,
		})
	}
	return families
}

func (d *PhysicalDevice) Extensions() ([]string, error) {
	extensions, _, err := d.instance.driver.EnumerateDeviceExtensionProperties(d.handle)
	if err != nil {
		return nil, err
	}
	return sortedNames(extensions), nil
}

func (d *PhysicalDevice) SurfaceSupport(surface bootstrap.Surface, queueFamily int) (bool, error) {
	supported, _, err := d.instance.surface.GetPhysicalDeviceSurfaceSupport(surface.Handle(), d.handle, queueFamily)
	return supported, err
}

func (d *PhysicalDevice) SurfaceCapabilities(surface bootstrap.Surface) (*khr_surface.SurfaceCapabilities, error) {
	capabilities, _, err := d.instance.surface.GetPhysicalDeviceSurfaceCapabilities(surface.Handle(), d.handle)
	return capabilities, err
}

func (d *PhysicalDevice) SurfaceFormats(surface bootstrap.Surface) ([]khr_surface.SurfaceFormat, error) {
	formats, _, err := d.instance.surface.GetPhysicalDeviceSurfaceFormats(surface.Handle(), d.handle)
	return formats, err
}

func (d *PhysicalDevice) SurfacePresentModes(surface bootstrap.Surface) ([]khr_surface.PresentMode, error) {
	presentModes, _, err := d.instance.surface.GetPhysicalDeviceSurfacePresentModes(surface.Handle(), d.handle)
	return presentModes, err
}

func (d *PhysicalDevice) CreateDevice(info bootstrap.DeviceCreateInfo) (bootstrap.Device, error) {
	deviceDriver, _, err := d.instance.driver.CreateDevice(d.handle, nil, deviceOptions(info))
	if err != nil {
		return nil, err
	}

	return &Device{
		driver:    deviceDriver,
		swapchain: khr_swapchain.CreateExtensionDriverFromCoreDriver(deviceDriver),
	}, nil
}

// deviceOptions drops info.Layers: core1_0 always passes no device layers.
func deviceOptions(info bootstrap.DeviceCreateInfo) core1_0.DeviceCreateInfo {
	return core1_0.DeviceCreateInfo{
		QueueCreateInfos:      info.QueueCreateInfos,
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: info.Extensions,
	}
}
