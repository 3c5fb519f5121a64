package bootstrap

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
)

const queuePriority = float32(1.0)

// Queues are the queues retrieved from the logical device. They alias when
// graphics and present share a family.
type Queues struct {
	Graphics core1_0.Queue
	Present  core1_0.Queue
}

// QueueCreateInfos requests one queue from each distinct family.
func QueueCreateInfos(indices QueueFamilyIndices) []core1_0.DeviceQueueCreateInfo {
	var queueFamilyOptions []core1_0.DeviceQueueCreateInfo
	for _, queueFamily := range indices.Unique() {
		queueFamilyOptions = append(queueFamilyOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queueFamily,
			QueuePriorities:  []float32{queuePriority},
		})
	}
	return queueFamilyOptions
}

// CreateLogicalDevice creates the logical device on the selected physical
// device and fetches its queues.
func CreateLogicalDevice(selected *SelectedDevice, cfg Config) (Device, Queues, error) {
	indices := selected.Caps.QueueFamilies
	if !indices.IsComplete() {
		return nil, Queues{}, unavailableErrorf("selected device has no graphics and present queue families")
	}

	extensionNames := append([]string(nil), cfg.DeviceExtensions...)

	// Required on portability implementations when offered.
	if contains(selected.Caps.Extensions, khr_portability_subset.ExtensionName) {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	device, err := selected.Device.CreateDevice(DeviceCreateInfo{
		QueueCreateInfos: QueueCreateInfos(indices),
		Extensions:       extensionNames,
		Layers:           cfg.deviceLayers(),
	})
	if err != nil {
		return nil, Queues{}, platformError(err, "failed to create logical device")
	}

	queues := Queues{
		Graphics: device.GetQueue(*indices.GraphicsFamily, 0),
	}
	if indices.Shared() {
		queues.Present = queues.Graphics
	} else {
		queues.Present = device.GetQueue(*indices.PresentFamily, 0)
	}

	return device, queues, nil
}
