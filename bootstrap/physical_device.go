package bootstrap

import (
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// discreteBonus is what a discrete GPU scores over an integrated one.
const discreteBonus = 1000

// DeviceRequirements is what a physical device has to offer to be usable.
type DeviceRequirements struct {
	Extensions []string
	Features   func(features *core1_0.PhysicalDeviceFeatures) bool
}

// DeviceCaps is a snapshot of everything the selector looks at for one device.
type DeviceCaps struct {
	Properties *DeviceProperties
	Features   *core1_0.PhysicalDeviceFeatures

	QueueFamilies QueueFamilyIndices
	Extensions    []string

	// Swapchain is only queried when the device supports every required extension.
	Swapchain *SwapchainSupport
}

// QueryDeviceCaps collects the capability snapshot of device against surface.
func QueryDeviceCaps(prober *Prober, device PhysicalDevice, surface Surface, req DeviceRequirements) (*DeviceCaps, error) {
	var err error
	caps := &DeviceCaps{}

	caps.Properties, err = device.Properties()
	if err != nil {
		return nil, platformError(err, "query device properties")
	}

	caps.Features, err = device.Features()
	if err != nil {
		return nil, platformError(err, "query device features")
	}

	caps.Extensions, err = prober.DeviceExtensions(device)
	if err != nil {
		return nil, err
	}

	caps.QueueFamilies, err = FindQueueFamilyIndices(prober, device, surface)
	if err != nil {
		return nil, err
	}

	if len(missing(req.Extensions, caps.Extensions)) == 0 {
		support, err := QuerySwapchainSupport(prober, device, surface)
		if err != nil {
			return nil, err
		}
		caps.Swapchain = &support
	}

	return caps, nil
}

// Rate scores a device. Zero means the device cannot be used at all;
// otherwise discrete GPUs are preferred and larger maximum texture sizes
// break the tie.
func Rate(caps *DeviceCaps, req DeviceRequirements) int {
	if caps == nil || caps.Properties == nil || caps.Features == nil {
		return 0
	}
	if req.Features != nil && !req.Features(caps.Features) {
		return 0
	}
	if !caps.QueueFamilies.IsComplete() {
		return 0
	}
	if len(missing(req.Extensions, caps.Extensions)) > 0 {
		return 0
	}
	if caps.Swapchain == nil || !caps.Swapchain.Adequate() {
		return 0
	}

	score := 0
	if caps.Properties.Type == core1_0.PhysicalDeviceTypeDiscreteGPU {
		score += discreteBonus
	}
	score += caps.Properties.MaxImageDimension2D

	return score
}

// SelectedDevice is the winner of device selection.
type SelectedDevice struct {
	Device PhysicalDevice
	Caps   *DeviceCaps
	Score  int
}

// PickPhysicalDevice scores every device and returns the best one. The first
// enumerated device wins a tie. A device whose capabilities cannot be read
// scores zero.
func PickPhysicalDevice(prober *Prober, instance Instance, surface Surface, req DeviceRequirements, logger logrus.FieldLogger) (*SelectedDevice, error) {
	physicalDevices, err := instance.PhysicalDevices()
	if err != nil {
		return nil, platformError(err, "enumerate physical devices")
	}

	if len(physicalDevices) == 0 {
		return nil, unavailableErrorf("failed to find GPUs with Vulkan support: no device with required API support")
	}

	var best *SelectedDevice
	for deviceIdx, device := range physicalDevices {
		caps, err := QueryDeviceCaps(prober, device, surface, req)
		if err != nil {
			logger.WithError(err).WithField("device", deviceIdx).Warn("could not pull physical device capabilities")
			continue
		}

		score := Rate(caps, req)
		logger.WithFields(logrus.Fields{
			"device": deviceIdx,
			"name":   caps.Properties.Name,
			"score":  score,
		}).Debug("rated physical device")

		if score > 0 && (best == nil || score > best.Score) {
			best = &SelectedDevice{Device: device, Caps: caps, Score: score}
		}
	}

	if best == nil {
		return nil, unavailableErrorf("failed to find a suitable GPU: no suitable device")
	}

	logger.WithFields(logrus.Fields{
		"name":  best.Caps.Properties.Name,
		"score": best.Score,
	}).Info("selected physical device")

	return best, nil
}
