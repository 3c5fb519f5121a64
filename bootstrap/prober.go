package bootstrap

import (
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

// Prober answers capability questions about the runtime. It never changes
// driver state; an empty answer is a valid answer.
type Prober struct {
	loader Loader
}

func NewProber(loader Loader) *Prober {
	return &Prober{loader: loader}
}

func (p *Prober) InstanceExtensions() ([]string, error) {
	extensions, err := p.loader.AvailableExtensions()
	if err != nil {
		return nil, platformError(err, "enumerate instance extensions")
	}
	return extensions, nil
}

func (p *Prober) InstanceLayers() ([]string, error) {
	layers, err := p.loader.AvailableLayers()
	if err != nil {
		return nil, platformError(err, "enumerate instance layers")
	}
	return layers, nil
}

func (p *Prober) DeviceExtensions(device PhysicalDevice) ([]string, error) {
	extensions, err := device.Extensions()
	if err != nil {
		return nil, platformError(err, "enumerate device extensions")
	}
	return extensions, nil
}

func (p *Prober) QueueFamilies(device PhysicalDevice) []QueueFamily {
	return device.QueueFamilies()
}

func (p *Prober) SurfaceFormats(device PhysicalDevice, surface Surface) ([]khr_surface.SurfaceFormat, error) {
	formats, err := device.SurfaceFormats(surface)
	if err != nil {
		return nil, platformError(err, "query surface formats")
	}
	return formats, nil
}

func (p *Prober) SurfacePresentModes(device PhysicalDevice, surface Surface) ([]khr_surface.PresentMode, error) {
	modes, err := device.SurfacePresentModes(surface)
	if err != nil {
		return nil, platformError(err, "query surface present modes")
	}
	return modes, nil
}

func (p *Prober) SurfaceCapabilities(device PhysicalDevice, surface Surface) (*khr_surface.SurfaceCapabilities, error) {
	capabilities, err := device.SurfaceCapabilities(surface)
	if err != nil {
		return nil, platformError(err, "query surface capabilities")
	}
	return capabilities, nil
}

// LogAvailable writes the available and required instance layers and
// extensions to the logger. Failures to enumerate are logged, not returned.
func (p *Prober) LogAvailable(logger logrus.FieldLogger, requiredLayers, requiredExtensions []string) {
	if layers, err := p.InstanceLayers(); err != nil {
		logger.WithError(err).Warn("could not list instance layers")
	} else {
		logNames(logger, "available layer", layers)
	}
	logNames(logger, "required layer", requiredLayers)

	if extensions, err := p.InstanceExtensions(); err != nil {
		logger.WithError(err).Warn("could not list instance extensions")
	} else {
		logNames(logger, "available extension", extensions)
	}
	logNames(logger, "required extension", requiredExtensions)
}

func logNames(logger logrus.FieldLogger, msg string, names []string) {
	for _, name := range names {
		logger.WithField("name", name).Info(msg)
	}
}

// missing returns the entries of required that are not in available, in order.
func missing(required, available []string) []string {
	set := make(map[string]struct{}, len(available))
	for _, name := range available {
		set[name] = struct{}{}
	}

	var absent []string
	for _, name := range required {
		if _, ok := set[name]; !ok {
			absent = append(absent, name)
		}
	}
	return absent
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
