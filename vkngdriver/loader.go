// Package vkngdriver implements the bootstrap driver interfaces on top of
// vkngwrapper. Every call passes nil allocation callbacks and drops the
// VkResult once it has been folded into the returned error.
package vkngdriver

import (
	"sort"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/triangle/bootstrap"
)

// Loader is the global driver, resolved from vkGetInstanceProcAddr.
type Loader struct {
	driver core1_0.GlobalDriver
}

var _ bootstrap.Loader = (*Loader)(nil)

// NewLoader builds the global driver from the windowing layer's
// vkGetInstanceProcAddr.
func NewLoader(procAddr unsafe.Pointer) (*Loader, error) {
	if procAddr == nil {
		return nil, errors.New("vkGetInstanceProcAddr is not available")
	}

	driver, err := core.CreateDriverFromProcAddr(procAddr)
	if err != nil {
		return nil, errors.Wrap(err, "load vulkan")
	}

	return &Loader{driver: driver}, nil
}

func (l *Loader) AvailableExtensions() ([]string, error) {
	extensions, _, err := l.driver.AvailableExtensions()
	if err != nil {
		return nil, err
	}
	return sortedNames(extensions), nil
}

func (l *Loader) AvailableLayers() ([]string, error) {
	layers, _, err := l.driver.AvailableLayers()
	if err != nil {
		return nil, err
	}
	return sortedNames(layers), nil
}

func (l *Loader) CreateInstance(info bootstrap.InstanceCreateInfo) (bootstrap.Instance, error) {
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    info.ApplicationName,
		ApplicationVersion: common.CreateVersion(1, 0, 0),
		EngineName:         info.EngineName,
		EngineVersion:      common.CreateVersion(1, 0, 0),
		APIVersion:         common.Vulkan1_0,

		EnabledExtensionNames: info.Extensions,
		EnabledLayerNames:     info.Layers,
	}

	if info.EnumeratePortability {
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	if info.Messenger != nil {
		instanceOptions.Next = messengerOptions(*info.Messenger)
	}

	instanceDriver, _, err := l.driver.CreateInstance(nil, instanceOptions)
	if err != nil {
		return nil, err
	}

	instance := &Instance{
		driver:  instanceDriver,
		surface: khr_surface.CreateExtensionDriverFromCoreDriver(instanceDriver),
	}

	for _, ext := range info.Extensions {
		if ext == ext_debug_utils.ExtensionName {
			instance.debug = ext_debug_utils.CreateExtensionDriverFromCoreDriver(instanceDriver)
			break
		}
	}

	return instance, nil
}

func sortedNames[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
