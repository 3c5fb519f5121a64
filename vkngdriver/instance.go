package vkngdriver

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"
	"github.com/vkngwrapper/triangle/bootstrap"
)

type Instance struct {
	driver  core1_0.CoreInstanceDriver
	surface khr_surface.ExtensionDriver
	// nil unless the instance was created with VK_EXT_debug_utils
	debug ext_debug_utils.ExtensionDriver
}

var _ bootstrap.Instance = (*Instance)(nil)

func (i *Instance) DebugUtils() bootstrap.DebugUtils {
	if i.debug == nil {
		return nil
	}
	return &debugUtils{driver: i.debug}
}

// CreateSurface needs the SDL window behind window, so it only accepts a
// *Window from this package.
func (i *Instance) CreateSurface(window bootstrap.Window) (bootstrap.Surface, error) {
	sdlWindow, ok := window.(*Window)
	if !ok || sdlWindow.window == nil {
		return nil, errors.Newf("cannot create a surface for %T", window)
	}

	handle, err := vkng_sdl2.CreateSurface(i.driver.Instance(), i.surface, sdlWindow.window)
	if err != nil {
		return nil, err
	}

	return &Surface{driver: i.surface, handle: handle}, nil
}

func (i *Instance) PhysicalDevices() ([]bootstrap.PhysicalDevice, error) {
	physicalDevices, _, err := i.driver.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	devices := make([]bootstrap.PhysicalDevice, 0, len(physicalDevices))
	for _, handle := range physicalDevices {
		devices = append(devices, &PhysicalDevice{instance: i, handle: handle})
	}
	return devices, nil
}

func (i *Instance) Destroy() {
	i.driver.DestroyInstance(nil)
}

type Surface struct {
	driver khr_surface.ExtensionDriver
	handle khr_surface.Surface
}

func (s *Surface) Handle() khr_surface.Surface {
	return s.handle
}

func (s *Surface) Destroy() {
	s.driver.DestroySurface(s.handle, nil)
}
