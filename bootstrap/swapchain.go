package bootstrap

import (
	"math"

	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// SwapchainSupport is what a device offers for presenting to one surface.
type SwapchainSupport struct {
	Capabilities *khr_surface.SurfaceCapabilities
	Formats      []khr_surface.SurfaceFormat
	PresentModes []khr_surface.PresentMode
}

// Adequate reports whether a swapchain can be built at all.
func (s *SwapchainSupport) Adequate() bool {
	return s.Capabilities != nil && len(s.Formats) > 0 && len(s.PresentModes) > 0
}

func QuerySwapchainSupport(prober *Prober, device PhysicalDevice, surface Surface) (SwapchainSupport, error) {
	var details SwapchainSupport
	var err error

	details.Capabilities, err = prober.SurfaceCapabilities(device, surface)
	if err != nil {
		return details, err
	}

	details.Formats, err = prober.SurfaceFormats(device, surface)
	if err != nil {
		return details, err
	}

	details.PresentModes, err = prober.SurfacePresentModes(device, surface)
	return details, err
}

// ChooseSurfaceFormat prefers 8-bit BGRA in the sRGB nonlinear color space
// and falls back to the first format offered.
func ChooseSurfaceFormat(availableFormats []khr_surface.SurfaceFormat) khr_surface.SurfaceFormat {
	for _, format := range availableFormats {
		if format.Format == core1_0.FormatB8G8R8A8SRGB && format.ColorSpace == khr_surface.ColorSpaceSRGBNonlinear {
			return format
		}
	}

	if len(availableFormats) == 0 {
		return khr_surface.SurfaceFormat{}
	}
	return availableFormats[0]
}

// ChoosePresentMode prefers mailbox and falls back to FIFO, which every
// implementation supports.
func ChoosePresentMode(availablePresentModes []khr_surface.PresentMode) khr_surface.PresentMode {
	for _, presentMode := range availablePresentModes {
		if presentMode == khr_surface.PresentModeMailbox {
			return presentMode
		}
	}

	return khr_surface.PresentModeFIFO
}

// undefinedExtent reports whether the surface leaves the extent to the
// swapchain via the 0xFFFFFFFF sentinel, seen as either -1 or MaxUint32
// depending on how the width was widened to int.
func undefinedExtent(extent core1_0.Extent2D) bool {
	return extent.Width == -1 || int64(extent.Width) == math.MaxUint32
}

// ChooseExtent uses the surface's current extent when it defines one and
// otherwise the window's drawable size clamped to the supported range.
func ChooseExtent(capabilities *khr_surface.SurfaceCapabilities, window Window) core1_0.Extent2D {
	if !undefinedExtent(capabilities.CurrentExtent) {
		return capabilities.CurrentExtent
	}

	width, height := window.DrawableSize()

	return core1_0.Extent2D{
		Width:  clamp(width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// ChooseImageCount asks for one image more than the minimum so the renderer
// does not wait on the driver. A maximum of zero means unbounded.
func ChooseImageCount(capabilities *khr_surface.SurfaceCapabilities) int {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && capabilities.MaxImageCount < imageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

// ChooseSharingMode shares the images between graphics and present when they
// are different families and keeps exclusive ownership otherwise.
func ChooseSharingMode(indices QueueFamilyIndices) (core1_0.SharingMode, []int) {
	if indices.IsComplete() && !indices.Shared() {
		return core1_0.SharingModeConcurrent, []int{*indices.GraphicsFamily, *indices.PresentFamily}
	}
	return core1_0.SharingModeExclusive, nil
}

// Swapchain is the presentable image chain and a view per image.
type Swapchain struct {
	Handle      khr_swapchain.Swapchain
	ImageFormat core1_0.Format
	Extent      core1_0.Extent2D
	PresentMode khr_surface.PresentMode
	Images      []core1_0.Image
}

// SwapchainCreateInfo builds the create info for the first swapchain on surface.
func SwapchainCreateInfo(surface Surface, support SwapchainSupport, indices QueueFamilyIndices, window Window) khr_swapchain.SwapchainCreateInfo {
	surfaceFormat := ChooseSurfaceFormat(support.Formats)
	sharingMode, queueFamilyIndices := ChooseSharingMode(indices)

	return khr_swapchain.SwapchainCreateInfo{
		Surface: surface.Handle(),

		MinImageCount:    ChooseImageCount(support.Capabilities),
		ImageFormat:      surfaceFormat.Format,
		ImageColorSpace:  surfaceFormat.ColorSpace,
		ImageExtent:      ChooseExtent(support.Capabilities, window),
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   sharingMode,
		QueueFamilyIndices: queueFamilyIndices,

		PreTransform:   support.Capabilities.CurrentTransform,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    ChoosePresentMode(support.PresentModes),
		Clipped:        true,
	}
}

// CreateSwapchain creates the swapchain and fetches its images; the driver
// may hand back more images than requested.
func CreateSwapchain(device Device, surface Surface, support SwapchainSupport, indices QueueFamilyIndices, window Window) (*Swapchain, error) {
	if !support.Adequate() {
		return nil, unavailableErrorf("surface offers no formats or present modes")
	}

	info := SwapchainCreateInfo(surface, support, indices, window)

	handle, err := device.CreateSwapchain(info)
	if err != nil {
		return nil, platformError(err, "failed to create swap chain")
	}

	images, err := device.SwapchainImages(handle)
	if err != nil {
		device.DestroySwapchain(handle)
		return nil, platformError(err, "failed to get swap chain images")
	}

	return &Swapchain{
		Handle:      handle,
		ImageFormat: info.ImageFormat,
		Extent:      info.ImageExtent,
		PresentMode: info.PresentMode,
		Images:      images,
	}, nil
}

// CreateImageViews builds a 2D color view for each swapchain image. On
// failure the views already built are destroyed.
func CreateImageViews(device Device, swapchain *Swapchain) ([]core1_0.ImageView, error) {
	var imageViews []core1_0.ImageView
	for imageIdx, image := range swapchain.Images {
		view, err := device.CreateImageView(core1_0.ImageViewCreateInfo{
			Image:    image,
			ViewType: core1_0.ImageViewType2D,
			Format:   swapchain.ImageFormat,
			Components: core1_0.ComponentMapping{
				R: core1_0.ComponentSwizzleIdentity,
				G: core1_0.ComponentSwizzleIdentity,
				B: core1_0.ComponentSwizzleIdentity,
				A: core1_0.ComponentSwizzleIdentity,
			},
			SubresourceRange: core1_0.ImageSubresourceRange{
				AspectMask:     core1_0.ImageAspectColor,
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		})
		if err != nil {
			DestroyImageViews(device, imageViews)
			return nil, platformError(err, "failed to create image view %d", imageIdx)
		}

		imageViews = append(imageViews, view)
	}

	return imageViews, nil
}

func DestroyImageViews(device Device, views []core1_0.ImageView) {
	for _, view := range views {
		device.DestroyImageView(view)
	}
}
