package bootstrap

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// The interfaces below are the slice of the Vulkan API the bootstrap needs.
// Each method stands for one vkngwrapper driver call with the allocation
// callbacks dropped and the VkResult folded into the error. Package vkngdriver
// provides the production implementation.

// Window is the render target handed over by the windowing layer.
type Window interface {
	// RequiredInstanceExtensions lists the instance extensions needed to present to the window.
	RequiredInstanceExtensions() []string
	// DrawableSize reports the size of the window framebuffer in pixels.
	DrawableSize() (width, height int)
}

// Loader is the global (pre-instance) level of the API.
type Loader interface {
	AvailableExtensions() ([]string, error)
	AvailableLayers() ([]string, error)
	CreateInstance(info InstanceCreateInfo) (Instance, error)
}

// InstanceCreateInfo describes the instance to create.
type InstanceCreateInfo struct {
	ApplicationName string
	EngineName      string
	Extensions      []string
	Layers          []string

	// EnumeratePortability requests portability (non-conformant) implementations.
	EnumeratePortability bool
	// Messenger, when set, is chained into instance creation so that
	// instance creation and destruction are reported as well.
	Messenger *MessengerCreateInfo
}

// Instance is a live API instance.
type Instance interface {
	// DebugUtils returns the debug messenger entry points, or nil when the
	// instance was created without them.
	DebugUtils() DebugUtils
	CreateSurface(window Window) (Surface, error)
	PhysicalDevices() ([]PhysicalDevice, error)
	Destroy()
}

// DebugUtils creates diagnostic messengers.
type DebugUtils interface {
	CreateMessenger(info MessengerCreateInfo) (DebugMessenger, error)
}

type DebugMessenger interface {
	Destroy()
}

// Surface is a presentable window surface bound to an instance.
type Surface interface {
	Handle() khr_surface.Surface
	Destroy()
}

// PhysicalDevice describes one GPU. It is enumerated, never created or destroyed.
type PhysicalDevice interface {
	Properties() (*DeviceProperties, error)
	Features() (*core1_0.PhysicalDeviceFeatures, error)
	QueueFamilies() []QueueFamily
	Extensions() ([]string, error)

	SurfaceSupport(surface Surface, queueFamily int) (bool, error)
	SurfaceCapabilities(surface Surface) (*khr_surface.SurfaceCapabilities, error)
	SurfaceFormats(surface Surface) ([]khr_surface.SurfaceFormat, error)
	SurfacePresentModes(surface Surface) ([]khr_surface.PresentMode, error)

	CreateDevice(info DeviceCreateInfo) (Device, error)
}

// DeviceProperties is the part of the device properties the selector scores on.
type DeviceProperties struct {
	Name                string
	Type                core1_0.PhysicalDeviceType
	MaxImageDimension2D int
}

// QueueFamily is one entry of a device's queue family list.
type QueueFamily struct {
	Flags      core1_0.QueueFlags
	QueueCount int
}

// DeviceCreateInfo describes the logical device to create.
type DeviceCreateInfo struct {
	QueueCreateInfos []core1_0.DeviceQueueCreateInfo
	Extensions       []string
	// Layers mirrors the instance validation layers. Drivers that cannot set
	// device layers may ignore it.
	Layers           []string
}

// Device is a logical device and the object constructors hanging off it.
type Device interface {
	GetQueue(queueFamily, index int) core1_0.Queue
	WaitIdle() error
	Destroy()

	CreateSwapchain(info khr_swapchain.SwapchainCreateInfo) (khr_swapchain.Swapchain, error)
	SwapchainImages(swapchain khr_swapchain.Swapchain) ([]core1_0.Image, error)
	DestroySwapchain(swapchain khr_swapchain.Swapchain)

	CreateImageView(info core1_0.ImageViewCreateInfo) (core1_0.ImageView, error)
	DestroyImageView(view core1_0.ImageView)

	CreateRenderPass(info core1_0.RenderPassCreateInfo) (core1_0.RenderPass, error)
	DestroyRenderPass(renderPass core1_0.RenderPass)

	CreateShaderModule(info core1_0.ShaderModuleCreateInfo) (core1_0.ShaderModule, error)
	DestroyShaderModule(module core1_0.ShaderModule)

	CreatePipelineLayout(info core1_0.PipelineLayoutCreateInfo) (core1_0.PipelineLayout, error)
	DestroyPipelineLayout(layout core1_0.PipelineLayout)

	CreateGraphicsPipeline(info core1_0.GraphicsPipelineCreateInfo) (core1_0.Pipeline, error)
	DestroyPipeline(pipeline core1_0.Pipeline)

	CreateFramebuffer(info core1_0.FramebufferCreateInfo) (core1_0.Framebuffer, error)
	DestroyFramebuffer(framebuffer core1_0.Framebuffer)

	CreateCommandPool(info core1_0.CommandPoolCreateInfo) (core1_0.CommandPool, error)
	DestroyCommandPool(pool core1_0.CommandPool)
	AllocateCommandBuffers(info core1_0.CommandBufferAllocateInfo) ([]core1_0.CommandBuffer, error)

	BeginCommandBuffer(buffer core1_0.CommandBuffer, info core1_0.CommandBufferBeginInfo) error
	EndCommandBuffer(buffer core1_0.CommandBuffer) error
	CmdBeginRenderPass(buffer core1_0.CommandBuffer, contents core1_0.SubpassContents, info core1_0.RenderPassBeginInfo) error
	CmdEndRenderPass(buffer core1_0.CommandBuffer)
	CmdBindPipeline(buffer core1_0.CommandBuffer, bindPoint core1_0.PipelineBindPoint, pipeline core1_0.Pipeline)
	CmdSetViewport(buffer core1_0.CommandBuffer, viewports ...core1_0.Viewport)
	CmdSetScissor(buffer core1_0.CommandBuffer, scissors ...core1_0.Rect2D)
	CmdDraw(buffer core1_0.CommandBuffer, vertexCount, instanceCount, firstVertex int, firstInstance uint32)
}
