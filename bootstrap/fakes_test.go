package bootstrap

import (
	"io"
	"strings"
	"testing/fstest"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

var errRejected = errors.New("VK_ERROR_INITIALIZATION_FAILED")

// recorder collects the driver calls made against the fakes, in order.
type recorder struct {
	calls []string
}

func (r *recorder) record(call string) {
	r.calls = append(r.calls, call)
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

// destroyed lists the Destroy* calls in order, without the prefix.
func (r *recorder) destroyed() []string {
	var out []string
	for _, c := range r.calls {
		if strings.HasPrefix(c, "Destroy") {
			out = append(out, strings.TrimPrefix(c, "Destroy"))
		}
	}
	return out
}

func (r *recorder) has(call string) bool {
	return r.count(call) > 0
}

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeWindow struct {
	extensions    []string
	width, height int
}

func (w *fakeWindow) RequiredInstanceExtensions() []string { return w.extensions }
func (w *fakeWindow) DrawableSize() (int, int)           { return w.width, w.height }

type fakeLoader struct {
	rec        *recorder
	extensions []string
	layers     []string
	createErr  error
	instance   *fakeInstance

	created *InstanceCreateInfo
}

func (l *fakeLoader) AvailableExtensions() ([]string, error) {
	l.rec.record("AvailableExtensions")
	return l.extensions, nil
}

func (l *fakeLoader) AvailableLayers() ([]string, error) {
	l.rec.record("AvailableLayers")
	return l.layers, nil
}

func (l *fakeLoader) CreateInstance(info InstanceCreateInfo) (Instance, error) {
	l.rec.record("CreateInstance")
	l.created = &info
	if l.createErr != nil {
		return nil, l.createErr
	}
	return l.instance, nil
}

type fakeInstance struct {
	rec        *recorder
	debugUtils DebugUtils
	surfaceErr error
	devices    []PhysicalDevice
}

func (i *fakeInstance) DebugUtils() DebugUtils { return i.debugUtils }

func (i *fakeInstance) CreateSurface(window Window) (Surface, error) {
	i.rec.record("CreateSurface")
	if i.surfaceErr != nil {
		return nil, i.surfaceErr
	}
	return &fakeSurface{rec: i.rec}, nil
}

func (i *fakeInstance) PhysicalDevices() ([]PhysicalDevice, error) {
	return i.devices, nil
}

func (i *fakeInstance) Destroy() { i.rec.record("DestroyInstance") }

type fakeDebugUtils struct {
	rec       *recorder
	createErr error
	created   *MessengerCreateInfo
}

func (d *fakeDebugUtils) CreateMessenger(info MessengerCreateInfo) (DebugMessenger, error) {
	d.rec.record("CreateDebugMessenger")
	d.created = &info
	if d.createErr != nil {
		return nil, d.createErr
	}
	return &fakeMessenger{rec: d.rec}, nil
}

type fakeMessenger struct {
	rec *recorder
}

func (m *fakeMessenger) Destroy() { m.rec.record("DestroyDebugMessenger") }

type fakeSurface struct {
	rec *recorder
}

func (s *fakeSurface) Handle() khr_surface.Surface {
	var surface khr_surface.Surface
	return surface
}

func (s *fakeSurface) Destroy() { s.rec.record("DestroySurface") }

type fakePhysicalDevice struct {
	props      DeviceProperties
	features   core1_0.PhysicalDeviceFeatures
	families   []QueueFamily
	present    map[int]bool
	extensions []string

	capabilities *khr_surface.SurfaceCapabilities
	formats      []khr_surface.SurfaceFormat
	modes        []khr_surface.PresentMode

	propsErr  error
	createErr error
	device    *fakeDevice

	supportQueries []int
	createdWith    *DeviceCreateInfo
}

func (d *fakePhysicalDevice) Properties() (*DeviceProperties, error) {
	if d.propsErr != nil {
		return nil, d.propsErr
	}
	props := d.props
	return &props, nil
}

func (d *fakePhysicalDevice) Features() (*core1_0.PhysicalDeviceFeatures, error) {
	features := d.features
	return &features, nil
}

func (d *fakePhysicalDevice) QueueFamilies() []QueueFamily { return d.families }

func (d *fakePhysicalDevice) Extensions() ([]string, error) { return d.extensions, nil }

func (d *fakePhysicalDevice) SurfaceSupport(surface Surface, queueFamily int) (bool, error) {
	d.supportQueries = append(d.supportQueries, queueFamily)
	return d.present[queueFamily], nil
}

func (d *fakePhysicalDevice) SurfaceCapabilities(surface Surface) (*khr_surface.SurfaceCapabilities, error) {
	return d.capabilities, nil
}

func (d *fakePhysicalDevice) SurfaceFormats(surface Surface) ([]khr_surface.SurfaceFormat, error) {
	return d.formats, nil
}

func (d *fakePhysicalDevice) SurfacePresentModes(surface Surface) ([]khr_surface.PresentMode, error) {
	return d.modes, nil
}

func (d *fakePhysicalDevice) CreateDevice(info DeviceCreateInfo) (Device, error) {
	d.createdWith = &info
	if d.createErr != nil {
		return nil, d.createErr
	}
	d.device.rec.record("CreateDevice")
	return d.device, nil
}

type fakeDevice struct {
	rec        *recorder
	fail       map[string]error
	imageCount int
	// succeed limits how many calls of a name succeed before it fails.
	succeed map[string]int

	queueRequests []int
	swapchainInfo *khr_swapchain.SwapchainCreateInfo
	renderPass    *core1_0.RenderPassCreateInfo
	pipelineInfo  *core1_0.GraphicsPipelineCreateInfo
	commandPool   *core1_0.CommandPoolCreateInfo
	allocate      *core1_0.CommandBufferAllocateInfo
	framebuffers  []core1_0.FramebufferCreateInfo
	imageViews    []core1_0.ImageViewCreateInfo
	shaderCode    [][]uint32
	beginPass     *core1_0.RenderPassBeginInfo
	viewports     []core1_0.Viewport
	scissors      []core1_0.Rect2D
	draws         [][4]int
}

func newFakeDevice(rec *recorder) *fakeDevice {
	return &fakeDevice{rec: rec, fail: map[string]error{}, succeed: map[string]int{}, imageCount: 3}
}

// call records name and returns the injected failure for it, if any.
func (d *fakeDevice) call(name string) error {
	d.rec.record(name)
	if n, ok := d.succeed[name]; ok {
		if n == 0 {
			return errRejected
		}
		d.succeed[name] = n - 1
	}
	return d.fail[name]
}

func (d *fakeDevice) GetQueue(queueFamily, index int) core1_0.Queue {
	d.rec.record("GetQueue")
	d.queueRequests = append(d.queueRequests, queueFamily)
	var queue core1_0.Queue
	return queue
}

func (d *fakeDevice) WaitIdle() error {
	d.rec.record("WaitIdle")
	return nil
}

func (d *fakeDevice) Destroy() { d.rec.record("DestroyDevice") }

func (d *fakeDevice) CreateSwapchain(info khr_swapchain.SwapchainCreateInfo) (khr_swapchain.Swapchain, error) {
	d.swapchainInfo = &info
	var swapchain khr_swapchain.Swapchain
	return swapchain, d.call("CreateSwapchain")
}

func (d *fakeDevice) SwapchainImages(swapchain khr_swapchain.Swapchain) ([]core1_0.Image, error) {
	if err := d.call("SwapchainImages"); err != nil {
		return nil, err
	}
	return make([]core1_0.Image, d.imageCount), nil
}

func (d *fakeDevice) DestroySwapchain(swapchain khr_swapchain.Swapchain) {
	d.rec.record("DestroySwapchain")
}

func (d *fakeDevice) CreateImageView(info core1_0.ImageViewCreateInfo) (core1_0.ImageView, error) {
	var view core1_0.ImageView
	if err := d.call("CreateImageView"); err != nil {
		return view, err
	}
	d.imageViews = append(d.imageViews, info)
	return view, nil
}

func (d *fakeDevice) DestroyImageView(view core1_0.ImageView) { d.rec.record("DestroyImageView") }

func (d *fakeDevice) CreateRenderPass(info core1_0.RenderPassCreateInfo) (core1_0.RenderPass, error) {
	d.renderPass = &info
	var renderPass core1_0.RenderPass
	return renderPass, d.call("CreateRenderPass")
}

func (d *fakeDevice) DestroyRenderPass(renderPass core1_0.RenderPass) {
	d.rec.record("DestroyRenderPass")
}

func (d *fakeDevice) CreateShaderModule(info core1_0.ShaderModuleCreateInfo) (core1_0.ShaderModule, error) {
	var module core1_0.ShaderModule
	if err := d.call("CreateShaderModule"); err != nil {
		return module, err
	}
	d.shaderCode = append(d.shaderCode, info.Code)
	return module, nil
}

func (d *fakeDevice) DestroyShaderModule(module core1_0.ShaderModule) {
	d.rec.record("DestroyShaderModule")
}

func (d *fakeDevice) CreatePipelineLayout(info core1_0.PipelineLayoutCreateInfo) (core1_0.PipelineLayout, error) {
	var layout core1_0.PipelineLayout
	return layout, d.call("CreatePipelineLayout")
}

func (d *fakeDevice) DestroyPipelineLayout(layout core1_0.PipelineLayout) {
	d.rec.record("DestroyPipelineLayout")
}

func (d *fakeDevice) CreateGraphicsPipeline(info core1_0.GraphicsPipelineCreateInfo) (core1_0.Pipeline, error) {
	d.pipelineInfo = &info
	var pipeline core1_0.Pipeline
	return pipeline, d.call("CreateGraphicsPipeline")
}

func (d *fakeDevice) DestroyPipeline(pipeline core1_0.Pipeline) { d.rec.record("DestroyPipeline") }

func (d *fakeDevice) CreateFramebuffer(info core1_0.FramebufferCreateInfo) (core1_0.Framebuffer, error) {
	var framebuffer core1_0.Framebuffer
	if err := d.call("CreateFramebuffer"); err != nil {
		return framebuffer, err
	}
	d.framebuffers = append(d.framebuffers, info)
	return framebuffer, nil
}

func (d *fakeDevice) DestroyFramebuffer(framebuffer core1_0.Framebuffer) {
	d.rec.record("DestroyFramebuffer")
}

func (d *fakeDevice) CreateCommandPool(info core1_0.CommandPoolCreateInfo) (core1_0.CommandPool, error) {
	d.commandPool = &info
	var pool core1_0.CommandPool
	return pool, d.call("CreateCommandPool")
}

func (d *fakeDevice) DestroyCommandPool(pool core1_0.CommandPool) {
	d.rec.record("DestroyCommandPool")
}

func (d *fakeDevice) AllocateCommandBuffers(info core1_0.CommandBufferAllocateInfo) ([]core1_0.CommandBuffer, error) {
	d.allocate = &info
	if err := d.call("AllocateCommandBuffers"); err != nil {
		return nil, err
	}
	return make([]core1_0.CommandBuffer, info.CommandBufferCount), nil
}

func (d *fakeDevice) BeginCommandBuffer(buffer core1_0.CommandBuffer, info core1_0.CommandBufferBeginInfo) error {
	return d.call("BeginCommandBuffer")
}

func (d *fakeDevice) EndCommandBuffer(buffer core1_0.CommandBuffer) error {
	return d.call("EndCommandBuffer")
}

func (d *fakeDevice) CmdBeginRenderPass(buffer core1_0.CommandBuffer, contents core1_0.SubpassContents, info core1_0.RenderPassBeginInfo) error {
	d.beginPass = &info
	return d.call("CmdBeginRenderPass")
}

func (d *fakeDevice) CmdEndRenderPass(buffer core1_0.CommandBuffer) { d.rec.record("CmdEndRenderPass") }

func (d *fakeDevice) CmdBindPipeline(buffer core1_0.CommandBuffer, bindPoint core1_0.PipelineBindPoint, pipeline core1_0.Pipeline) {
	d.rec.record("CmdBindPipeline")
}

func (d *fakeDevice) CmdSetViewport(buffer core1_0.CommandBuffer, viewports ...core1_0.Viewport) {
	d.rec.record("CmdSetViewport")
	d.viewports = append(d.viewports, viewports...)
}

func (d *fakeDevice) CmdSetScissor(buffer core1_0.CommandBuffer, scissors ...core1_0.Rect2D) {
	d.rec.record("CmdSetScissor")
	d.scissors = append(d.scissors, scissors...)
}

func (d *fakeDevice) CmdDraw(buffer core1_0.CommandBuffer, vertexCount, instanceCount, firstVertex int, firstInstance uint32) {
	d.rec.record("CmdDraw")
	d.draws = append(d.draws, [4]int{vertexCount, instanceCount, firstVertex, int(firstInstance)})
}

var windowExtensions = []string{"VK_KHR_surface", "VK_KHR_xlib_surface"}

func goodCapabilities() *khr_surface.SurfaceCapabilities {
	return &khr_surface.SurfaceCapabilities{
		MinImageCount:  2,
		MaxImageCount:  8,
		CurrentExtent:  core1_0.Extent2D{Width: 800, Height: 600},
		MinImageExtent: core1_0.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: core1_0.Extent2D{Width: 4096, Height: 4096},
	}
}

// goodDevice is a discrete GPU with a single family doing graphics and present.
func goodDevice(rec *recorder) *fakePhysicalDevice {
	return &fakePhysicalDevice{
		props: DeviceProperties{
			Name:                "Fake Discrete",
			Type:                core1_0.PhysicalDeviceTypeDiscreteGPU,
			MaxImageDimension2D: 16384,
		},
		features:     core1_0.PhysicalDeviceFeatures{GeometryShader: true},
		families:     []QueueFamily{{Flags: core1_0.QueueGraphics, QueueCount: 1}},
		present:      map[int]bool{0: true},
		extensions:   []string{khr_swapchain.ExtensionName},
		capabilities: goodCapabilities(),
		formats: []khr_surface.SurfaceFormat{
			{Format: core1_0.FormatB8G8R8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
		},
		modes:  []khr_surface.PresentMode{khr_surface.PresentModeFIFO},
		device: newFakeDevice(rec),
	}
}

type fixture struct {
	rec      *recorder
	window   *fakeWindow
	loader   *fakeLoader
	instance *fakeInstance
	debug    *fakeDebugUtils
	physical *fakePhysicalDevice
	device   *fakeDevice
	cfg      Config
}

func newFixture(debug bool) *fixture {
	rec := &recorder{}
	debugUtils := &fakeDebugUtils{rec: rec}
	physical := goodDevice(rec)
	instance := &fakeInstance{
		rec:        rec,
		debugUtils: debugUtils,
		devices:    []PhysicalDevice{physical},
	}

	cfg := DefaultConfig()
	cfg.Debug = debug
	cfg.Logger = quietLogger()
	cfg.Shaders = fstest.MapFS{
		VertexShaderPath:   {Data: []byte{0x03, 0x02, 0x23, 0x07, 0, 0, 1, 0}},
		FragmentShaderPath: {Data: []byte{0x03, 0x02, 0x23, 0x07, 0, 0, 1, 0}},
	}

	return &fixture{
		rec:    rec,
		window: &fakeWindow{extensions: windowExtensions, width: 800, height: 600},
		loader: &fakeLoader{
			rec:        rec,
			extensions: append(append([]string(nil), windowExtensions...), "VK_EXT_debug_utils"),
			layers:     []string{"VK_LAYER_KHRONOS_validation"},
			instance:   instance,
		},
		instance: instance,
		debug:    debugUtils,
		physical: physical,
		device:   physical.device,
		cfg:      cfg,
	}
}
