package bootstrap

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/loov/hrtime"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// Context owns every object the bootstrap creates, from the instance down to
// the command buffer. Fields are set in creation order and are only valid
// after Bootstrap returns without error.
type Context struct {
	cfg    Config
	log    logrus.FieldLogger
	loader Loader
	window Window
	prober *Prober

	teardown Teardown

	Instance       Instance
	DiagnosticSink *DiagnosticSink
	Surface        Surface

	PhysicalDevice *SelectedDevice
	QueueFamilies  QueueFamilyIndices
	Device         Device
	Queues         Queues

	Swapchain           *Swapchain
	SwapchainImageViews []core1_0.ImageView

	RenderPass     core1_0.RenderPass
	PipelineLayout core1_0.PipelineLayout
	Pipeline       core1_0.Pipeline

	Framebuffers  []core1_0.Framebuffer
	CommandPool   core1_0.CommandPool
	CommandBuffer core1_0.CommandBuffer
}

type stage struct {
	name string
	run  func() error
}

// Bootstrap runs the whole acquisition sequence: instance, diagnostics,
// surface, device, swapchain, pipeline, framebuffers and commands. If any
// step fails everything acquired so far is released before the error is
// returned.
func Bootstrap(loader Loader, window Window, cfg Config) (*Context, error) {
	c := &Context{
		cfg:    cfg,
		log:    cfg.logger().WithField("run", uuid.NewString()),
		loader: loader,
		window: window,
		prober: NewProber(loader),
	}

	stages := []stage{
		{"instance", c.createInstance},
		{"debug messenger", c.setupDebugMessenger},
		{"surface", c.createSurface},
		{"physical device", c.pickPhysicalDevice},
		{"logical device", c.createLogicalDevice},
		{"swapchain", c.createSwapchain},
		{"image views", c.createImageViews},
		{"render pass", c.createRenderPass},
		{"graphics pipeline", c.createGraphicsPipeline},
		{"framebuffers", c.createFramebuffers},
		{"command pool", c.createCommandPool},
		{"command buffer", c.createCommandBuffer},
	}

	for _, s := range stages {
		start := hrtime.Now()
		err := s.run()
		elapsed := hrtime.Since(start)

		if err != nil {
			c.Close()
			return nil, errors.WithMessagef(err, "bootstrap %s", s.name)
		}

		c.log.WithFields(logrus.Fields{
			"stage":   s.name,
			"elapsed": elapsed,
		}).Debug("bootstrap stage done")
	}

	return c, nil
}

func (c *Context) createInstance() error {
	c.prober.LogAvailable(c.log, c.requiredLayers(), InstanceExtensions(c.window, c.cfg.Debug))

	instance, err := CreateInstance(c.prober, c.loader, c.window, c.cfg)
	if err != nil {
		return err
	}

	c.Instance = instance
	c.teardown.Push("instance", instance.Destroy)
	return nil
}

func (c *Context) requiredLayers() []string {
	if !c.cfg.Debug {
		return nil
	}
	return c.cfg.ValidationLayers
}

func (c *Context) setupDebugMessenger() error {
	if !c.cfg.Debug {
		return nil
	}

	sink, err := CreateDiagnosticSink(c.Instance, messengerCreateInfo(c.cfg))
	if err != nil {
		return err
	}

	c.DiagnosticSink = sink
	c.teardown.Push("debug messenger", sink.Destroy)
	return nil
}

func (c *Context) createSurface() error {
	surface, err := CreateSurface(c.Instance, c.window)
	if err != nil {
		return err
	}

	c.Surface = surface
	c.teardown.Push("surface", surface.Destroy)
	return nil
}

func (c *Context) pickPhysicalDevice() error {
	selected, err := PickPhysicalDevice(c.prober, c.Instance, c.Surface, DeviceRequirements{
		Extensions: c.cfg.DeviceExtensions,
		Features:   c.cfg.RequiredFeatures,
	}, c.log)
	if err != nil {
		return err
	}

	c.PhysicalDevice = selected
	c.QueueFamilies = selected.Caps.QueueFamilies
	return nil
}

func (c *Context) createLogicalDevice() error {
	device, queues, err := CreateLogicalDevice(c.PhysicalDevice, c.cfg)
	if err != nil {
		return err
	}

	c.Device = device
	c.Queues = queues
	c.teardown.Push("logical device", device.Destroy)
	return nil
}

func (c *Context) createSwapchain() error {
	// Captured during selection; negotiation runs once, so the snapshot is current.
	support := c.PhysicalDevice.Caps.Swapchain
	if support == nil {
		return unavailableErrorf("selected device reported no swapchain support")
	}

	swapchain, err := CreateSwapchain(c.Device, c.Surface, *support, c.QueueFamilies, c.window)
	if err != nil {
		return err
	}

	c.Swapchain = swapchain
	c.teardown.Push("swapchain", func() {
		c.Device.DestroySwapchain(swapchain.Handle)
	})

	c.log.WithFields(logrus.Fields{
		"images":       len(swapchain.Images),
		"format":       swapchain.ImageFormat,
		"present_mode": swapchain.PresentMode,
		"width":        swapchain.Extent.Width,
		"height":       swapchain.Extent.Height,
	}).Info("created swapchain")
	return nil
}

func (c *Context) createImageViews() error {
	views, err := CreateImageViews(c.Device, c.Swapchain)
	if err != nil {
		return err
	}

	c.SwapchainImageViews = views
	c.teardown.Push("image views", func() {
		DestroyImageViews(c.Device, views)
	})
	return nil
}

func (c *Context) createRenderPass() error {
	renderPass, err := CreateRenderPass(c.Device, c.Swapchain.ImageFormat)
	if err != nil {
		return err
	}

	c.RenderPass = renderPass
	c.teardown.Push("render pass", func() {
		c.Device.DestroyRenderPass(renderPass)
	})
	return nil
}

func (c *Context) createGraphicsPipeline() error {
	layout, err := CreatePipelineLayout(c.Device)
	if err != nil {
		return err
	}

	c.PipelineLayout = layout
	c.teardown.Push("pipeline layout", func() {
		c.Device.DestroyPipelineLayout(layout)
	})

	pipeline, err := CreateGraphicsPipeline(c.Device, c.cfg, layout, c.RenderPass)
	if err != nil {
		return err
	}

	c.Pipeline = pipeline
	c.teardown.Push("graphics pipeline", func() {
		c.Device.DestroyPipeline(pipeline)
	})
	return nil
}

func (c *Context) createFramebuffers() error {
	framebuffers, err := CreateFramebuffers(c.Device, c.RenderPass, c.SwapchainImageViews, c.Swapchain.Extent)
	if err != nil {
		return err
	}

	c.Framebuffers = framebuffers
	c.teardown.Push("framebuffers", func() {
		DestroyFramebuffers(c.Device, framebuffers)
	})
	return nil
}

func (c *Context) createCommandPool() error {
	pool, err := CreateCommandPool(c.Device, *c.QueueFamilies.GraphicsFamily)
	if err != nil {
		return err
	}

	c.CommandPool = pool
	c.teardown.Push("command pool", func() {
		c.Device.DestroyCommandPool(pool)
	})
	return nil
}

func (c *Context) createCommandBuffer() error {
	buffer, err := CreateCommandBuffer(c.Device, c.CommandPool)
	if err != nil {
		return err
	}

	c.CommandBuffer = buffer
	return nil
}

// RecordCommandBuffer records the triangle draw targeting the framebuffer of
// swapchain image imageIndex.
func (c *Context) RecordCommandBuffer(imageIndex int) error {
	if imageIndex < 0 || imageIndex >= len(c.Framebuffers) {
		return configurationErrorf("image index out of range: %d not in [0, %d)", imageIndex, len(c.Framebuffers))
	}

	return RecordCommandBuffer(c.Device, c.CommandBuffer, DrawTarget{
		RenderPass:  c.RenderPass,
		Framebuffer: c.Framebuffers[imageIndex],
		Pipeline:    c.Pipeline,
		Extent:      c.Swapchain.Extent,
		ClearColor:  c.cfg.ClearColor,
	})
}

// Close waits for the device to finish and releases everything in reverse
// creation order. It is safe to call more than once.
func (c *Context) Close() {
	if c.teardown.Len() == 0 {
		return
	}

	if c.Device != nil {
		if err := c.Device.WaitIdle(); err != nil {
			c.log.WithError(err).Warn("device did not go idle before teardown")
		}
	}

	c.teardown.Run(c.log)
}

// PendingReleases lists what Close would release, in order.
func (c *Context) PendingReleases() []string {
	return c.teardown.Names()
}
