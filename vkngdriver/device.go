package vkngdriver

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
	"github.com/vkngwrapper/triangle/bootstrap"
)

type Device struct {
	driver    core1_0.CoreDeviceDriver
	swapchain khr_swapchain.ExtensionDriver
}

var _ bootstrap.Device = (*Device)(nil)

func (d *Device) GetQueue(queueFamily, index int) core1_0.Queue {
	return d.driver.GetQueue(queueFamily, index)
}

func (d *Device) WaitIdle() error {
	_, err := d.driver.DeviceWaitIdle()
	return err
}

func (d *Device) Destroy() {
	d.driver.DestroyDevice(nil)
}

func (d *Device) CreateSwapchain(info khr_swapchain.SwapchainCreateInfo) (khr_swapchain.Swapchain, error) {
	swapchain, _, err := d.swapchain.CreateSwapchain(nil, info)
	return swapchain, err
}

func (d *Device) SwapchainImages(swapchain khr_swapchain.Swapchain) ([]core1_0.Image, error) {
	images, _, err := d.swapchain.GetSwapchainImages(swapchain)
	return images, err
}

func (d *Device) DestroySwapchain(swapchain khr_swapchain.Swapchain) {
	d.swapchain.DestroySwapchain(swapchain, nil)
}

func (d *Device) CreateImageView(info core1_0.ImageViewCreateInfo) (core1_0.ImageView, error) {
	view, _, err := d.driver.CreateImageView(nil, info)
	return view, err
}

func (d *Device) DestroyImageView(view core1_0.ImageView) {
	d.driver.DestroyImageView(view, nil)
}

func (d *Device) CreateRenderPass(info core1_0.RenderPassCreateInfo) (core1_0.RenderPass, error) {
	renderPass, _, err := d.driver.CreateRenderPass(nil, info)
	return renderPass, err
}

func (d *Device) DestroyRenderPass(renderPass core1_0.RenderPass) {
	d.driver.DestroyRenderPass(renderPass, nil)
}

func (d *Device) CreateShaderModule(info core1_0.ShaderModuleCreateInfo) (core1_0.ShaderModule, error) {
	module, _, err := d.driver.CreateShaderModule(nil, info)
	return module, err
}

func (d *Device) DestroyShaderModule(module core1_0.ShaderModule) {
	d.driver.DestroyShaderModule(module, nil)
}

func (d *Device) CreatePipelineLayout(info core1_0.PipelineLayoutCreateInfo) (core1_0.PipelineLayout, error) {
	layout, _, err := d.driver.CreatePipelineLayout(nil, info)
	return layout, err
}

func (d *Device) DestroyPipelineLayout(layout core1_0.PipelineLayout) {
	d.driver.DestroyPipelineLayout(layout, nil)
}

func (d *Device) CreateGraphicsPipeline(info core1_0.GraphicsPipelineCreateInfo) (core1_0.Pipeline, error) {
	pipelines, _, err := d.driver.CreateGraphicsPipelines(nil, nil, info)
	if err != nil {
		return core1_0.Pipeline{}, err
	}
	if len(pipelines) != 1 {
		return core1_0.Pipeline{}, errors.Newf("driver returned %d pipelines for one create info", len(pipelines))
	}
	return pipelines[0], nil
}

func (d *Device) DestroyPipeline(pipeline core1_0.Pipeline) {
	d.driver.DestroyPipeline(pipeline, nil)
}

func (d *Device) CreateFramebuffer(info core1_0.FramebufferCreateInfo) (core1_0.Framebuffer, error) {
	framebuffer, _, err := d.driver.CreateFramebuffer(nil, info)
	return framebuffer, err
}

func (d *Device) DestroyFramebuffer(framebuffer core1_0.Framebuffer) {
	d.driver.DestroyFramebuffer(framebuffer, nil)
}

func (d *Device) CreateCommandPool(info core1_0.CommandPoolCreateInfo) (core1_0.CommandPool, error) {
	pool, _, err := d.driver.CreateCommandPool(nil, info)
	return pool, err
}

func (d *Device) DestroyCommandPool(pool core1_0.CommandPool) {
	d.driver.DestroyCommandPool(pool, nil)
}

func (d *Device) AllocateCommandBuffers(info core1_0.CommandBufferAllocateInfo) ([]core1_0.CommandBuffer, error) {
	buffers, _, err := d.driver.AllocateCommandBuffers(info)
	return buffers, err
}

func (d *Device) BeginCommandBuffer(buffer core1_0.CommandBuffer, info core1_0.CommandBufferBeginInfo) error {
	_, err := d.driver.BeginCommandBuffer(buffer, info)
	return err
}

func (d *Device) EndCommandBuffer(buffer core1_0.CommandBuffer) error {
	_, err := d.driver.EndCommandBuffer(buffer)
	return err
}

func (d *Device) CmdBeginRenderPass(buffer core1_0.CommandBuffer, contents core1_0.SubpassContents, info core1_0.RenderPassBeginInfo) error {
	return d.driver.CmdBeginRenderPass(buffer, contents, info)
}

func (d *Device) CmdEndRenderPass(buffer core1_0.CommandBuffer) {
	d.driver.CmdEndRenderPass(buffer)
}

func (d *Device) CmdBindPipeline(buffer core1_0.CommandBuffer, bindPoint core1_0.PipelineBindPoint, pipeline core1_0.Pipeline) {
	d.driver.CmdBindPipeline(buffer, bindPoint, pipeline)
}

func (d *Device) CmdSetViewport(buffer core1_0.CommandBuffer, viewports ...core1_0.Viewport) {
	d.driver.CmdSetViewport(buffer, viewports...)
}

func (d *Device) CmdSetScissor(buffer core1_0.CommandBuffer, scissors ...core1_0.Rect2D) {
	d.driver.CmdSetScissor(buffer, scissors...)
}

func (d *Device) CmdDraw(buffer core1_0.CommandBuffer, vertexCount, instanceCount, firstVertex int, firstInstance uint32) {
	d.driver.CmdDraw(buffer, vertexCount, instanceCount, uint32(firstVertex), firstInstance)
}
