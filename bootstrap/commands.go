package bootstrap

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// triangleVertexCount is the number of vertices hard-coded in the vertex shader.
const triangleVertexCount = 3

// CreateCommandPool creates a pool on the graphics family whose buffers can
// be reset one at a time.
func CreateCommandPool(device Device, graphicsFamily int) (core1_0.CommandPool, error) {
	pool, err := device.CreateCommandPool(core1_0.CommandPoolCreateInfo{
		Flags:            core1_0.CommandPoolCreateResetBuffer,
		QueueFamilyIndex: graphicsFamily,
	})
	if err != nil {
		return core1_0.CommandPool{}, platformError(err, "failed to create command pool")
	}
	return pool, nil
}

// CreateCommandBuffer allocates one primary buffer. It is freed with the pool.
func CreateCommandBuffer(device Device, pool core1_0.CommandPool) (core1_0.CommandBuffer, error) {
	buffers, err := device.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        pool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	})
	if err != nil {
		return core1_0.CommandBuffer{}, platformError(err, "failed to allocate command buffers")
	}
	if len(buffers) != 1 {
		return core1_0.CommandBuffer{}, platformError(nil, "allocated %d command buffers, expected 1", len(buffers))
	}
	return buffers[0], nil
}

// DrawTarget is everything one recorded draw refers to.
type DrawTarget struct {
	RenderPass  core1_0.RenderPass
	Framebuffer core1_0.Framebuffer
	Pipeline    core1_0.Pipeline
	Extent      core1_0.Extent2D
	ClearColor  mgl32.Vec4
}

// RecordCommandBuffer records the triangle draw into buffer. Only beginning
// the buffer, beginning the render pass and ending the buffer can fail; the
// commands in between report their errors at the end.
func RecordCommandBuffer(device Device, buffer core1_0.CommandBuffer, target DrawTarget) error {
	err := device.BeginCommandBuffer(buffer, core1_0.CommandBufferBeginInfo{})
	if err != nil {
		return platformError(err, "failed to begin recording command buffer")
	}

	fullArea := core1_0.Rect2D{
		Offset: core1_0.Offset2D{X: 0, Y: 0},
		Extent: target.Extent,
	}

	err = device.CmdBeginRenderPass(buffer, core1_0.SubpassContentsInline,
		core1_0.RenderPassBeginInfo{
			RenderPass:  target.RenderPass,
			Framebuffer: target.Framebuffer,
			RenderArea:  fullArea,
			ClearValues: []core1_0.ClearValue{
				core1_0.ClearValueFloat{target.ClearColor[0], target.ClearColor[1], target.ClearColor[2], target.ClearColor[3]},
			},
		})
	if err != nil {
		return platformError(err, "failed to begin render pass")
	}

	device.CmdBindPipeline(buffer, core1_0.PipelineBindPointGraphics, target.Pipeline)
	device.CmdSetViewport(buffer, core1_0.Viewport{
		X:        0,
		Y:        0,
		Width:    float32(target.Extent.Width),
		Height:   float32(target.Extent.Height),
		MinDepth: 0,
		MaxDepth: 1,
	})
	device.CmdSetScissor(buffer, fullArea)
	device.CmdDraw(buffer, triangleVertexCount, 1, 0, 0)
	device.CmdEndRenderPass(buffer)

	err = device.EndCommandBuffer(buffer)
	if err != nil {
		return platformError(err, "failed to record command buffer")
	}

	return nil
}
