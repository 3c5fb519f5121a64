package bootstrap

import (
	"github.com/vkngwrapper/core/v3/core1_0"
)

const shaderEntryPoint = "main"

// CreatePipelineLayout creates a layout with no descriptor sets and no push
// constants.
func CreatePipelineLayout(device Device) (core1_0.PipelineLayout, error) {
	layout, err := device.CreatePipelineLayout(core1_0.PipelineLayoutCreateInfo{})
	if err != nil {
		return core1_0.PipelineLayout{}, platformError(err, "failed to create pipeline layout")
	}
	return layout, nil
}

// GraphicsPipelineCreateInfo is the fixed-function state of the triangle
// pipeline. The vertices live in the vertex shader, so there is no vertex
// input. Viewport and scissor are dynamic and set while recording.
func GraphicsPipelineCreateInfo(vertShader, fragShader core1_0.ShaderModule, layout core1_0.PipelineLayout, renderPass core1_0.RenderPass) core1_0.GraphicsPipelineCreateInfo {
	vertStage := core1_0.PipelineShaderStageCreateInfo{
		Stage:  core1_0.StageVertex,
		Module: vertShader,
		Name:   shaderEntryPoint,
	}

	fragStage := core1_0.PipelineShaderStageCreateInfo{
		Stage:  core1_0.StageFragment,
		Module: fragShader,
		Name:   shaderEntryPoint,
	}

	vertexInput := &core1_0.PipelineVertexInputStateCreateInfo{}

	inputAssembly := &core1_0.PipelineInputAssemblyStateCreateInfo{
		Topology:               core1_0.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: false,
	}

	// One of each; the values come from the dynamic state.
	viewport := &core1_0.PipelineViewportStateCreateInfo{
		Viewports: []core1_0.Viewport{{MaxDepth: 1}},
		Scissors:  []core1_0.Rect2D{{}},
	}

	dynamicState := &core1_0.PipelineDynamicStateCreateInfo{
		DynamicStates: []core1_0.DynamicState{
			core1_0.DynamicStateViewport,
			core1_0.DynamicStateScissor,
		},
	}

	rasterization := &core1_0.PipelineRasterizationStateCreateInfo{
		DepthClampEnable:        false,
		RasterizerDiscardEnable: false,

		PolygonMode: core1_0.PolygonModeFill,
		CullMode:    core1_0.CullModeBack,
		FrontFace:   core1_0.FrontFaceClockwise,

		DepthBiasEnable: false,

		LineWidth: 1.0,
	}

	multisample := &core1_0.PipelineMultisampleStateCreateInfo{
		SampleShadingEnable:  false,
		RasterizationSamples: core1_0.Samples1,
		MinSampleShading:     1.0,
	}

	colorBlend := &core1_0.PipelineColorBlendStateCreateInfo{
		LogicOpEnabled: false,
		LogicOp:        core1_0.LogicOpCopy,

		BlendConstants: [4]float32{0, 0, 0, 0},
		Attachments: []core1_0.PipelineColorBlendAttachmentState{
			{
				BlendEnabled:   false,
				ColorWriteMask: core1_0.ColorComponentRed | core1_0.ColorComponentGreen | core1_0.ColorComponentBlue | core1_0.ColorComponentAlpha,
			},
		},
	}

	return core1_0.GraphicsPipelineCreateInfo{
		Stages: []core1_0.PipelineShaderStageCreateInfo{
			vertStage,
			fragStage,
		},
		VertexInputState:   vertexInput,
		InputAssemblyState: inputAssembly,
		ViewportState:      viewport,
		RasterizationState: rasterization,
		MultisampleState:   multisample,
		ColorBlendState:    colorBlend,
		DynamicState:       dynamicState,
		Layout:             layout,
		RenderPass:         renderPass,
		Subpass:            0,
		BasePipelineIndex:  -1,
	}
}

// CreateGraphicsPipeline loads both shader stages from cfg.Shaders and
// builds the pipeline. The shader modules are destroyed before returning:
// a compiled pipeline no longer needs them.
func CreateGraphicsPipeline(device Device, cfg Config, layout core1_0.PipelineLayout, renderPass core1_0.RenderPass) (core1_0.Pipeline, error) {
	vertShader, err := CreateShaderModule(device, cfg.Shaders, cfg.VertexShaderPath)
	if err != nil {
		return core1_0.Pipeline{}, err
	}
	defer device.DestroyShaderModule(vertShader)

	fragShader, err := CreateShaderModule(device, cfg.Shaders, cfg.FragmentShaderPath)
	if err != nil {
		return core1_0.Pipeline{}, err
	}
	defer device.DestroyShaderModule(fragShader)

	pipeline, err := device.CreateGraphicsPipeline(GraphicsPipelineCreateInfo(vertShader, fragShader, layout, renderPass))
	if err != nil {
		return core1_0.Pipeline{}, platformError(err, "failed to create graphics pipeline")
	}

	return pipeline, nil
}
