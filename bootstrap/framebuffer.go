package bootstrap

import (
	"github.com/vkngwrapper/core/v3/core1_0"
)

// CreateFramebuffers binds each image view to the render pass. On failure
// the framebuffers already built are destroyed.
func CreateFramebuffers(device Device, renderPass core1_0.RenderPass, imageViews []core1_0.ImageView, extent core1_0.Extent2D) ([]core1_0.Framebuffer, error) {
	var framebuffers []core1_0.Framebuffer
	for viewIdx, imageView := range imageViews {
		framebuffer, err := device.CreateFramebuffer(core1_0.FramebufferCreateInfo{
			RenderPass: renderPass,
			Layers:     1,
			Attachments: []core1_0.ImageView{
				imageView,
			},
			Width:  extent.Width,
			Height: extent.Height,
		})
		if err != nil {
			DestroyFramebuffers(device, framebuffers)
			return nil, platformError(err, "failed to create framebuffer %d", viewIdx)
		}

		framebuffers = append(framebuffers, framebuffer)
	}

	return framebuffers, nil
}

func DestroyFramebuffers(device Device, framebuffers []core1_0.Framebuffer) {
	for _, framebuffer := range framebuffers {
		device.DestroyFramebuffer(framebuffer)
	}
}
