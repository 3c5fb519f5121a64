package bootstrap

import (
	"github.com/vkngwrapper/core/v3/core1_0"
)

// QueueFamilyIndices holds the queue families the renderer submits to. A nil
// field has not been found (yet). Both may point at the same family.
type QueueFamilyIndices struct {
	GraphicsFamily *int
	PresentFamily  *int
}

func (i *QueueFamilyIndices) IsComplete() bool {
	return i.GraphicsFamily != nil && i.PresentFamily != nil
}

// Shared reports whether graphics and present use the same family.
func (i *QueueFamilyIndices) Shared() bool {
	return i.IsComplete() && *i.GraphicsFamily == *i.PresentFamily
}

// Unique lists the distinct families, graphics first.
func (i *QueueFamilyIndices) Unique() []int {
	var families []int
	if i.GraphicsFamily != nil {
		families = append(families, *i.GraphicsFamily)
	}
	if i.PresentFamily != nil && (i.GraphicsFamily == nil || *i.PresentFamily != *i.GraphicsFamily) {
		families = append(families, *i.PresentFamily)
	}
	return families
}

// FindQueueFamilyIndices walks the device's queue families in order and
// keeps the first graphics-capable one and the first one that can present
// to surface. Families without queues are skipped. The walk stops as soon as
// both are known.
func FindQueueFamilyIndices(prober *Prober, device PhysicalDevice, surface Surface) (QueueFamilyIndices, error) {
	indices := QueueFamilyIndices{}

	for queueFamilyIdx, queueFamily := range prober.QueueFamilies(device) {
		if queueFamily.QueueCount == 0 {
			continue
		}

		if indices.GraphicsFamily == nil && (queueFamily.Flags&core1_0.QueueGraphics) != 0 {
			graphicsIdx := queueFamilyIdx
			indices.GraphicsFamily = &graphicsIdx
		}

		if indices.PresentFamily == nil {
			supported, err := device.SurfaceSupport(surface, queueFamilyIdx)
			if err != nil {
				return indices, platformError(err, "query present support for queue family %d", queueFamilyIdx)
			}

			if supported {
				presentIdx := queueFamilyIdx
				indices.PresentFamily = &presentIdx
			}
		}

		if indices.IsComplete() {
			break
		}
	}

	return indices, nil
}
