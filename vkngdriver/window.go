package vkngdriver

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/triangle/bootstrap"
)

// Window adapts an SDL window created with sdl.WINDOW_VULKAN.
type Window struct {
	window *sdl.Window
}

var _ bootstrap.Window = (*Window)(nil)

func NewWindow(window *sdl.Window) (*Window, error) {
	if window == nil {
		return nil, errors.New("nil SDL window")
	}
	return &Window{window: window}, nil
}

func (w *Window) RequiredInstanceExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

func (w *Window) DrawableSize() (int, int) {
	width, height := w.window.VulkanGetDrawableSize()
	return int(width), int(height)
}
