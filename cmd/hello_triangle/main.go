package main

//go:generate glslc ../../shaders/shader.vert -o ../../shaders/vert.spv
//go:generate glslc ../../shaders/shader.frag -o ../../shaders/frag.spv

import (
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/triangle/bootstrap"
	"github.com/vkngwrapper/triangle/vkngdriver"
)

func run(s settings, logger *log.Logger) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return errors.Wrap(err, "init SDL")
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("Vulkan", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(s.width), int32(s.height), sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN)
	if err != nil {
		return errors.Wrap(err, "create window")
	}
	defer window.Destroy()

	loader, err := vkngdriver.NewLoader(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return err
	}

	vkWindow, err := vkngdriver.NewWindow(window)
	if err != nil {
		return err
	}

	cfg := bootstrap.DefaultConfig()
	cfg.Debug = s.debug
	cfg.Shaders = os.DirFS(s.shaderDir)
	cfg.Logger = logger

	app, err := bootstrap.Bootstrap(loader, vkWindow, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.RecordCommandBuffer(0); err != nil {
		return err
	}
	logger.Info("triangle recorded, close the window to exit")

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				return nil
			}
		}
		sdl.Delay(16)
	}
}

func main() {
	runtime.LockOSThread()

	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	s, err := loadSettings(bootstrap.DefaultConfig().Debug)
	if err != nil {
		logger.Fatalf("%+v", err)
	}
	logger.SetLevel(s.logLevel)

	if err := run(s, logger); err != nil {
		logger.WithField("kind", bootstrap.Kind(err)).Errorf("%+v", err)
		os.Exit(1)
	}
}
