package bootstrap

import (
	"io/fs"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

const (
	VertexShaderPath   = "shaders/vert.spv"
	FragmentShaderPath = "shaders/frag.spv"
)

var defaultValidationLayers = []string{"VK_LAYER_KHRONOS_validation"}

// Config controls one bootstrap run.
type Config struct {
	ApplicationName string
	EngineName      string

	// Debug requests the validation layers and the diagnostic sink.
	Debug            bool
	ValidationLayers []string

	DeviceExtensions []string
	// RequiredFeatures reports whether a device offers the features the
	// pipeline depends on. A nil func accepts every device.
	RequiredFeatures func(features *core1_0.PhysicalDeviceFeatures) bool

	// Shaders holds the pre-compiled SPIR-V binaries.
	Shaders            fs.FS
	VertexShaderPath   string
	FragmentShaderPath string

	ClearColor mgl32.Vec4

	Logger logrus.FieldLogger
	// DiagnosticHandler receives validation messages; nil logs them through Logger.
	DiagnosticHandler func(msg DiagnosticMessage) bool
}

// DefaultConfig returns the configuration for the hello triangle: validation
// in debug builds, swapchain support, geometry shaders, shaders read from
// the working directory, opaque black clear color.
func DefaultConfig() Config {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	return Config{
		ApplicationName: "Hello Triangle",
		EngineName:      "No Engine",

		Debug:            debugDefault,
		ValidationLayers: append([]string(nil), defaultValidationLayers...),

		DeviceExtensions: []string{khr_swapchain.ExtensionName},
		RequiredFeatures: func(features *core1_0.PhysicalDeviceFeatures) bool {
			return features.GeometryShader
		},

		Shaders:            os.DirFS("."),
		VertexShaderPath:   VertexShaderPath,
		FragmentShaderPath: FragmentShaderPath,

		ClearColor: mgl32.Vec4{0, 0, 0, 1},

		Logger: logger,
	}
}

func (c Config) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}

// deviceLayers are the layers enabled on the logical device. Device layers
// are deprecated but older loaders still expect them to match the instance.
func (c Config) deviceLayers() []string {
	if !c.Debug {
		return nil
	}
	return c.ValidationLayers
}
