package bootstrap

import (
	"strings"

	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
)

// InstanceExtensions is the extension list an instance is created with:
// the window's extensions plus debug utils when debugging.
func InstanceExtensions(window Window, debug bool) []string {
	extensions := append([]string(nil), window.RequiredInstanceExtensions()...)
	if debug {
		extensions = append(extensions, ext_debug_utils.ExtensionName)
	}
	return extensions
}

// CreateInstance checks the requested layers and extensions against what the
// runtime offers and creates the instance. Layers are only checked, and only
// requested, in debug mode.
func CreateInstance(prober *Prober, loader Loader, window Window, cfg Config) (Instance, error) {
	info := InstanceCreateInfo{
		ApplicationName: cfg.ApplicationName,
		EngineName:      cfg.EngineName,
		Extensions:      InstanceExtensions(window, cfg.Debug),
	}

	if cfg.Debug {
		layers, err := prober.InstanceLayers()
		if err != nil {
			return nil, err
		}

		if absent := missing(cfg.ValidationLayers, layers); len(absent) > 0 {
			return nil, configurationErrorf("required validation layers not supported: %s", strings.Join(absent, ", "))
		}
		info.Layers = append(info.Layers, cfg.ValidationLayers...)
	}

	available, err := prober.InstanceExtensions()
	if err != nil {
		return nil, err
	}

	if absent := missing(info.Extensions, available); len(absent) > 0 {
		return nil, configurationErrorf("required extensions not supported: %s", strings.Join(absent, ", "))
	}

	// Portability implementations (MoltenVK) are only enumerated on request.
	if contains(available, khr_portability_enumeration.ExtensionName) {
		info.Extensions = append(info.Extensions, khr_portability_enumeration.ExtensionName)
		info.EnumeratePortability = true
	}

	if cfg.Debug {
		messenger := messengerCreateInfo(cfg)
		info.Messenger = &messenger
	}

	instance, err := loader.CreateInstance(info)
	if err != nil {
		return nil, platformError(err, "failed to create instance")
	}

	return instance, nil
}
