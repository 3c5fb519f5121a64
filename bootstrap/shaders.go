package bootstrap

import (
	"encoding/binary"
	"io/fs"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// LoadShaderCode reads a SPIR-V binary from fsys as little-endian words.
func LoadShaderCode(fsys fs.FS, path string) ([]uint32, error) {
	if fsys == nil {
		return nil, ioError(errors.New("no shader file system configured"), "failed to open file %s", path)
	}

	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, ioError(err, "failed to open file %s", path)
	}

	if len(b) == 0 || len(b)%4 != 0 {
		return nil, ioError(errors.Newf("%d bytes is not a whole number of SPIR-V words", len(b)), "invalid shader binary %s", path)
	}

	return bytesToBytecode(b), nil
}

func bytesToBytecode(b []byte) []uint32 {
	byteCode := make([]uint32, len(b)/4)
	for i := range byteCode {
		byteCode[i] = binary.LittleEndian.Uint32(b[i*4:])
	}

	return byteCode
}

// CreateShaderModule loads path and wraps it in a shader module.
func CreateShaderModule(device Device, fsys fs.FS, path string) (core1_0.ShaderModule, error) {
	code, err := LoadShaderCode(fsys, path)
	if err != nil {
		return core1_0.ShaderModule{}, err
	}

	module, err := device.CreateShaderModule(core1_0.ShaderModuleCreateInfo{
		Code: code,
	})
	if err != nil {
		return core1_0.ShaderModule{}, platformError(err, "failed to create shader module from %s", path)
	}

	return module, nil
}
