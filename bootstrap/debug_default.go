//go:build !release

package bootstrap

const debugDefault = true
