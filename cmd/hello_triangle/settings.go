package main

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	log "github.com/sirupsen/logrus"
)

const (
	defaultWidth  = 800
	defaultHeight = 600
)

// settings are the knobs read from the environment (or a .env file).
type settings struct {
	debug     bool
	width     int
	height    int
	shaderDir string
	logLevel  log.Level
}

func loadSettings(defaultDebug bool) (settings, error) {
	s := settings{
		debug:     defaultDebug,
		width:     defaultWidth,
		height:    defaultHeight,
		shaderDir: env("TRIANGLE_SHADER_DIR", "."),
	}

	if v := env("TRIANGLE_DEBUG", ""); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return s, errors.Wrap(err, "TRIANGLE_DEBUG")
		}
		s.debug = debug
	}

	var err error
	if s.width, err = positiveInt("TRIANGLE_WIDTH", defaultWidth); err != nil {
		return s, err
	}
	if s.height, err = positiveInt("TRIANGLE_HEIGHT", defaultHeight); err != nil {
		return s, err
	}

	s.logLevel, err = log.ParseLevel(env("TRIANGLE_LOG_LEVEL", "info"))
	if err != nil {
		return s, errors.Wrap(err, "TRIANGLE_LOG_LEVEL")
	}

	return s, nil
}

func positiveInt(key string, fallback int) (int, error) {
	v := env(key, "")
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrap(err, key)
	}
	if n <= 0 {
		return 0, errors.Newf("%s must be positive, got %d", key, n)
	}
	return n, nil
}

// env treats an empty value like an unset one.
func env(key, fallback string) string {
	if v := envy.Get(key, ""); v != "" {
		return v
	}
	return fallback
}
