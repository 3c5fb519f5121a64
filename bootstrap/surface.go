package bootstrap

// CreateSurface binds the window to the instance. It has to run before any
// present-support query.
func CreateSurface(instance Instance, window Window) (Surface, error) {
	surface, err := instance.CreateSurface(window)
	if err != nil {
		return nil, platformError(err, "failed to create window surface")
	}
	return surface, nil
}
