package bootstrap

import (
	"github.com/sirupsen/logrus"
)

type release struct {
	name string
	fn   func()
}

// Teardown is a stack of release functions. Each acquisition pushes its
// release as soon as it succeeds; Run pops them all, so resources are
// released in exactly the reverse order they were acquired.
type Teardown struct {
	releases []release
}

func (t *Teardown) Push(name string, fn func()) {
	t.releases = append(t.releases, release{name: name, fn: fn})
}

func (t *Teardown) Len() int {
	return len(t.releases)
}

// Names lists the pending releases in the order Run would call them.
func (t *Teardown) Names() []string {
	names := make([]string, 0, len(t.releases))
	for i := len(t.releases) - 1; i >= 0; i-- {
		names = append(names, t.releases[i].name)
	}
	return names
}

// Run releases everything and leaves the stack empty. It is safe to call
// again.
func (t *Teardown) Run(logger logrus.FieldLogger) {
	for len(t.releases) > 0 {
		last := t.releases[len(t.releases)-1]
		t.releases = t.releases[:len(t.releases)-1]

		if logger != nil {
			logger.WithField("resource", last.name).Debug("destroying")
		}
		last.fn()
	}
}
