package contact

import (
	"sync"

	"github.com/goliatone/go-folio/pkg/submit"
)

// controllers keeps one submit.Controller per form instance while it is in
// use, so concurrent posts for the same _form_id share the pending guard.
type controllers struct {
	mu      sync.Mutex
	sender  submit.Sender
	options []submit.ControllerOption
	byForm  map[string]*controllerRef
}

type controllerRef struct {
	controller *submit.Controller
	users      int
}

func newControllers(sender submit.Sender, options ...submit.ControllerOption) *controllers {
	return &controllers{sender: sender, options: options, byForm: make(map[string]*controllerRef)}
}

// acquire returns the controller for formID and a release func that drops it
// once no request holds it.
func (c *controllers) acquire(formID string) (*submit.Controller, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ref, ok := c.byForm[formID]
	if !ok {
		ref = &controllerRef{controller: submit.NewController(c.sender, c.options...)}
		c.byForm[formID] = ref
	}
	ref.users++
	return ref.controller, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		ref.users--
		if ref.users == 0 && c.byForm[formID] == ref {
			delete(c.byForm, formID)
		}
	}
}

func (c *controllers) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byForm)
}
