package loader

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.loadErr
}

func TestLoadAll(t *testing.T) {
	app := fiber.New()
	mgr := NewManager()

	enabled := &stubFeature{name: "matching", enabled: true}
	disabled := &stubFeature{name: "filters", enabled: false}
	mgr.Register(enabled)
	mgr.Register(disabled)

	err := mgr.LoadAll(app)
	assert.NoError(t, err)
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)
}

func TestLoadAll_FailsFast(t *testing.T) {
	app := fiber.New()
	mgr := NewManager()

	failing := &stubFeature{name: "matching", enabled: true, loadErr: fmt.Errorf("boom")}
	after := &stubFeature{name: "filters", enabled: true}
	mgr.Register(failing)
	mgr.Register(after)

	err := mgr.LoadAll(app)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "matching")
	assert.False(t, after.loaded)
}
