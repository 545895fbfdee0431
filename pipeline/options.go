package pipeline

import (
	"github.com/gogpu/gputypes"

	"github.com/mkualquiera/webengine"
)

// Option configures a RenderSystem.
type Option func(*config)

type config struct {
	label      string
	format     gputypes.TextureFormat
	clearColor webengine.EngineColor
}

func defaultConfig() config {
	return config{
		label:      "engine",
		format:     gputypes.TextureFormatBGRA8Unorm,
		clearColor: webengine.Black,
	}
}

// WithLabel sets the label prefix used for all GPU objects the render
// system creates. Labels show up in validation layers and captures.
func WithLabel(label string) Option {
	return func(c *config) {
		if label != "" {
			c.label = label
		}
	}
}

// WithFormat sets the color target format. The default is BGRA8Unorm,
// the common swapchain format.
func WithFormat(format gputypes.TextureFormat) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithClearColor sets the color used by Drawer.Clear when no explicit
// color is given. The default is opaque black.
func WithClearColor(clear webengine.EngineColor) Option {
	return func(c *config) {
		c.clearColor = clear
	}
}
