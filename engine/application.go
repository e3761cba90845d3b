package engine

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/jackal/engine/core"
	"github.com/spaghettifunk/jackal/engine/platform"
)

const (
	PlatformSDL  = "sdl"
	PlatformGLFW = "glfw"
)

type ApplicationConfig struct {
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`
	// Window starting position, ignored when both are zero.
	StartPosX int32 `toml:"start_pos_x"`
	StartPosY int32 `toml:"start_pos_y"`
	// Window starting size.
	StartWidth  int32 `toml:"start_width"`
	StartHeight int32 `toml:"start_height"`
	Resizable   bool  `toml:"resizable"`
	Borderless  bool  `toml:"borderless"`

	TicksPerSecond int `toml:"ticks_per_second"`
	// 0 runs uncapped.
	FrameRateCap uint32 `toml:"frame_rate_cap"`
	// "disabled", "enabled" or "adaptive".
	VSync string `toml:"vsync"`
	// 0 lets a frame drain every tick owed.
	MaxTicksPerFrame int `toml:"max_ticks_per_frame"`
	// "preserve" or "reset".
	RateChangePolicy string `toml:"rate_change_policy"`

	// Debug creates a debug GL context and tracks live GPU resources.
	Debug    bool   `toml:"debug"`
	LogLevel string `toml:"log_level"`

	// AssetsDir is watched for changes; empty disables the asset manager.
	AssetsDir    string `toml:"assets_dir"`
	FlipTextures bool   `toml:"flip_textures"`

	// "sdl" or "glfw".
	Platform string `toml:"platform"`
}

func DefaultConfig() *ApplicationConfig {
	window := platform.DefaultWindowSettings()
	return &ApplicationConfig{
		Name:             window.Title,
		StartWidth:       window.Width,
		StartHeight:      window.Height,
		Resizable:        true,
		TicksPerSecond:   core.DefaultTicksPerSecond,
		FrameRateCap:     core.DefaultFrameRateCap,
		VSync:            "enabled",
		RateChangePolicy: "preserve",
		LogLevel:         "info",
		AssetsDir:        "assets",
		FlipTextures:     true,
		Platform:         PlatformSDL,
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*ApplicationConfig, error) {
	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidConfiguration, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.TicksPerSecond <= 0 {
		return fmt.Errorf("%w: ticks_per_second must be positive, got %d", core.ErrInvalidConfiguration, c.TicksPerSecond)
	}
	if c.MaxTicksPerFrame < 0 {
		return fmt.Errorf("%w: max_ticks_per_frame must not be negative", core.ErrInvalidConfiguration)
	}
	if err := c.WindowSettings().Validate(); err != nil {
		return err
	}
	if _, err := core.ParseVSyncMode(c.VSync); err != nil {
		return err
	}
	if _, err := ParseRateChangePolicy(c.RateChangePolicy); err != nil {
		return err
	}
	switch c.Platform {
	case PlatformSDL, PlatformGLFW:
	default:
		return fmt.Errorf("%w: unknown platform %q", core.ErrInvalidConfiguration, c.Platform)
	}
	return nil
}

func (c *ApplicationConfig) WindowSettings() platform.WindowSettings {
	ws := platform.WindowSettings{
		Title:  c.Name,
		Width:  c.StartWidth,
		Height: c.StartHeight,
	}
	if c.Resizable {
		ws.Flags |= platform.WindowResizable
	}
	if c.Borderless {
		ws.Flags |= platform.WindowBorderless
	}
	return ws
}

func ParseRateChangePolicy(s string) (core.RateChangePolicy, error) {
	switch strings.ToLower(s) {
	case "preserve", "":
		return core.PreserveDebt, nil
	case "reset":
		return core.ResetDebt, nil
	}
	return core.PreserveDebt, fmt.Errorf("%w: unknown rate change policy %q", core.ErrInvalidConfiguration, s)
}
