/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/spaghettifunk/jackal/engine"
	"github.com/spaghettifunk/jackal/engine/core"
	"github.com/spaghettifunk/jackal/engine/platform"
	"github.com/spaghettifunk/jackal/engine/platform/glfw3"
	"github.com/spaghettifunk/jackal/engine/platform/sdl2"
	"github.com/spaghettifunk/jackal/engine/renderer/opengl"
	"github.com/spaghettifunk/jackal/testbed"
)

func init() {
	// the window and the GL context belong to the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML configuration")
	backend := flag.String("platform", "", "windowing backend, sdl or glfw (overrides the config)")
	debug := flag.Bool("debug", false, "create a debug GL context and track GPU resources")
	flag.Parse()

	config, err := loadConfig(*configPath)
	if err != nil {
		core.LogFatal("configuration: %s", err)
	}
	if *backend != "" {
		config.Platform = *backend
	}
	if *debug {
		config.Debug = true
	}

	var p platform.Platform
	switch config.Platform {
	case engine.PlatformGLFW:
		p = glfw3.New()
	default:
		p = sdl2.New()
	}

	tb := testbed.NewTestGame(config)
	e, err := engine.New(tb.Game, p, opengl.New())
	if err != nil {
		core.LogFatal(err.Error())
	}
	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		core.LogFatal("initialization failed: %s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		e.Interrupt()
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	if runErr != nil {
		core.LogFatal("game loop failed: %s", runErr)
	}
}

// loadConfig reads the optional .env file, then the TOML configuration. A
// missing configuration file falls back to the defaults. JACKAL_PLATFORM and
// JACKAL_LOG_LEVEL override the file.
func loadConfig(path string) (*engine.ApplicationConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	config, err := engine.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogWarn("%s not found, using the default configuration", path)
		config, err = engine.DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("JACKAL_PLATFORM"); v != "" {
		config.Platform = v
	}
	if v := os.Getenv("JACKAL_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	return config, config.Validate()
}
