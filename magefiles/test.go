//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs the tests that need no window or GL context.
func (Test) All() error {
	if _, err := executeCmd("go", withArgs("test", "./engine/core/...", "./engine/containers/...", "./engine/math/...",
		"./engine/renderer", "./engine/assets/...", "./engine"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the same tests with the race detector, the asset watcher is the only concurrent code.
func (Test) Race() error {
	mg.Deps(Test.All)
	if _, err := executeCmd("go", withArgs("test", "-race", "./engine/assets/...", "./engine"), withStream()); err != nil {
		return err
	}
	return nil
}
