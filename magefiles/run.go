//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the workbench with config.toml.
func (Run) Workbench() error {
	fmt.Println("Run workbench...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "config.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the workbench on the GLFW platform with debug output.
func (Run) Debug() error {
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "config.toml", "-platform", "glfw", "-debug"), withStream()); err != nil {
		return err
	}
	return nil
}
