//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles every package of the engine.
func (Build) Engine() error {
	if _, err := executeCmd("go", withArgs("build", "./engine/..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Builds the workbench binary into bin/.
func (Build) Workbench() error {
	mg.Deps(Build.Engine)
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/workbench", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs go mod tidy and go vet.
func (Build) Tidy() error {
	return goTidy()
}
