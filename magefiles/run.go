//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Converts a scene into a .ceasset next to it.
func (Run) Convert(scene string) error {
	mg.Deps(Build.Converter)
	fmt.Printf("Converting %s...\n", scene)
	if _, err := executeCmd("bin/animaconv", withArgs("convert", scene), withStream()); err != nil {
		return err
	}
	return nil
}

// Prints the contents of a converted asset.
func (Run) Inspect(asset string) error {
	mg.Deps(Build.Converter)
	if _, err := executeCmd("bin/animaconv", withArgs("inspect", asset), withStream()); err != nil {
		return err
	}
	return nil
}
