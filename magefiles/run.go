//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the headless renderer for 120 frames and writes the call trace to trace.log.
func (Run) Trace() error {
	fmt.Println("Run headless trace...")
	if _, err := executeCmd("go", withArgs("run", ".", "-frames", "120", "-out", "trace.log"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the test suite.
func Test() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}
