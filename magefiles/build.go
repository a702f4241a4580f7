//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles the browser entry into web/resonance.wasm and copies wasm_exec.js next to it.
func (Build) Wasm() error {
	env := map[string]string{"GOOS": "js", "GOARCH": "wasm"}
	if _, err := executeCmd("go", withArgs("build", "-o", "web/resonance.wasm", "./cmd/web"), withEnv(env), withStream()); err != nil {
		return err
	}
	root, err := executeCmd("go", withArgs("env", "GOROOT"))
	if err != nil {
		return err
	}
	return copyFile(trimNewline(root)+"/lib/wasm/wasm_exec.js", "web/wasm_exec.js")
}

// Builds the headless trace runner.
func (Build) Headless() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/resonance", "."), withStream())
	return err
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
