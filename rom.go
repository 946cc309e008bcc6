package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/massung/chip-8/chip8"
	"github.com/pkg/errors"
)

/// ReadProgram returns the program image in a file. Assembly source
/// (.c8s or .asm) is assembled first.
///
func ReadProgram(file string) ([]byte, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "reading rom")
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".c8s", ".asm":
		asm, err := chip8.Assemble(data)
		if err != nil {
			return nil, errors.Wrapf(err, "assembling %s", filepath.Base(file))
		}

		return asm.ROM, nil
	}

	return data, nil
}
