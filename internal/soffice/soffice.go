// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package soffice locates and invokes the LibreOffice executable in
// headless mode. Location is probed from a platform-specific candidate
// list; invocation is a synchronous child process with no timeout, so a
// hung converter blocks the caller.
package soffice

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// NotFoundError reports that no converter candidate resolved to an
// executable. Candidates lists every location probed, in order.
type NotFoundError struct {
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no libreoffice executable found; tried: %s",
		strings.Join(e.Candidates, ", "))
}

// prober abstracts filesystem and PATH lookups for testing.
type prober interface {
	LookPath(file string) (string, error)
	StatExecutable(path string) error
}

// osProber is the production prober backed by os and os/exec.
type osProber struct{}

func (osProber) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osProber) StatExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	// Mode bits carry no execute permission on Windows.
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%s is not executable", path)
	}
	return nil
}

var defaultProber prober = osProber{}

// candidates returns the converter locations probed on goos, in order.
func candidates(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			`C:\Program Files\LibreOffice\program\soffice.exe`,
			`C:\Program Files (x86)\LibreOffice\program\soffice.exe`,
			"soffice.exe",
			"soffice",
		}
	case "darwin":
		return []string{
			"/Applications/LibreOffice.app/Contents/MacOS/soffice",
			"soffice",
		}
	default:
		return []string{
			"soffice",
			"libreoffice",
			"/usr/bin/soffice",
			"/usr/bin/libreoffice",
			"/opt/libreoffice/program/soffice",
		}
	}
}

// Locate probes the platform candidate list and returns the first location
// that resolves to an executable. It returns *NotFoundError when none do.
func Locate() (string, error) {
	return locate(defaultProber, runtime.GOOS)
}

func locate(p prober, goos string) (string, error) {
	cands := candidates(goos)
	for _, c := range cands {
		if validate(p, c) == nil {
			return c, nil
		}
	}
	return "", &NotFoundError{Candidates: cands}
}

// Validate checks that location names a runnable converter: locations
// containing a path separator must exist and be executable, bare command
// names must resolve on PATH.
func Validate(location string) error {
	return validate(defaultProber, location)
}

func validate(p prober, location string) error {
	if strings.ContainsAny(location, `/\`) {
		if err := p.StatExecutable(location); err != nil {
			return fmt.Errorf("converter %s: %w", location, err)
		}
		return nil
	}
	if _, err := p.LookPath(location); err != nil {
		return fmt.Errorf("converter %s: %w", location, err)
	}
	return nil
}
