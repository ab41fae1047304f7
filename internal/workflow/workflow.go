// Package workflow orchestrates the two daily processes as state graphs:
// the document control lifecycle (process A) and credentialing (process B).
package workflow

import (
	"fmt"
	"slices"
)

// Process selects which workflows a run executes.
type Process string

const (
	ProcessAll           Process = "all"
	ProcessDocuments     Process = "documents"
	ProcessCredentialing Process = "credentialing"
)

var processes = []Process{ProcessAll, ProcessDocuments, ProcessCredentialing}

// ParseProcess validates a process selection. An empty value selects all.
func ParseProcess(s string) (Process, error) {
	if s == "" {
		return ProcessAll, nil
	}
	p := Process(s)
	if !slices.Contains(processes, p) {
		return "", fmt.Errorf("unknown process %q: want one of %v", s, processes)
	}
	return p, nil
}

// Documents reports whether the lifecycle workflow runs.
func (p Process) Documents() bool {
	return p == ProcessAll || p == ProcessDocuments
}

// Credentialing reports whether the credentialing workflow runs.
func (p Process) Credentialing() bool {
	return p == ProcessAll || p == ProcessCredentialing
}
