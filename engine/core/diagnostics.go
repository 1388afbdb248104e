package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

type DiagnosticKind uint8

const (
	DiagnosticDegeneratePolygon DiagnosticKind = iota
	DiagnosticMissingUVChannel
	DiagnosticUnsupportedUVMapping
	DiagnosticUVIndexOutOfRange
	DiagnosticLayeredTexture
	DiagnosticUnmatchedCluster
	DiagnosticTruncatedInfluences
	DiagnosticUnmatchedTrack
	DIAGNOSTIC_KIND_MAX
)

var diagnosticNames = [DIAGNOSTIC_KIND_MAX]string{
	"degenerate polygon",
	"missing uv channel",
	"unsupported uv mapping",
	"uv index out of range",
	"layered texture",
	"unmatched cluster",
	"truncated influences",
	"unmatched animation track",
}

func (k DiagnosticKind) String() string {
	if k >= DIAGNOSTIC_KIND_MAX {
		return "unknown"
	}
	return diagnosticNames[k]
}

// Diagnostics counts the recoverable problems found while importing a single asset.
// Every reported problem is also logged as a warning.
type Diagnostics struct {
	mu     sync.Mutex
	counts [DIAGNOSTIC_KIND_MAX]int
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

func (d *Diagnostics) Report(kind DiagnosticKind, msg string, args ...interface{}) {
	if d == nil {
		LogWarn(msg, args...)
		return
	}
	d.mu.Lock()
	if kind < DIAGNOSTIC_KIND_MAX {
		d.counts[kind]++
	}
	d.mu.Unlock()
	LogWarn(msg, args...)
}

func (d *Diagnostics) Count(kind DiagnosticKind) int {
	if d == nil || kind >= DIAGNOSTIC_KIND_MAX {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts[kind]
}

func (d *Diagnostics) Total() int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	total := 0
	for _, c := range d.counts {
		total += c
	}
	return total
}

// Summary renders the non-zero counters as "name=count" pairs, sorted by name.
func (d *Diagnostics) Summary() string {
	if d == nil {
		return ""
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	parts := []string{}
	for k, c := range d.counts {
		if c == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%d", DiagnosticKind(k), c))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
