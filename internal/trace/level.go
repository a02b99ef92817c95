package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff Level = iota
	// LevelError streams nothing; rings keep everything for a failure dump.
	LevelError
	LevelPhase
	LevelDetail
	LevelDebug
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel is case-insensitive; empty means off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// deepest is the finest scope each level writes out.
var deepest = map[Level]Scope{
	LevelPhase:  ScopePass,
	LevelDetail: ScopeBatch,
	LevelDebug:  ScopeStatement,
}

// ShouldEmit reports whether events of scope are written at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	limit, ok := deepest[l]
	return ok && scope <= limit
}

// records is ShouldEmit widened for in-memory rings at LevelError.
func (l Level) records(scope Scope) bool {
	return l == LevelError || l.ShouldEmit(scope)
}

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1
	ScopePass
	ScopeBatch
	ScopeStatement
)

var scopeNames = map[Scope]string{
	ScopeDriver:    "driver",
	ScopePass:      "pass",
	ScopeBatch:     "batch",
	ScopeStatement: "statement",
}

func (s Scope) String() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	return "unknown"
}
