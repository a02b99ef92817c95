package trace

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Kind is what an event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	}
	return "unknown"
}

// marker prefixes the event name in text output.
func (k Kind) marker() string {
	switch k {
	case KindSpanBegin:
		return "┌ "
	case KindSpanEnd:
		return "└ "
	}
	return "· "
}

type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Name     string // "run", "parse", "batch", "stmt:3"
	Detail   string
	// Elapsed is set on span ends only.
	Elapsed time.Duration
	Extra   map[string]string
}

// Format is the encoding of written events.
type Format uint8

const (
	FormatAuto Format = iota
	FormatText
	FormatNDJSON
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// FormatEvent renders one event as a single newline-terminated line.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendNDJSON(nil, ev)
	}
	return appendText(nil, ev)
}

type jsonEvent struct {
	Time      string            `json:"time"`
	Seq       uint64            `json:"seq"`
	Kind      string            `json:"kind"`
	Scope     string            `json:"scope"`
	SpanID    uint64            `json:"span_id,omitempty"`
	ParentID  uint64            `json:"parent_id,omitempty"`
	Name      string            `json:"name"`
	Detail    string            `json:"detail,omitempty"`
	ElapsedUS int64             `json:"elapsed_us,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

func appendNDJSON(buf []byte, ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:      ev.Time.Format(time.RFC3339Nano),
		Seq:       ev.Seq,
		Kind:      ev.Kind.String(),
		Scope:     ev.Scope.String(),
		SpanID:    ev.SpanID,
		ParentID:  ev.ParentID,
		Name:      ev.Name,
		Detail:    ev.Detail,
		ElapsedUS: ev.Elapsed.Microseconds(),
		Extra:     ev.Extra,
	})
	if err != nil {
		return fmt.Appendf(buf, "{\"seq\":%d,\"error\":%q}\n", ev.Seq, err.Error())
	}
	buf = append(buf, data...)
	return append(buf, '\n')
}

// appendText writes `#seq scope  ┌ name: detail key=value +elapsed`,
// indented by scope depth.
func appendText(buf []byte, ev *Event) []byte {
	buf = fmt.Appendf(buf, "#%05d %-9s ", ev.Seq, ev.Scope)
	if ev.Scope > ScopeDriver {
		buf = append(buf, strings.Repeat("  ", int(ev.Scope-ScopeDriver))...)
	}
	buf = append(buf, ev.Kind.marker()...)
	buf = append(buf, ev.Name...)
	if ev.Detail != "" {
		buf = append(buf, ": "...)
		buf = append(buf, ev.Detail...)
	}
	// ключи сортируем, чтобы вывод был детерминированным
	keys := make([]string, 0, len(ev.Extra))
	for k := range ev.Extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		buf = append(buf, ' ')
		buf = append(buf, k...)
		buf = append(buf, '=')
		if v := ev.Extra[k]; strings.ContainsAny(v, " \t\"=") {
			buf = strconv.AppendQuote(buf, v)
		} else {
			buf = append(buf, v...)
		}
	}
	if ev.Kind == KindSpanEnd {
		buf = append(buf, " +"...)
		buf = append(buf, ev.Elapsed.String()...)
	}
	return append(buf, '\n')
}
