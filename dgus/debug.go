package dgus

import "fmt"

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TraceEvent records one inbound dispatch for post-mortem output.
type TraceEvent struct {
	Addr   Addr
	Value  uint16 // first payload word, selector in the low byte
	Result TraceResult
}

// TraceResult classifies how a dispatch ended.
type TraceResult uint8

const (
	TraceHandled    TraceResult = 1
	TraceUnknown    TraceResult = 2 // no VP at the address
	TraceNoSelector TraceResult = 3 // selector not registered
	TraceIgnored    TraceResult = 4
	TraceRejected   TraceResult = 5 // guard failed
	TraceFailed     TraceResult = 6
)

func (r TraceResult) String() string {
	switch r {
	case TraceHandled:
		return "HANDLED"
	case TraceUnknown:
		return "UNKNOWN_VP"
	case TraceNoSelector:
		return "NO_SELECTOR"
	case TraceIgnored:
		return "IGNORED"
	case TraceRejected:
		return "REJECTED"
	case TraceFailed:
		return "FAILED"
	}
	return "NONE"
}

const TraceRingSize = 32

var (
	debugPrintln DebugWriter = func(s string) {}

	// debugEnabled controls whether debug output is active
	debugEnabled bool

	traceRing     [TraceRingSize]TraceEvent
	traceRingHead uint8
)

// SetDebugWriter redirects debug output (stderr, log file, console).
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the configured writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// recordTrace captures a dispatch in the ring buffer. Always on.
func recordTrace(addr Addr, data []byte, result TraceResult) {
	var value uint16
	if len(data) >= 2 {
		value = uint16(data[0])<<8 | uint16(data[1])
	}
	idx := traceRingHead
	traceRing[idx] = TraceEvent{Addr: addr, Value: value, Result: result}
	traceRingHead = (idx + 1) % TraceRingSize
}

// Trace returns the recorded dispatches, oldest first.
func Trace() []TraceEvent {
	events := make([]TraceEvent, 0, TraceRingSize)
	start := traceRingHead
	for i := uint8(0); i < TraceRingSize; i++ {
		evt := traceRing[(start+i)%TraceRingSize]
		if evt.Result == 0 {
			continue
		}
		events = append(events, evt)
	}
	return events
}

// DumpTrace outputs the trace ring through the debug writer, enabled or not.
func DumpTrace() {
	if debugPrintln == nil {
		return
	}
	debugPrintln("[TRACE] === Dispatch Trace ===")
	for _, evt := range Trace() {
		debugPrintln(fmt.Sprintf("[TRACE] %s vp=%s value=0x%04X", evt.Result, evt.Addr, evt.Value))
	}
	debugPrintln("[TRACE] === End Trace ===")
}

// ClearTrace clears the trace buffer
func ClearTrace() {
	for i := range traceRing {
		traceRing[i] = TraceEvent{}
	}
	traceRingHead = 0
}
