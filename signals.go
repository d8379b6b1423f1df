package mapper

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for mapper events.
var (
	SignalMapCreated  = capitan.NewSignal("mapper.map.created", "Type map registered with default rules")
	SignalMapReversed = capitan.NewSignal("mapper.map.reversed", "Reverse type map registered")
	SignalMapCompiled = capitan.NewSignal("mapper.map.compiled", "Type map rules compiled")
	SignalMapComplete = capitan.NewSignal("mapper.map.complete", "Map operation finished")
)

// Keys for typed event data.
var (
	KeyMap             = capitan.NewStringKey("map")
	KeyReverseOf       = capitan.NewStringKey("reverse_of")
	KeySourceType      = capitan.NewStringKey("source_type")
	KeyDestinationType = capitan.NewStringKey("destination_type")
	KeyRuleCount       = capitan.NewIntKey("rule_count")
	KeyDuration        = capitan.NewDurationKey("duration")
	KeyError           = capitan.NewErrorKey("error")
)

// emitMapCreated emits an event when a map is registered.
func emitMapCreated(ctx context.Context, id, source, destination string, rules int) {
	capitan.Emit(ctx, SignalMapCreated,
		KeyMap.Field(id),
		KeySourceType.Field(source),
		KeyDestinationType.Field(destination),
		KeyRuleCount.Field(rules),
	)
}

// emitMapReversed emits an event when a reverse map is derived.
func emitMapReversed(ctx context.Context, id, reverseOf string, rules int) {
	capitan.Emit(ctx, SignalMapReversed,
		KeyMap.Field(id),
		KeyReverseOf.Field(reverseOf),
		KeyRuleCount.Field(rules),
	)
}

// emitMapCompiled emits an event when a map compiles, or fails to.
func emitMapCompiled(ctx context.Context, id string, rules int, err error) {
	fields := []capitan.Field{
		KeyMap.Field(id),
		KeyRuleCount.Field(rules),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalMapCompiled, fields...)
	} else {
		capitan.Emit(ctx, SignalMapCompiled, fields...)
	}
}

// emitMapComplete emits an event when a map operation finishes.
func emitMapComplete(ctx context.Context, id string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyMap.Field(id),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalMapComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalMapComplete, fields...)
	}
}
