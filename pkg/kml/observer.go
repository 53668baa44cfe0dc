package kml

import (
	"go.uber.org/zap"
)

// EventKind identifies what an Event reports.
type EventKind int

const (
	// EventCreated is emitted when the parser builds an element.
	EventCreated EventKind = iota
	// EventRealized is emitted when a feature builds its renderable.
	EventRealized
	// EventConstructionFailed is emitted once when a feature has every
	// input for its renderable but one of them does not convert.
	EventConstructionFailed
	// EventImageFailed is emitted once when a surface image cannot load
	// its source.
	EventImageFailed
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventRealized:
		return "realized"
	case EventConstructionFailed:
		return "construction-failed"
	case EventImageFailed:
		return "image-failed"
	default:
		return "unknown"
	}
}

// Event describes something that happened to an element.
type Event struct {
	Kind      EventKind
	Tag       string
	FeatureID string
	Sector    Sector
	Href      string
	Err       error
}

// Observer receives events. Observers are called synchronously from the
// parse or render call that produced the event.
type Observer func(Event)

// NopObserver discards every event.
func NopObserver(Event) {}

// ZapObserver logs events to logger. Failures are logged at warn level,
// everything else at debug.
func ZapObserver(logger *zap.Logger) Observer {
	if logger == nil {
		return NopObserver
	}
	return func(ev Event) {
		fields := []zap.Field{
			zap.String("event", ev.Kind.String()),
			zap.String("tag", ev.Tag),
		}
		if ev.FeatureID != "" {
			fields = append(fields, zap.String("id", ev.FeatureID))
		}
		if ev.Href != "" {
			fields = append(fields, zap.String("href", ev.Href))
		}
		if ev.Kind == EventRealized {
			fields = append(fields,
				zap.Float64("south", ev.Sector.South),
				zap.Float64("north", ev.Sector.North),
				zap.Float64("west", ev.Sector.West),
				zap.Float64("east", ev.Sector.East))
		}
		if ev.Err != nil {
			logger.Warn("kml event", append(fields, zap.Error(ev.Err))...)
			return
		}
		logger.Debug("kml event", fields...)
	}
}

// emit sends ev to o, treating nil as NopObserver.
func (o Observer) emit(ev Event) {
	if o != nil {
		o(ev)
	}
}
