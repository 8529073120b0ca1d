package log

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/TheBitDrifter/depot"
)

// Loggable is the read-only surface these helpers need. depot.Storage
// satisfies it.
type Loggable interface {
	Components() []depot.ComponentInfo
	Entities() []depot.EntityID
	EntityName(id depot.EntityID) (string, error)
	EntityComponents(id depot.EntityID) ([]depot.ComponentInfo, error)
}

func loadComponentIntoArrayLogger(component depot.ComponentInfo, arrayLogger *zerolog.Array) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Uint32("component_slot", uint32(component.Slot))
	dictLogger = dictLogger.Str("component_name", component.Name)
	return arrayLogger.Dict(dictLogger)
}

func loadComponentsToEvent(zeroLoggerEvent *zerolog.Event, components []depot.ComponentInfo) *zerolog.Event {
	sort.Slice(components, func(i, j int) bool {
		return components[i].Slot < components[j].Slot
	})
	zeroLoggerEvent.Int("total_components", len(components))
	arrayLogger := zerolog.Arr()
	for _, component := range components {
		arrayLogger = loadComponentIntoArrayLogger(component, arrayLogger)
	}
	return zeroLoggerEvent.Array("components", arrayLogger)
}

// Components logs every component type registered with the target.
func Components(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	loadComponentsToEvent(zeroLoggerEvent, target.Components()).Send()
}

// Entity logs an entity's name and the components it holds.
func Entity(logger *zerolog.Logger, target Loggable, id depot.EntityID, level zerolog.Level) error {
	name, err := target.EntityName(id)
	if err != nil {
		return err
	}
	components, err := target.EntityComponents(id)
	if err != nil {
		return err
	}
	zeroLoggerEvent := logger.WithLevel(level).
		Uint64("entity_id", uint64(id)).
		Str("entity_name", name)
	loadComponentsToEvent(zeroLoggerEvent, components).Send()
	return nil
}

// Active logs the ids of all live entities.
func Active(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	ids := target.Entities()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	arrayLogger := zerolog.Arr()
	for _, id := range ids {
		arrayLogger = arrayLogger.Uint64(uint64(id))
	}
	logger.WithLevel(level).
		Int("total_entities", len(ids)).
		Array("entities", arrayLogger).
		Msg("active entities")
}

// EntityMask logs the entity's component mask as a bit string, highest set
// slot first.
func EntityMask(logger *zerolog.Logger, target Loggable, id depot.EntityID, level zerolog.Level) error {
	components, err := target.EntityComponents(id)
	if err != nil {
		return err
	}
	logger.WithLevel(level).
		Uint64("entity_id", uint64(id)).
		Str("mask", MaskString(components)).
		Send()
	return nil
}

// MaskString renders the slots held by an entity as a binary string with
// leading zeros trimmed. An empty mask renders as "0".
func MaskString(components []depot.ComponentInfo) string {
	if len(components) == 0 {
		return "0"
	}
	held := make(map[depot.Slot]bool, len(components))
	var highest depot.Slot
	for _, c := range components {
		held[c.Slot] = true
		highest = max(highest, c.Slot)
	}
	var sb strings.Builder
	for slot := int(highest); slot >= 0; slot-- {
		if held[depot.Slot(slot)] {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
