package model

import (
	"encoding/json"
	"strings"
)

// LoadState represents the lifecycle state of a unit within a loader context.
type LoadState int

const (
	// StateUnloaded means the unit has not been requested.
	StateUnloaded LoadState = iota

	// StateLoading means a download is in flight for the unit.
	StateLoading

	// StateLoaded means the unit is in the cache and served without any
	// network access.
	StateLoaded

	// StateFailed means the most recent attempt series ended in a terminal
	// failure. The failure is not cached: a new request for the unit clears
	// this state and starts a fresh attempt series.
	StateFailed
)

// String returns the lowercase state name.
func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unloaded"
	}
}

// Unit represents one downloadable, cacheable artifact.
//
// A Unit is owned exclusively by the cache once loaded and shared by
// reference with every caller awaiting it, so it must be treated as
// immutable after DecodeUnitPayload returns it.
type Unit struct {
	// ID is the stable unit identifier from the manifest.
	ID string

	// Data is the raw downloaded payload.
	Data []byte

	// State is the unit's lifecycle state. Units handed out by the cache
	// are always StateLoaded.
	State LoadState

	// Objects maps logical asset names to the decoded objects contained in
	// an ordinary container unit. Nil for scene containers and for payloads
	// the decoder does not understand.
	Objects map[string]any

	// ScenePaths lists the scene paths declared by a scene-container unit,
	// in declaration order. Empty for ordinary containers.
	ScenePaths []string
}

// unitPayload is the wire shape of a decodable unit payload.
type unitPayload struct {
	Objects    map[string]any `json:"objects"`
	ScenePaths []string       `json:"scene_paths"`
}

// DecodeUnitPayload builds a loaded Unit from a raw downloaded payload.
//
// Payloads that decode as JSON expose their named objects and scene paths
// for extraction. Payloads in any other format are kept as opaque bytes;
// extraction from such a unit reports ErrAssetNotFound.
func DecodeUnitPayload(id string, data []byte) *Unit {
	u := &Unit{
		ID:    id,
		Data:  data,
		State: StateLoaded,
	}

	var payload unitPayload
	if err := json.Unmarshal(data, &payload); err == nil {
		u.Objects = payload.Objects
		u.ScenePaths = payload.ScenePaths
	}

	return u
}

// Object returns the named object contained in the unit, if present.
func (u *Unit) Object(name string) (any, bool) {
	obj, ok := u.Objects[name]
	return obj, ok
}

// IsSceneContainer reports whether the unit represents an activatable scene
// rather than a container of discrete named objects. Scene containers
// declare scene paths instead of an object table.
func (u *Unit) IsSceneContainer() bool {
	return len(u.ScenePaths) > 0
}

// ScenePath returns the declared scene path matching name, compared
// case-insensitively. The generic object model cannot represent a scene, so
// extraction from a scene container goes through this lookup instead.
func (u *Unit) ScenePath(name string) (string, bool) {
	for _, p := range u.ScenePaths {
		if strings.EqualFold(p, name) {
			return p, true
		}
	}
	return "", false
}

// SceneHandle is returned when an asset is extracted from a scene-container
// unit. It exists solely because the generic object model used for ordinary
// containers cannot represent an activatable scene directly.
type SceneHandle struct {
	// UnitID is the id of the scene-container unit.
	UnitID string

	// Path is the matched scene path, in its declared casing.
	Path string
}
