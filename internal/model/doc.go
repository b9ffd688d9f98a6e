// Package model defines the core data types for assetloader.
//
// This package contains:
//   - Unit: one downloadable, cacheable artifact with its decoded content
//   - Manifest: the root descriptor mapping unit ids to direct dependencies
//   - LoadState: the lifecycle state of a unit (unloaded/loading/loaded/failed)
//   - SceneHandle: the wrapper returned for scene-container units
//   - Error sentinels shared by all loader packages
//
// # Units
//
// A unit is identified by a stable id and carries both its raw payload and
// the decoded content used for asset extraction:
//
//	unit := model.DecodeUnitPayload("ui-bundle", data)
//	obj, ok := unit.Object("MainMenu")
//
// # Manifest
//
// The manifest enumerates every downloadable unit and its direct
// dependencies. It is immutable once built:
//
//	m := model.NewManifest(map[string][]string{
//	    "A": {"B", "C"},
//	    "B": {},
//	    "C": {},
//	})
//	deps := m.DirectDependencies("A") // ["B", "C"]
//
// # Errors
//
// All failure kinds surfaced by the loader wrap one of the sentinels in this
// package, so callers can classify with errors.Is:
//
//	if errors.Is(err, model.ErrRetriesExhausted) {
//	    // terminal fetch failure
//	}
package model
