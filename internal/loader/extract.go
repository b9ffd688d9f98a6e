package loader

import (
	"fmt"

	"assetloader/internal/model"
)

// Extract returns the named object of type T from a loaded unit.
//
// For an ordinary container the name is looked up in the unit's object
// table; a missing name or a type mismatch fails with model.ErrAssetNotFound.
//
// A scene-container unit has no object table: the name is matched
// case-insensitively against the unit's declared scene paths and the result
// is a model.SceneHandle, so callers extracting from a scene container must
// request T = model.SceneHandle.
func Extract[T any](u *model.Unit, name string) (T, error) {
	var zero T

	if u == nil || u.State != model.StateLoaded {
		return zero, fmt.Errorf("unit is not loaded: %w", model.ErrInvalidArgument)
	}

	if u.IsSceneContainer() {
		path, ok := u.ScenePath(name)
		if !ok {
			return zero, fmt.Errorf("scene %q not in unit %q: %w", name, u.ID, model.ErrAssetNotFound)
		}
		handle := model.SceneHandle{UnitID: u.ID, Path: path}
		v, ok := any(handle).(T)
		if !ok {
			return zero, fmt.Errorf("unit %q is a scene container, request a model.SceneHandle: %w", u.ID, model.ErrAssetNotFound)
		}
		return v, nil
	}

	obj, ok := u.Object(name)
	if !ok {
		return zero, fmt.Errorf("object %q not in unit %q: %w", name, u.ID, model.ErrAssetNotFound)
	}

	v, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("object %q in unit %q has type %T: %w", name, u.ID, obj, model.ErrAssetNotFound)
	}
	return v, nil
}
