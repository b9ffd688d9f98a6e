package manifest

import (
	"encoding/json"
	"fmt"

	"assetloader/internal/model"
)

// manifestDTO is the wire shape of the root manifest.
type manifestDTO struct {
	Units map[string][]string `json:"units"`
}

// Decode deserializes a root manifest document into the dependency graph.
//
// Returns an error wrapping model.ErrMalformedManifest if:
//   - The document is not valid JSON
//   - The document declares no units
//   - A declared dependency is not itself a declared unit
func Decode(data []byte) (*model.Manifest, error) {
	var dto manifestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedManifest, err)
	}

	if len(dto.Units) == 0 {
		return nil, fmt.Errorf("%w: no units declared", model.ErrMalformedManifest)
	}

	for id, deps := range dto.Units {
		for _, dep := range deps {
			if _, ok := dto.Units[dep]; !ok {
				return nil, fmt.Errorf("%w: unit %q depends on undeclared unit %q", model.ErrMalformedManifest, id, dep)
			}
		}
	}

	return model.NewManifest(dto.Units), nil
}
