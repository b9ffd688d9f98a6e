package fetch

import "strings"

// ManifestURLResolver returns the fetch address of the root manifest.
// Supplied by the caller; the loader core owns no URL construction strategy.
type ManifestURLResolver func() (string, error)

// UnitURLResolver returns the fetch address for a unit id.
type UnitURLResolver func(unitID string) (string, error)

// NewBaseResolvers builds the two resolvers for the common layout where the
// manifest and every unit live under a single content base URL:
//
//	base/manifestPath  — the root manifest
//	base/<unitID>      — each unit
func NewBaseResolvers(base, manifestPath string) (ManifestURLResolver, UnitURLResolver) {
	base = strings.TrimRight(base, "/")

	manifest := func() (string, error) {
		return base + "/" + manifestPath, nil
	}
	unit := func(unitID string) (string, error) {
		return base + "/" + unitID, nil
	}
	return manifest, unit
}
