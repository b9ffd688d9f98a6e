// Package manifest decodes the root manifest into the dependency graph.
//
// The manifest is a JSON document mapping each unit id to its ordered list
// of direct dependency ids:
//
//	{
//	  "units": {
//	    "levels":   ["textures", "audio"],
//	    "textures": ["shared"],
//	    "audio":    [],
//	    "shared":   []
//	  }
//	}
//
// Decode fails with model.ErrMalformedManifest when the document cannot be
// parsed, declares no units, or references a dependency that is not itself
// declared as a unit.
package manifest
