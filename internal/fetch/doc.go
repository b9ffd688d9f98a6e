// Package fetch provides the network capabilities the loader depends on.
//
// The loader core never constructs URLs or talks to the network directly; it
// is handed two URL resolvers and a Fetcher at construction time:
//
//   - ManifestURLResolver returns the fetch address of the root manifest
//   - UnitURLResolver returns the fetch address for a unit id
//   - Fetcher fetches an address, honoring context cancellation and
//     reporting fractional progress as bytes arrive
//
// # Basic Usage
//
//	manifestURL, unitURL := fetch.NewBaseResolvers("https://cdn.example.com/content", "manifest.json")
//
//	client := fetch.NewClient("assetloader")
//	data, err := client.Fetch(ctx, url, func(written, total int64) {
//	    fmt.Printf("%d / %d bytes\n", written, total)
//	})
//
// Per-attempt timeouts are applied by the caller through the context, so the
// Client itself carries no request timeout.
package fetch
