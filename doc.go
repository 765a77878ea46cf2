// Package matchvault is the Composition Root for the matchvault application.
//
// It connects the core snippet domain (pkg/core) with the filesystem
// adapter (pkg/adapters/fs) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// matchvault treats a directory tree of espanso match files as a small
// database of text-expansion snippets. Each YAML document owns an
// ordered list of records under its `matches:` key, and a snippet is
// addressed by its document path plus its ordinal within that list.
// matchvault edits those documents in place while preserving everything
// it does not understand: unknown record fields, unknown top-level
// keys, and the relative order of both survive every rewrite.
//
// Features:
//
//   - **Stable addressing**: `path::index` identities with percent-encoding tolerance.
//   - **Round-trip safety**: unrecognized YAML content passes through edits untouched.
//   - **Atomic writes**: every document rewrite goes through a rename, never a partial file.
//   - **Batch discipline**: multi-snippet moves process ordinals high-to-low so earlier
//     removals never shift later targets.
//   - **Change feed**: optional recursive watch over the store with debounced events.
//
// Usage:
//
//	// Open a store with functional options
//	svc, err := matchvault.Open("./match",
//		matchvault.WithAutoInit(true),
//		matchvault.WithLogger(logger),
//	)
//
//	// Add a snippet to the default collection
//	err = svc.Create(ctx, "", matchvault.Draft{Trigger: ":sig", Body: "Regards,\nAna"})
package matchvault
