// Package metadata models the catalog a project request is resolved against.
//
// A [Catalog] aggregates capabilities: free-form text values (group id,
// name, ...), single-select lists (languages, packagings, platform versions,
// framework versions) and dependency capabilities grouping [Dependency]
// entries with their compatibility ranges.
//
// Catalogs are assembled by a [Builder] from [Properties] and override
// documents:
//
//	props, err := metadata.LoadProperties("initializr.toml")
//	if err != nil {
//	    return err
//	}
//	catalog, err := metadata.FromProperties(props).Build()
//
// Once built, a catalog is treated as an immutable snapshot. Changing the
// version axes goes through [Catalog.Clone] followed by
// [Catalog.UpdatePlatformVersions] and [Catalog.UpdateFrameworkVersions] on
// the copy.
//
// The optional framework axis lists framework versions, each bound to the
// platform version it runs on. It is enabled by [Env.FrameworkAxis] when the
// catalog is created and is used to pick a platform version for requests
// that only name a framework version.
package metadata
