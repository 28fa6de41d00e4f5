// Package pkg provides the libraries behind the initializr service.
//
// # Overview
//
// Initializr keeps a catalog of project options and turns project requests
// into resolved project descriptions. The pkg directory is organized into
// four areas:
//
//  1. Domain: [version], [metadata], [project]
//  2. Refresh: [feed], [refresh]
//  3. Infrastructure: [cache], [httputil], [integrations], [observability], [errors], [config]
//  4. Surfaces: [server], [render]
//
// # Architecture
//
// The catalog is built once from configuration and then kept current from a
// release feed:
//
//	config file ──▶ metadata.Builder ──▶ Catalog
//	                                        │
//	release feed ──▶ feed.Read ──▶ refresh.Strategy (clone, replace, recompute ranges)
//	                                        │
//	                                 refresh.Provider (atomic snapshot)
//	                                        │
//	project.Request ──▶ project.Converter (validate, choose platform, resolve, build)
//	                                        │
//	                                 project.Descriptor
//
// Readers always see a complete catalog: refreshes build a new one and
// publish it with a single pointer swap. A failed refresh keeps the
// catalog already served.
//
// # Quick Start
//
//	catalog, err := metadata.FromProperties(props).Build()
//	if err != nil {
//	    return err
//	}
//	provider := refresh.NewProvider(catalog,
//	    refresh.NewStrategy(feed.NewFileSource("releases.json"), nil), nil)
//	provider.Refresh(ctx)
//
//	d, err := project.NewConverter(nil).Convert(ctx, &project.Request{
//	    Type:         "maven-project",
//	    Dependencies: []string{"web"},
//	}, provider.Get())
//
// [version]: github.com/matzehuels/initializr/pkg/version
// [metadata]: github.com/matzehuels/initializr/pkg/metadata
// [project]: github.com/matzehuels/initializr/pkg/project
// [feed]: github.com/matzehuels/initializr/pkg/feed
// [refresh]: github.com/matzehuels/initializr/pkg/refresh
// [cache]: github.com/matzehuels/initializr/pkg/cache
// [httputil]: github.com/matzehuels/initializr/pkg/httputil
// [integrations]: github.com/matzehuels/initializr/pkg/integrations
// [observability]: github.com/matzehuels/initializr/pkg/observability
// [errors]: github.com/matzehuels/initializr/pkg/errors
// [config]: github.com/matzehuels/initializr/pkg/config
// [server]: github.com/matzehuels/initializr/pkg/server
// [render]: github.com/matzehuels/initializr/pkg/render
package pkg
