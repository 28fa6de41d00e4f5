// Package project turns a project request into a build descriptor.
//
// Resolution runs in three steps against one catalog snapshot:
//
//  1. [Validate] rejects requests that do not fit the catalog. Checks run
//     in a fixed order and the first failure wins.
//  2. [ResolveDependencies] maps every requested dependency id to concrete
//     coordinates for the chosen platform version.
//  3. [BuildDescriptor] derives every descriptor field from the request,
//     falling back to the catalog defaults.
//
// [Converter] chains the three steps and picks the platform and framework
// versions in between:
//
//	desc, err := project.NewConverter(logger).Convert(ctx, req, provider.Get())
//	if errors.IsInvalidRequest(err) {
//	    // report to the client
//	}
//
// Everything in this package is pure with respect to the catalog, which is
// never modified, so any number of requests may resolve concurrently.
package project
