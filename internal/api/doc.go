// Package api is the HTTP client for the contract API. Client implements
// contracts.Catalog over the JSON endpoints under /contracts; CachedCatalog keeps
// reference data (years, regions, statistics) in the on-disk cache.
package api
