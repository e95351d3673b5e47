/*
Package ports defines the driven ports (interfaces) of infoboard.

These interfaces decouple the presentation layer from data sources and caches, so the
same view model can run against HTTP, fixtures, or a cached upstream.

# Key Interfaces

  - InfoRepository: Fetches the header/item dataset from the upstream collaborator.
  - HeaderCache: Keeps the last successfully fetched dataset (memory or Redis).
*/
package ports
