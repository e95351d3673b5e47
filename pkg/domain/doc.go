/*
Package domain contains the core domain models of infoboard.

It defines the header/item dataset returned by the upstream data collaborator and the
errors shared across layers. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - HeaderInfo: The header of the dataset (title, description, timestamp) plus its items.
  - ItemInfo: A single entry of the dataset.
  - APIError: A failure reported by the upstream endpoint itself.
*/
package domain
