/*
Package domain contains the core domain models for the Espalier engine.

It defines the fundamental entities of a configuration flow: the ConfigEntry
(a committed configuration record), the Result envelope (the only values a
flow step may produce), and the provenance sources. This package is kept pure
and free of I/O or persistence concerns, following Hexagonal Architecture
principles.

# Key Entities

  - ConfigEntry: An immutable record of a successfully completed flow.
  - Result: The tagged envelope a step returns (form, create_entry, abort).
  - LifecycleHooks: Observability callbacks fired by the manager.
*/
package domain
