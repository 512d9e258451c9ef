/*
Package ports defines the driven ports (interfaces) of the generation core.

These interfaces decouple the core from its heavy external collaborators:
the geometric pattern constructor, the 3D mesh/drape encoder, the 2D vector
encoder, and the session table.

# Key interfaces

  - PatternBuilder: turns a normalized design specification into a canonical
    pattern document.
  - MeshExporter / VectorExporter: turn a pattern document into concrete
    artifacts inside a session directory.
  - SessionStore: process-wide table of active sessions.
*/
package ports
