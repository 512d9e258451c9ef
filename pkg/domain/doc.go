/*
Package domain holds the core value types shared across the service:
design specifications, canonical pattern documents, body measurements,
sessions and the error taxonomy.

These types carry no behavior beyond construction, copying and
(de)serialization. All logic lives in the packages that operate on them
(schema, resolver, orchestrator).
*/
package domain
