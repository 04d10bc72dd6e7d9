/*
Package tree implements the hierarchical pricing override engine.

A Snapshot is an immutable three-level tree (segment, category, item) built from flat entity
lists. Every edit is a pure function from one Snapshot to a new one: only the path from the root
to the changed nodes is reallocated, untouched subtrees are shared between versions. Callers never
observe a partially applied edit, and a failing edit returns the original Snapshot unchanged.

The package never performs I/O and never logs.
*/
package tree
