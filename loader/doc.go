// Package loader materializes generated code into live classes.
//
// A Registry keeps one Context per Scope. The Scope is the host environment a
// generated class belongs to; the Context is the child that defines classes
// on its behalf and rejects a second definition of the same name.
//
// Key properties:
//   - at most one definition per name per context, even under concurrent calls
//   - distinct names never contend on the same lock
//   - the registry holds scopes weakly: a context is evicted once its scope is
//     collected, and a live class keeps its scope reachable
package loader
