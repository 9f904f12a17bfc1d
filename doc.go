// Package sidenote is the Composition Root for the sidenote application.
//
// It connects the annotation domain (store, position resolver, interaction
// detector) with the orchestration engine and the filesystem persistence
// adapter.
//
// Philosophy:
//
// Sidenote keeps line-anchored annotations out of the files they describe.
// Notes live in a single JSON document beside (or away from) the code, so
// annotating a file never touches the file. The store is the single source
// of truth; every view recomputes its decorations from it.
//
// Features:
//
//   - **Durable Store**: atomic writes, corruption backup-and-reset, lenient
//     element-wise loading.
//   - **Position Resolver**: pure recomputation of visible markers and
//     word-wrapped hover payloads from a document snapshot.
//   - **Interaction Detector**: debounced click-versus-caret discrimination.
//   - **Orchestrator**: settle re-renders around host races, post-mutation
//     render sequencing, external-change watching.
//   - **Extensible**: any backend implementing `core.Store` can replace the
//     default JSON file adapter.
//
// Usage:
//
//	// Assemble an engine with functional options
//	eng, err := sidenote.New(
//		sidenote.WithStorePath("./notes.json"),
//		sidenote.WithLogger(logger),
//	)
//
//	// Save an annotation
//	err = eng.Put(ctx, "main.go", 41, "explain this branch")
package sidenote
