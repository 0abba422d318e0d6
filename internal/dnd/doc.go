// Package dnd coordinates pointer-driven drag and drop.
//
// A Session is the provider: it owns the registry of drop targets, the single active
// drag payload, the hovered target and the floating overlay. Draggable and Droppable
// are per-item controllers bound to a Session; they never talk to each other directly.
//
// The package has no rendering or input runtime of its own. Hosts feed it PointerEvent
// values (press/move/release/cancel) and answer Measurer queries for on-screen bounds.
// Everything runs on the host's event goroutine; nothing here is safe for concurrent use.
package dnd
