// Package carousel implements the interaction state of a slide carousel:
// the shared registry of items and navigation triggers, value/index
// resolution, valid stop sampling, surface geometry, drag and wheel input,
// keyboard traversal and the visibility flags consumed by a renderer.
//
// The package is headless. A Host supplies measurements and applies
// transforms and focus; all calls are expected from a single event loop.
package carousel
