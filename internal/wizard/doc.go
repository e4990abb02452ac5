// Package wizard holds the navigation core of the data-collection wizard.
//
// Allowed here:
// - the step sequencer (cursor with advance/retreat/jump)
// - the form state store, selection reconciliation and change notification
// - selection to step derivation and summary index resolution
//
// Not allowed here:
// - rendering, key handling or field-level editing
// - I/O of any kind
package wizard
