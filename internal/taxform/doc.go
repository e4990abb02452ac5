// Package taxform contains the collected tax data model and its catalogue.
//
// Allowed here:
// - form state types, per-section defaults and the closed section enumeration
// - field descriptors, record conversion and schema validation
// - pure aggregation over a form state
//
// Not allowed here:
// - navigation, subscriptions or any other wizard state machine
// - rendering of any kind
package taxform
