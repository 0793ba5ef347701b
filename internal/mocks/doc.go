// Package mocks provides hand-written mock implementations of the store and
// service interfaces for use in tests. Each mock exposes function fields so a
// test can override exactly the behavior it cares about, with simple default
// values used otherwise.
package mocks
