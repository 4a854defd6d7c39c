// Package biblia provides a resilient fetch-and-search layer over a remote
// scripture text API. It reads books chapter by chapter and searches a word
// across a whole book while respecting the provider's rate limits.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, sqlite/, ratelimit/).
package biblia
