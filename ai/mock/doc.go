// Package mock provides test doubles for the ai interfaces.
//
// Each mock supports behavior injection via function fields and records call
// counts for assertions. Constructors return concrete types so tests can
// reach the injection points.
package mock
