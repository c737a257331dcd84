// Package serializer defines the boundary to the serialization engine being
// verified. The harness itself is engine-agnostic: anything implementing
// ITestedSerializer can be exercised, locally or in a spawned server
// process.
//
// Key Components:
//
//   - ITestedSerializer: The contract an engine under test must satisfy.
//
//   - Register / Get: Name-keyed registry used by the spawned server process
//     to resolve the engine named on its command line.
//
//   - NewJSONSerializer / NewGOBSerializer: Reference engines used as known
//     good codecs in tests and demos.
//
//   - NewFailingSerializer: An engine that raises for every value, for
//     exercising the Error reply path.
//
//   - Fixtures: The built-in corpus of sample values round-tripped by the
//     check and bench commands.
package serializer
