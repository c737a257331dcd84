// Package supervisor launches verification servers as child processes and
// produces clients against them.
//
// The process boundary is the point of the exercise: a serializer under
// test that crashes, corrupts its runtime or eats unbounded memory takes
// down the child, not the test runner. The supervisor tracks at most one
// child at a time as an explicit handle, captures the child's stdout and
// stderr line by line into a log sink, and force-terminates it on Stop.
package supervisor
