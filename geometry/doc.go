// Package geometry is the worked example plugged into the blackboard: a
// triangle whose unknown angle is deduced from the angle sum, followed by a
// right-angle check. It exists to exercise the store and the pipeline; the
// rules are intentionally small.
package geometry
