// Package scenario loads triangle scenarios from YAML: the initial facts to
// seed into a store plus optional expectations about the pipeline outcome
// and the final facts.
//
// Example file:
//
//	name: right-angled
//	triangle: [90, 45, null]   # null marks the unknown angle
//	rules:
//	  right_angle_threshold: "90.0"
//	expect:
//	  outcome: ok
//	  right_angled: true
//	  angles: [90, 45, 45]
package scenario
