// Package cli implements the blackboard command line: running triangle
// scenarios through the processing pipeline and listing the built-in ones.
package cli
