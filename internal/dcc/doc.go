// Package dcc resolves configured editing applications to installed
// executables and launches them as detached, unsupervised processes.
package dcc
