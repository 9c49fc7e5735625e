// Package update implements the self-update workflow: fetch the published version
// marker, compare it with the running version and, when newer, fetch the release
// payload and atomically replace the local artifact.
package update
