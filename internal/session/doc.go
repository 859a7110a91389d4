// Package session holds the application state the tool server edits: the
// binarized original raster, the current result, the structuring element and
// the history of applied operations.
//
// All state lives in a Session value rather than in package globals, so a
// snapshot can be taken with State and put back with Restore. Named operations
// are looked up in a registry; see Operations for the full list.
package session
