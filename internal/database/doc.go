// Package database provides SQLite-backed persistence for blogsmith.
// It currently stores URL probe outcomes so repeated generations for the
// same company skip re-probing recently validated sources.
package database
