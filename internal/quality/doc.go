// Package quality runs the editorial check battery over a generated
// article and applies automatic repairs. Each check inspects one concern
// (meta tag lengths, citation consistency, HTML structure, word counts,
// source hygiene) and records errors or warnings; the fixer then repairs
// what it mechanically can, and a second validation decides whether the
// article ships.
package quality
