// Package render produces the deliverable forms of an article: cleaned
// section HTML, the numbered literature block, and an optional
// standalone HTML page.
package render
