// Package renderer draws the editor screen: status line on top, the hex
// and text panels in the middle, and the function-key bar or the active
// prompt on the bottom row. It writes cells through the backend
// abstraction, so the same code drives the terminal and the tests.
package renderer
