// Package launch starts discovered apps in a visible terminal and stops them again.
//
// Each host family gets its own Strategy: a console host window on windows,
// the Terminal app via osascript on darwin, and the first available terminal
// emulator on linux and the BSDs. A headless PTY strategy captures output
// instead of opening a window. ForHost picks a Strategy and the matching
// Terminator once at startup.
package launch
