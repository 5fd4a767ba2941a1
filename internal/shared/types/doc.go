// Package types provides shared data structures for the launcher.
//
// Core Types:
//   - Item: A launchable script discovered on disk
//   - ProcessHandle: The controller's view of a spawned OS process
//   - ProcessInfo: Read-only snapshot of a tracked process
//
// Example Usage:
//
//	item := types.NewItem("/home/user/Modules/games/snake.py")
//	// item.Name == "snake.py"
package types
