// Package console implements the interactive operator prompt.
//
// Commands are read one line at a time and run to completion before the
// next line is read. A leading "/" is optional, so "/run game.py" and
// "run game.py" are the same command.
//
//	browse            list discovered apps
//	scan              rescan the apps directory
//	run <name>        launch an app in a new terminal
//	task_manager      list running apps (alias: list)
//	close <name>      close a running app
//	output <name>     print captured output (pty strategy only)
//	help              show the command list
//	exit              leave the prompt (alias: quit)
package console
