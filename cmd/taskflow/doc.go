// The taskflow program manages the tasks kept by a TaskFlow server from the command line.
//
// Settings come from lib/taskflow/config.toml within the user's home directory, then from the TASKFLOW_*
// environment variables, then from the global flags. Tasks are named by the id the server assigned, as
// printed by "taskflow ls".
//
// Examples:
//
//	taskflow ls --incomplete --sort created
//	taskflow add "Buy milk" two liters, semi-skimmed
//	taskflow toggle 12
//	taskflow tui
package main // import "github.com/nicolagi/taskflow/cmd/taskflow"
