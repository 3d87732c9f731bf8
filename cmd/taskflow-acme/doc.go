// The taskflow-acme program is an acme user interface to a TaskFlow server.
//
// Settings are read from lib/taskflow/config.toml within the user's home directory, then from the TASKFLOW_*
// environment variables. A different file can be named with the -config flag.
//
// When launched, it creates an initial window with the progress over all tasks. The Todos and Completed
// commands open the lists of active and completed tasks; right-clicking a task id opens the task.
//
// In a task window, edit the text after "Title:" and the description below the blank line, then Put.
// Toggle marks the task complete or active again. Be careful with the Zap command as it deletes the task.
// In a list window, "Toggle 12" and "Zap 12" act on task 12, and Sort cycles through the sort orders.
package main // import "github.com/nicolagi/taskflow/cmd/taskflow-acme"
