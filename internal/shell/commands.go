package shell

import (
	"fmt"
	"io"
	"strings"
)

// Command names understood by the dispatcher.
const (
	cmdAdd            = "add"
	cmdUpdate         = "update"
	cmdDelete         = "delete"
	cmdMarkInProgress = "mark-in-progress"
	cmdMarkDone       = "mark-done"
	cmdList           = "list"
	cmdHelp           = "help"
	cmdExit           = "exit"
	cmdQuit           = "quit"
)

type commandInfo struct {
	name  string
	args  string
	usage string
}

var commandTable = []commandInfo{
	{cmdAdd, "<description>", "Add a new task"},
	{cmdUpdate, "<id> <description>", "Change a task's description"},
	{cmdDelete, "<id>", "Delete a task"},
	{cmdMarkInProgress, "<id>", "Mark a task as in-progress"},
	{cmdMarkDone, "<id>", "Mark a task as done"},
	{cmdList, "[todo|in-progress|done]", "List tasks, optionally by status"},
	{cmdHelp, "", "Show this help"},
	{cmdExit, "", "Leave the session (also: quit)"},
}

// CommandNames returns the dispatcher's commands in display order.
func CommandNames() []string {
	names := make([]string, 0, len(commandTable))
	for _, c := range commandTable {
		names = append(names, c.name)
	}
	return names
}

func availableCommands() string {
	return "Available commands: " + strings.Join(CommandNames(), ", ")
}

// PrintHelp writes the command reference to w.
func PrintHelp(w io.Writer) {
	fmt.Fprintln(w, "Commands:")
	for _, c := range commandTable {
		usage := strings.TrimSpace(c.name + " " + c.args)
		fmt.Fprintf(w, "  %-36s %s\n", usage, c.usage)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, `Quote descriptions that contain spaces: add "buy milk"`)
}
