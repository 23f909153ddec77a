package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Link(ctx context.Context) error
	StartScan(ctx context.Context) error
	StopScan(ctx context.Context) error
	Status(ctx context.Context) error
	SetField(ctx context.Context, field, value string) error
	ShowForm(ctx context.Context) error
	Submit(ctx context.Context) error
	List(ctx context.Context) error
	Export(ctx context.Context, format string) error
	ShowSymbol(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the case intake CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — enter the access passcode
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - start | stop   — control the scan loop
//	  - status         — scanner state, last error, recent readings
//	  - name | case | crime | date | note <value> — set a form field
//	  - form           — show the current form
//	  - submit         — validate and store the current form
//	  - list           — list stored records, newest first
//	  - export [csv|xlsx] — write stored records to a file
//	  - qr             — render the current form as a symbol
//	  - link           — print the shareable server address
//	  - logout         — drop the access token
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ci> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: start, stop, status, name, case, crime, date, note, form, submit, (l)ist, export, qr, link, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "link":
			_ = a.Link(ctx)

		case "start":
			_ = a.StartScan(ctx)

		case "stop":
			_ = a.StopScan(ctx)

		case "status":
			_ = a.Status(ctx)

		case "name", "case", "crime", "date", "note":
			_ = a.SetField(ctx, cmd, strings.Join(args, " "))

		case "form":
			_ = a.ShowForm(ctx)

		case "submit":
			_ = a.Submit(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "export":
			format := "csv"
			if len(args) > 0 {
				format = args[0]
			}
			_ = a.Export(ctx, format)

		case "qr":
			_ = a.ShowSymbol(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
