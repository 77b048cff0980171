package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"golang.org/x/term"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

const helpText = ` *** Please enter one of the following commands ***
> create_patient <username> <password>
> create_caregiver <username> <password>
> login_patient <username> <password>
> login_caregiver <username> <password>
> search_caregiver_schedule <date>
> reserve <date> <vaccine>
> upload_availability <date>
> cancel <appointment_id>
> add_doses <vaccine> <number>
> show_appointments
> logout
> Quit`

const (
	cmdCreatePatient    = "create_patient"
	cmdCreateCaregiver  = "create_caregiver"
	cmdLoginPatient     = "login_patient"
	cmdLoginCaregiver   = "login_caregiver"
	cmdSearchSchedule   = "search_caregiver_schedule"
	cmdReserve          = "reserve"
	cmdUploadAvailable  = "upload_availability"
	cmdCancel           = "cancel"
	cmdAddDoses         = "add_doses"
	cmdShowAppointments = "show_appointments"
	cmdLogout           = "logout"
)

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	CreatePatient(ctx context.Context, args []string) error
	CreateCaregiver(ctx context.Context, args []string) error
	LoginPatient(ctx context.Context, args []string) error
	LoginCaregiver(ctx context.Context, args []string) error
	SearchCaregiverSchedule(ctx context.Context, args []string) error
	Reserve(ctx context.Context, args []string) error
	UploadAvailability(ctx context.Context, args []string) error
	Cancel(ctx context.Context, args []string) error
	AddDoses(ctx context.Context, args []string) error
	ShowAppointments(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
}

// runREPL reads a line from the scanner, takes the first field as the
// command and passes the remaining fields to the matching method on a.
// The loop exits on scanner EOF or when the user types "quit" or "Quit".
//
// Handlers report their own failures, so returned errors are ignored here.
func runREPL(ctx context.Context, a execIface, promptFn func() string, scanner *bufio.Scanner) {
	for {
		if p := promptFn(); p != "" {
			printFn(p)
		}
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case cmdCreatePatient:
			_ = a.CreatePatient(ctx, args)

		case cmdCreateCaregiver:
			_ = a.CreateCaregiver(ctx, args)

		case cmdLoginPatient:
			_ = a.LoginPatient(ctx, args)

		case cmdLoginCaregiver:
			_ = a.LoginCaregiver(ctx, args)

		case cmdSearchSchedule:
			_ = a.SearchCaregiverSchedule(ctx, args)

		case cmdReserve:
			_ = a.Reserve(ctx, args)

		case cmdUploadAvailable:
			_ = a.UploadAvailability(ctx, args)

		case cmdCancel:
			_ = a.Cancel(ctx, args)

		case cmdAddDoses:
			_ = a.AddDoses(ctx, args)

		case cmdShowAppointments:
			_ = a.ShowAppointments(ctx, args)

		case cmdLogout:
			_ = a.Logout(ctx, args)

		case "quit", "Quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Invalid operation name!")
		}
	}
}
