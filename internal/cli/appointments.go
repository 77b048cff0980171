package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/timex"
)

func (a *App) Reserve(ctx context.Context, args []string) error {
	return a.run(ctx, cmdReserve, func(ctx context.Context) error {
		patient, err := a.session.RequirePatient()
		if err != nil {
			return err
		}
		if len(args) != 2 {
			return common.ErrInvalidArguments
		}

		date, err := parseDate(args[0])
		if err != nil {
			return err
		}

		summary, err := a.coord.Reserve(ctx, patient.Username, date, args[1])
		if err != nil {
			return err
		}

		printlnFn(fmt.Sprintf("Appointment ID: %d, Caregiver username: %s", summary.ID, summary.CaregiverUsername))
		return nil
	})
}

func (a *App) ShowAppointments(ctx context.Context, args []string) error {
	return a.run(ctx, cmdShowAppointments, func(ctx context.Context) error {
		identity, err := a.session.RequireAny()
		if err != nil {
			return err
		}
		if len(args) != 0 {
			return common.ErrInvalidArguments
		}

		list, err := a.coord.ListFor(ctx, identity)
		if err != nil {
			return err
		}

		if len(list) == 0 {
			printlnFn("No appointment scheduled.")
			return nil
		}
		for _, s := range list {
			printlnFn(s.ID, s.VaccineName, timex.FormatDate(s.Date), s.Counterpart(identity.Kind))
		}
		return nil
	})
}

// Cancel accepts the command but changes nothing; appointments cannot be
// cancelled yet.
func (a *App) Cancel(ctx context.Context, args []string) error {
	return a.run(ctx, cmdCancel, func(ctx context.Context) error {
		if len(args) != 1 {
			return common.ErrInvalidArguments
		}
		printlnFn("Cancelling appointments is not supported.")
		return nil
	})
}
