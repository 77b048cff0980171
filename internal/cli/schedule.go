package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/timex"
)

const columnWidth = 12

func parseDate(s string) (time.Time, error) {
	date, err := timex.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", common.ErrInvalidDate, err)
	}
	return date, nil
}

func (a *App) UploadAvailability(ctx context.Context, args []string) error {
	return a.run(ctx, cmdUploadAvailable, func(ctx context.Context) error {
		caregiver, err := a.session.RequireCaregiver()
		if err != nil {
			return err
		}
		if len(args) != 1 {
			return common.ErrInvalidArguments
		}

		date, err := parseDate(args[0])
		if err != nil {
			return err
		}

		if err := a.calendar.Publish(ctx, caregiver.Username, date); err != nil {
			return err
		}

		printlnFn("Availability uploaded!")
		return nil
	})
}

func (a *App) AddDoses(ctx context.Context, args []string) error {
	return a.run(ctx, cmdAddDoses, func(ctx context.Context) error {
		if _, err := a.session.RequireCaregiver(); err != nil {
			return err
		}
		if len(args) != 2 {
			return common.ErrInvalidArguments
		}

		doses, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: doses %q", common.ErrInvalidArguments, args[1])
		}

		if _, err := a.ledger.AddDoses(ctx, args[0], doses); err != nil {
			return err
		}

		printlnFn("Doses updated!")
		return nil
	})
}

func (a *App) SearchCaregiverSchedule(ctx context.Context, args []string) error {
	return a.run(ctx, cmdSearchSchedule, func(ctx context.Context) error {
		if _, err := a.session.RequireAny(); err != nil {
			return err
		}
		if len(args) != 1 {
			return common.ErrInvalidArguments
		}

		date, err := parseDate(args[0])
		if err != nil {
			return err
		}

		caregivers, err := a.calendar.FindCandidates(ctx, date)
		if err != nil {
			return err
		}

		stock, err := a.ledger.List(ctx)
		if err != nil {
			return err
		}

		for _, line := range scheduleTable(caregivers, stock) {
			printlnFn(line)
		}
		return nil
	})
}

// scheduleTable lays out one row per caregiver with the remaining doses of
// every vaccine, under a header naming the vaccines.
func scheduleTable(caregivers []string, stock []models.VaccineStock) []string {
	cell := func(b *strings.Builder, v any) {
		fmt.Fprintf(b, "%-*v", columnWidth, v)
	}

	lines := make([]string, 0, len(caregivers)+1)

	var header strings.Builder
	cell(&header, "Caregiver")
	for _, v := range stock {
		cell(&header, v.Name)
	}
	lines = append(lines, header.String())

	for _, c := range caregivers {
		var row strings.Builder
		cell(&row, c)
		for _, v := range stock {
			cell(&row, v.Doses)
		}
		lines = append(lines, row.String())
	}
	return lines
}
