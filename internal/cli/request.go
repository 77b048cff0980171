package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/services"
	"github.com/google/uuid"
)

// exitFn is a test seam for os.Exit.
var exitFn = os.Exit

// run executes fn as one request: it gets its own deadline and request id,
// and a failure is reported to the user before run returns it.
func (a *App) run(ctx context.Context, cmd string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	log := a.logger.With("request_id", uuid.NewString(), "command", cmd)
	if identity, ok := a.session.Current(); ok {
		log = log.With("session_id", a.session.ID(), "username", identity.Username)
	}

	start := time.Now()
	err := fn(ctx)
	if err != nil {
		a.report(ctx, log, cmd, err)
		return err
	}

	log.Debug(ctx, "command completed", "elapsed", time.Since(start))
	return nil
}

// report prints the user-facing message for err. Storage errors end the
// process unless the configuration says to keep going.
func (a *App) report(ctx context.Context, log logging.Logger, cmd string, err error) {
	for _, line := range messageFor(cmd, err) {
		printlnFn(line)
	}

	kind := common.KindOf(err)
	if kind != common.KindStorage {
		log.Info(ctx, "command rejected", "kind", kind.String(), "error", err)
		return
	}

	log.Error(ctx, "storage error", "error", err)
	if a.config.StorageErrorsFatal {
		exitFn(1)
	}
}

// messageFor returns the lines shown to the user when cmd fails with err.
func messageFor(cmd string, err error) []string {
	var weak *services.WeakPasswordError

	switch {
	case errors.As(err, &weak):
		return weak.Violations

	case errors.Is(err, common.ErrInvalidArguments):
		switch cmd {
		case cmdCreatePatient, cmdCreateCaregiver:
			return []string{"Failed to create user."}
		case cmdLoginPatient, cmdLoginCaregiver:
			return []string{"Login failed."}
		}
		return []string{"Please try again!"}

	case errors.Is(err, common.ErrInvalidDate):
		return []string{"Please enter a valid date (mm-dd-yyyy)!"}

	case errors.Is(err, common.ErrInvalidDoses):
		return []string{fmt.Sprintf("Number of doses must be between 1 and %d!", models.MaxDoses)}

	case errors.Is(err, common.ErrDuplicateUsername):
		return []string{"Username taken, try again!"}

	case errors.Is(err, common.ErrAlreadyLoggedIn):
		return []string{"User already logged in."}

	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrBadPassword):
		return []string{"Login failed."}

	case errors.Is(err, common.ErrNoActiveSession), errors.Is(err, common.ErrWrongSessionKind):
		switch cmd {
		case cmdUploadAvailable, cmdAddDoses:
			return []string{"Please login as a caregiver first!"}
		case cmdLogout:
			return []string{"Please login first."}
		case cmdReserve:
			if errors.Is(err, common.ErrWrongSessionKind) {
				return []string{"Please login as a patient!"}
			}
		}
		return []string{"Please login first!"}

	case errors.Is(err, common.ErrNoCaregiverAvailable):
		return []string{"No Caregiver is available!"}

	case errors.Is(err, common.ErrInsufficientDoses):
		return []string{"Not enough available doses!"}

	case errors.Is(err, common.ErrDuplicateSlot):
		return []string{"Availability already uploaded!"}

	case errors.Is(err, common.ErrAlreadyBooked):
		return []string{"Slot was just booked, please try again!"}
	}

	return []string{"Db-Error: " + err.Error()}
}
