package cli

import (
	"context"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/models"
)

func (a *App) CreatePatient(ctx context.Context, args []string) error {
	return a.run(ctx, cmdCreatePatient, func(ctx context.Context) error {
		return a.createUser(ctx, models.KindPatient, args)
	})
}

func (a *App) CreateCaregiver(ctx context.Context, args []string) error {
	return a.run(ctx, cmdCreateCaregiver, func(ctx context.Context) error {
		return a.createUser(ctx, models.KindCaregiver, args)
	})
}

func (a *App) createUser(ctx context.Context, kind models.Kind, args []string) error {
	if len(args) != 2 {
		return common.ErrInvalidArguments
	}

	identity, err := a.creds.Register(ctx, kind, args[0], args[1])
	if err != nil {
		return err
	}

	printlnFn("Created user", identity.Username)
	return nil
}

func (a *App) LoginPatient(ctx context.Context, args []string) error {
	return a.run(ctx, cmdLoginPatient, func(ctx context.Context) error {
		return a.login(ctx, models.KindPatient, args)
	})
}

func (a *App) LoginCaregiver(ctx context.Context, args []string) error {
	return a.run(ctx, cmdLoginCaregiver, func(ctx context.Context) error {
		return a.login(ctx, models.KindCaregiver, args)
	})
}

func (a *App) login(ctx context.Context, kind models.Kind, args []string) error {
	if _, ok := a.session.Current(); ok {
		return common.ErrAlreadyLoggedIn
	}
	if len(args) != 2 {
		return common.ErrInvalidArguments
	}

	identity, err := a.creds.Authenticate(ctx, kind, args[0], args[1])
	if err != nil {
		return err
	}

	if err := a.session.Login(identity); err != nil {
		return err
	}

	a.logger.Info(ctx, "logged in", "kind", kind.String(), "username", identity.Username, "session_id", a.session.ID())
	printlnFn("Logged in as: " + identity.Username)
	return nil
}

func (a *App) Logout(ctx context.Context, args []string) error {
	return a.run(ctx, cmdLogout, func(ctx context.Context) error {
		if len(args) != 0 {
			return common.ErrInvalidArguments
		}
		if err := a.session.Logout(); err != nil {
			return err
		}
		printlnFn("Successfully logged out!")
		return nil
	})
}
