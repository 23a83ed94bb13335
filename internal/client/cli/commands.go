package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/api"
	"github.com/dmitrijs2005/joggingtracker/internal/common"
)

var (
	errMissingID   = errors.New("-id is required")
	errMissingRole = errors.New("-role is required")
)

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *App) health(ctx context.Context) error {
	if err := a.client.Health(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "SERVING")
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.flagSet("login")
	userName := fs.String("u", "", "username")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *userName == "" {
		name, err := GetSimpleText(a.reader, "Enter username", a.out)
		if err != nil {
			return err
		}
		*userName = name
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.client.Login(ctx, *userName, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in, token valid for %s\n", time.Duration(resp.ExpiresIn)*time.Second)
	fmt.Fprintf(a.out, "export JOGGING_TOKEN=%s\n", resp.Token)
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out. Unset JOGGING_TOKEN to forget the token.")
	return nil
}

// recordFlags registers the writable record fields on fs.
func recordFlags(fs *flag.FlagSet, in *api.RecordInput) {
	fs.StringVar(&in.Date, "date", "", "date, YYYY-MM-DD")
	fs.Float64Var(&in.DistanceMeters, "distance", 0, "distance in meters")
	fs.DurationVar(&in.Duration.Duration, "duration", 0, "elapsed time, e.g. 42m30s")
}

func (a *App) add(ctx context.Context, args []string) error {
	var in api.RecordInput
	fs := a.flagSet("add")
	recordFlags(fs, &in)
	if err := fs.Parse(args); err != nil {
		return err
	}

	rec, err := a.client.AddRecord(ctx, in)
	if err != nil {
		return err
	}
	printRecords(a.out, []api.Record{*rec})
	return nil
}

func (a *App) get(ctx context.Context, args []string) error {
	fs := a.flagSet("get")
	id := fs.Int64("id", 0, "record id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return errMissingID
	}

	rec, err := a.client.GetRecord(ctx, *id)
	if err != nil {
		return err
	}
	printRecords(a.out, []api.Record{*rec})
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	var req api.FilterRecordsRequest
	fs := a.flagSet("list")
	fs.StringVar(&req.UserID, "user", "", "user id (admins only)")
	fs.StringVar(&req.From, "from", "", "first date, inclusive")
	fs.StringVar(&req.To, "to", "", "last date, inclusive")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		recs []api.Record
		err  error
	)
	if req.From == "" && req.To == "" {
		recs, err = a.client.ListRecords(ctx, req.UserID)
	} else {
		recs, err = a.client.FilterRecords(ctx, req)
	}
	if err != nil {
		return err
	}
	printRecords(a.out, recs)
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	var in api.RecordInput
	fs := a.flagSet("update")
	id := fs.Int64("id", 0, "record id")
	recordFlags(fs, &in)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return errMissingID
	}

	rec, err := a.client.UpdateRecord(ctx, *id, in)
	if err != nil {
		return err
	}
	printRecords(a.out, []api.Record{*rec})
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	fs := a.flagSet("delete")
	id := fs.Int64("id", 0, "record id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return errMissingID
	}

	if err := a.client.DeleteRecord(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "record %d deleted\n", *id)
	return nil
}

func (a *App) weekly(ctx context.Context, args []string) error {
	fs := a.flagSet("weekly")
	userID := fs.String("user", "", "user id (admins only)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	weeks, err := a.client.WeeklyStats(ctx, *userID)
	if err != nil {
		return err
	}
	printWeeks(a.out, weeks)
	return nil
}

func (a *App) user(ctx context.Context, args []string) error {
	fs := a.flagSet("user")
	id := fs.String("id", "", "user id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errMissingID
	}

	u, err := a.client.GetUser(ctx, *id)
	if err != nil {
		return err
	}
	printUsers(a.out, []api.User{*u})
	return nil
}

func (a *App) users(ctx context.Context, args []string) error {
	fs := a.flagSet("users")
	role := fs.String("role", "", "only users holding this role")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		users []api.User
		err   error
	)
	if *role == "" {
		users, err = a.client.ListUsers(ctx)
	} else {
		users, err = a.client.ListUsersByRole(ctx, *role)
	}
	if err != nil {
		return err
	}
	printUsers(a.out, users)
	return nil
}

func (a *App) userAdd(ctx context.Context, args []string) error {
	var req api.CreateUserRequest
	fs := a.flagSet("useradd")
	fs.StringVar(&req.UserName, "u", "", "username")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.FirstName, "first", "", "first name")
	fs.StringVar(&req.LastName, "last", "", "last name")
	manager := fs.Bool("manager", false, "create a UserManager instead of a RegularUser")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	req.Password = string(password)

	u, err := a.client.CreateUser(ctx, req, *manager)
	if err != nil {
		return err
	}
	printUsers(a.out, []api.User{*u})
	return nil
}

func (a *App) userUpdate(ctx context.Context, args []string) error {
	var req api.UpdateUserRequest
	fs := a.flagSet("userupdate")
	fs.StringVar(&req.ID, "id", "", "user id")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.FirstName, "first", "", "first name")
	fs.StringVar(&req.LastName, "last", "", "last name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if req.ID == "" {
		return errMissingID
	}

	u, err := a.client.UpdateUser(ctx, req)
	if err != nil {
		return err
	}
	printUsers(a.out, []api.User{*u})
	return nil
}

func (a *App) userDelete(ctx context.Context, args []string) error {
	fs := a.flagSet("userdel")
	id := fs.String("id", "", "user id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errMissingID
	}

	if err := a.client.DeleteUser(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "user %s deleted\n", *id)
	return nil
}

// userRole grants or revokes one role and prints the user afterwards.
func (a *App) userRole(ctx context.Context, name string, args []string, grant bool) error {
	fs := a.flagSet(name)
	id := fs.String("id", "", "user id")
	role := fs.String("role", "", "Admin, UserManager or RegularUser")
	if err := fs.Parse(args); err != nil {
		return err
	}
	switch {
	case *id == "":
		return errMissingID
	case *role == "":
		return errMissingRole
	}

	change := a.client.RemoveUserRole
	if grant {
		change = a.client.AddUserRole
	}
	u, err := change(ctx, *id, *role)
	if err != nil {
		return err
	}
	printUsers(a.out, []api.User{*u})
	return nil
}
