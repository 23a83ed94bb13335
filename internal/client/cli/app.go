package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/joggingtracker/internal/client/client"
	"github.com/dmitrijs2005/joggingtracker/internal/client/config"
)

type App struct {
	client client.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	apiClient.SetToken(c.Token)

	return newApp(apiClient, os.Stdin, os.Stdout), nil
}

func newApp(c client.Client, in io.Reader, out io.Writer) *App {
	return &App{client: c, reader: bufio.NewReader(in), out: out}
}

func (a *App) Close() error {
	return a.client.Close()
}

// Run executes one command. Unknown commands print the help text and fail.
func (a *App) Run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "", "help":
		a.help()
		return nil
	case "health":
		return a.health(ctx)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "add":
		return a.add(ctx, args)
	case "get":
		return a.get(ctx, args)
	case "list":
		return a.list(ctx, args)
	case "update":
		return a.update(ctx, args)
	case "delete":
		return a.delete(ctx, args)
	case "weekly":
		return a.weekly(ctx, args)
	case "user":
		return a.user(ctx, args)
	case "users":
		return a.users(ctx, args)
	case "useradd":
		return a.userAdd(ctx, args)
	case "userupdate":
		return a.userUpdate(ctx, args)
	case "userdel":
		return a.userDelete(ctx, args)
	case "roleadd":
		return a.userRole(ctx, "roleadd", args, true)
	case "roledel":
		return a.userRole(ctx, "roledel", args, false)
	default:
		a.help()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func (a *App) help() {
	fmt.Fprint(a.out, `Usage: client [-a addr] [-t token] [-c config.json] <command> [flags]

Commands:
  health                                         check the server
  login [-u name]                                log in and print a token
  logout                                         clear the session
  add -date D -distance M -duration 30m          log a run
  get -id N                                      show one record
  list [-user ID] [-from D] [-to D]              list records, optionally by date range
  update -id N -date D -distance M -duration T   replace a record
  delete -id N                                   delete a record
  weekly [-user ID]                              weekly average speed and distance
  user -id ID                                    show one user
  users [-role R]                                list users
  useradd -u name -email E -first F -last L [-manager]
  userupdate -id ID -email E -first F -last L
  userdel -id ID
  roleadd -id ID -role R                         grant a role (Admin only)
  roledel -id ID -role R                         revoke a role (Admin only)

Dates are YYYY-MM-DD. The token may also be set with JOGGING_TOKEN.
`)
}
