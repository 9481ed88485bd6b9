// Command taskctl manages groups, users and tasks through the HTTP API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/basewarphq/bwtasks/client"
	"github.com/basewarphq/bwtasks/cmd/internal/cfnread"
	"github.com/basewarphq/bwtasks/cmd/internal/ctlcfg"
	"github.com/cockroachdb/errors"
)

type CLI struct {
	APIURL string `name:"api-url" env:"TASKCTL_API_URL" help:"Base URL of the API."`
	Stack  string `name:"stack" env:"TASKCTL_STACK" help:"Deployed stack to read the API URL from."`
	Region string `name:"region" env:"AWS_REGION" help:"Region of --stack."`
	Config string `name:"config" type:"path" help:"Config file (default: ~/.config/taskctl/config.toml)."`

	Group struct {
		Create GroupCreateCmd `cmd:"" help:"Create a group."`
		List   GroupListCmd   `cmd:"" help:"List all groups."`
		Get    GroupGetCmd    `cmd:"" help:"Show one group."`
		Update GroupUpdateCmd `cmd:"" help:"Rename a group or change its leader."`
		Delete GroupDeleteCmd `cmd:"" help:"Delete a group."`
	} `cmd:"" help:"Group commands."`
	User struct {
		Create UserCreateCmd `cmd:"" help:"Create a user."`
		List   UserListCmd   `cmd:"" help:"List all users."`
		Get    UserGetCmd    `cmd:"" help:"Show one user."`
		Update UserUpdateCmd `cmd:"" help:"Change a user's name, email or role."`
		Delete UserDeleteCmd `cmd:"" help:"Delete a user."`
	} `cmd:"" help:"User commands."`
	Task struct {
		Create   TaskCreateCmd   `cmd:"" help:"Create a pending task."`
		List     TaskListCmd     `cmd:"" help:"List all tasks."`
		Get      TaskGetCmd      `cmd:"" help:"Show one task."`
		Update   TaskUpdateCmd   `cmd:"" help:"Change a task."`
		Complete TaskCompleteCmd `cmd:"" help:"Mark a task completed."`
		Delete   TaskDeleteCmd   `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Task commands."`
}

// printer writes command results as indented JSON.
type printer struct {
	w io.Writer
}

func (p *printer) print(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, opts ...kong.Option) error {
	var cli CLI
	parser, err := kong.New(&cli, append([]kong.Option{
		kong.Name("taskctl"),
		kong.Description("Manage groups, users and tasks."),
		kong.UsageOnError(),
	}, opts...)...)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	c, err := cli.client(ctx)
	if err != nil {
		return err
	}
	kctx.BindTo(ctx, (*context.Context)(nil))
	return kctx.Run(c, &printer{w: stdout})
}

func (cli *CLI) client(ctx context.Context) (*client.Client, error) {
	path := cli.Config
	if path == "" {
		def, err := ctlcfg.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = def
	}
	cfg, err := ctlcfg.Load(path)
	if err != nil {
		return nil, err
	}
	if cli.Stack != "" {
		cfg.Stack = cli.Stack
	}
	if cli.Region != "" {
		cfg.Region = cli.Region
	}
	apiURL, err := cfg.Resolve(ctx, cli.APIURL, cfnread.StackOutputs)
	if err != nil {
		return nil, err
	}
	return client.New(apiURL)
}

func notFound(kind, id string) error {
	return errors.Newf("%s %q not found", kind, id)
}
