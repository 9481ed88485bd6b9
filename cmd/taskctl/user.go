package main

import (
	"context"

	"github.com/basewarphq/bwtasks/client"
)

type UserCreateCmd struct {
	Group string `required:"" help:"Group the user belongs to."`
	Name  string `required:""`
	Email string `required:""`
	Role  string `required:""`
	ID    string `name:"id" help:"User ID (generated when omitted)."`
}

func (c *UserCreateCmd) Run(ctx context.Context, api *client.Client, p *printer) error {
	out, err := api.CreateUser(ctx, client.User{
		UserID: c.ID, GroupID: c.Group, Name: c.Name, Email: c.Email, Role: c.Role,
	})
	if err != nil {
		return err
	}
	return p.print(out)
}

type UserListCmd struct{}

func (c *UserListCmd) Run(ctx context.Context, api *client.Client, p *printer) error {
	users, err := api.ListUsers(ctx)
	if err != nil {
		return err
	}
	return p.print(users)
}

type UserGetCmd struct {
	ID    string `arg:"" help:"User ID."`
	Group string `required:"" help:"Group the user belongs to."`
}

func (c *UserGetCmd) Run(ctx context.Context, api *client.Client, p *printer) error {
	u, err := api.GetUser(ctx, c.ID, c.Group)
	if err != nil {
		return err
	}
	if u == nil {
		return notFound("user", c.ID)
	}
	return p.print(u)
}

type UserUpdateCmd struct {
	ID    string `arg:"" help:"User ID."`
	Group string `required:"" help:"Group the user belongs to."`
	Name  string `required:""`
	Email string `required:""`
	Role  string `required:""`
}

func (c *UserUpdateCmd) Run(ctx context.Context, api *client.Client, p *printer) error {
	out, err := api.UpdateUser(ctx, client.User{
		UserID: c.ID, GroupID: c.Group, Name: c.Name, Email: c.Email, Role: c.Role,
	})
	if err != nil {
		return err
	}
	return p.print(out)
}

type UserDeleteCmd struct {
	ID    string `arg:"" help:"User ID."`
	Group string `required:"" help:"Group the user belongs to."`
}

func (c *UserDeleteCmd) Run(ctx context.Context, api *client.Client) error {
	return api.DeleteUser(ctx, c.ID, c.Group)
}
