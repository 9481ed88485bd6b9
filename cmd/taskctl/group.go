package main

import (
	"context"

	"github.com/basewarphq/bwtasks/client"
)

type GroupCreateCmd struct {
	Name   string `required:"" help:"Group name."`
	Leader string `help:"User ID of the group leader."`
	ID     string `name:"id" help:"Group ID (generated when omitted)."`
}

func (c *GroupCreateCmd) Run(ctx context.Context, api *client.Client, p *printer) error {
	g := client.Group{GroupID: c.ID, Name: c.Name}
	if c.Leader != "" {
		g.LeaderID = &c.Leader
	}
	out, err := api.CreateGroup(ctx, g)
	if err != nil {
		return err
	}
	return p.print(out)
}

type GroupListCmd struct{}

func (c *GroupListCmd) Run(ctx context.Context, api *client.Client, p *printer) error {
	groups, err := api.ListGroups(ctx)
	if err != nil {
		return err
	}
	return p.print(groups)
}

type GroupGetCmd struct {
	ID string `arg:"" help:"Group ID."`
}

func (c *GroupGetCmd) Run(ctx context.Context, api *client.Client, p *printer) error {
	g, err := api.GetGroup(ctx, c.ID)
	if err != nil {
		return err
	}
	if g == nil {
		return notFound("group", c.ID)
	}
	return p.print(g)
}

type GroupUpdateCmd struct {
	ID     string `arg:"" help:"Group ID."`
	Name   string `required:"" help:"New group name."`
	Leader string `help:"User ID of the group leader; omit to clear."`
}

func (c *GroupUpdateCmd) Run(ctx context.Context, api *client.Client, p *printer) error {
	g := client.Group{GroupID: c.ID, Name: c.Name}
	if c.Leader != "" {
		g.LeaderID = &c.Leader
	}
	out, err := api.UpdateGroup(ctx, g)
	if err != nil {
		return err
	}
	return p.print(out)
}

type GroupDeleteCmd struct {
	ID string `arg:"" help:"Group ID."`
}

func (c *GroupDeleteCmd) Run(ctx context.Context, api *client.Client) error {
	return api.DeleteGroup(ctx, c.ID)
}
