package main

import (
	"context"

	"github.com/basewarphq/bwtasks/client"
)

type TaskCreateCmd struct {
	Group       string `required:"" help:"Group the task belongs to."`
	Description string `required:""`
	AssignedTo  string `required:"" help:"User ID of the assignee."`
	ID          string `name:"id" help:"Task ID (generated when omitted)."`
}

func (c *TaskCreateCmd) Run(ctx context.Context, api *client.Client, p *printer) error {
	out, err := api.CreateTask(ctx, client.Task{
		TaskID: c.ID, GroupID: c.Group, Description: c.Description, AssignedTo: c.AssignedTo,
	})
	if err != nil {
		return err
	}
	return p.print(out)
}

type TaskListCmd struct{}

func (c *TaskListCmd) Run(ctx context.Context, api *client.Client, p *printer) error {
	tasks, err := api.ListTasks(ctx)
	if err != nil {
		return err
	}
	return p.print(tasks)
}

type TaskGetCmd struct {
	ID    string `arg:"" help:"Task ID."`
	Group string `required:"" help:"Group the task belongs to."`
}

func (c *TaskGetCmd) Run(ctx context.Context, api *client.Client, p *printer) error {
	t, err := api.GetTask(ctx, c.ID, c.Group)
	if err != nil {
		return err
	}
	if t == nil {
		return notFound("task", c.ID)
	}
	return p.print(t)
}

type TaskUpdateCmd struct {
	ID          string `arg:"" help:"Task ID."`
	Group       string `required:"" help:"Group the task belongs to."`
	Description string `required:""`
	AssignedTo  string `required:"" help:"User ID of the assignee."`
	Status      string `default:"PENDING" enum:"PENDING,COMPLETED" help:"Task status (${enum})."`
}

func (c *TaskUpdateCmd) Run(ctx context.Context, api *client.Client, p *printer) error {
	out, err := api.UpdateTask(ctx, client.Task{
		TaskID: c.ID, GroupID: c.Group, Description: c.Description, AssignedTo: c.AssignedTo, Status: c.Status,
	})
	if err != nil {
		return err
	}
	return p.print(out)
}

// TaskCompleteCmd reads the task first since an update rewrites every mutable field.
type TaskCompleteCmd struct {
	ID    string `arg:"" help:"Task ID."`
	Group string `required:"" help:"Group the task belongs to."`
}

func (c *TaskCompleteCmd) Run(ctx context.Context, api *client.Client, p *printer) error {
	t, err := api.GetTask(ctx, c.ID, c.Group)
	if err != nil {
		return err
	}
	if t == nil {
		return notFound("task", c.ID)
	}
	t.Status = client.StatusCompleted
	out, err := api.UpdateTask(ctx, *t)
	if err != nil {
		return err
	}
	return p.print(out)
}

type TaskDeleteCmd struct {
	ID    string `arg:"" help:"Task ID."`
	Group string `required:"" help:"Group the task belongs to."`
}

func (c *TaskDeleteCmd) Run(ctx context.Context, api *client.Client) error {
	return api.DeleteTask(ctx, c.ID, c.Group)
}
