package handler_test

import (
	"context"
	"testing"

	"github.com/basewarphq/bwtasks/client"
	"github.com/google/go-cmp/cmp"
)

func TestClientRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	srv := newServer(t)

	c, err := client.New(srv.URL, client.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	group, err := c.CreateGroup(ctx, client.Group{Name: "Ops"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	user, err := c.CreateUser(ctx, client.User{GroupID: group.GroupID, Name: "Ann", Email: "a@x.io", Role: "dev"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	leader := user.UserID
	group.LeaderID = &leader
	if _, err := c.UpdateGroup(ctx, group); err != nil {
		t.Fatalf("UpdateGroup: %v", err)
	}
	got, err := c.GetGroup(ctx, group.GroupID)
	if err != nil || got == nil {
		t.Fatalf("GetGroup: %v %v", got, err)
	}
	if diff := cmp.Diff(group, *got); diff != "" {
		t.Errorf("group mismatch (-want +got):\n%s", diff)
	}

	task, err := c.CreateTask(ctx, client.Task{GroupID: group.GroupID, Description: "Write docs", AssignedTo: user.UserID})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	task.Status = client.StatusCompleted
	if _, err := c.UpdateTask(ctx, task); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	stored, err := c.GetTask(ctx, task.TaskID, task.GroupID)
	if err != nil || stored == nil {
		t.Fatalf("GetTask: %v %v", stored, err)
	}
	if stored.Status != client.StatusCompleted || stored.CreatedAt != task.CreatedAt {
		t.Errorf("stored task = %+v", stored)
	}

	task.Status = "ARCHIVED"
	if _, err := c.UpdateTask(ctx, task); !client.IsBadRequest(err) {
		t.Errorf("archived update err = %v, want bad request", err)
	}

	if err := c.DeleteUser(ctx, user.UserID, user.GroupID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	users, err := c.ListUsers(ctx)
	if err != nil || len(users) != 0 {
		t.Errorf("users after delete = %v %v", users, err)
	}
}
