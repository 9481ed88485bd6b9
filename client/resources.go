package client

import (
	"context"
	"net/http"
)

// Group is a named set of users with an optional leader.
type Group struct {
	GroupID   string  `json:"groupId"`
	Name      string  `json:"name"`
	LeaderID  *string `json:"leaderId"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// User belongs to exactly one group.
type User struct {
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

// Task is a unit of work within a group.
type Task struct {
	TaskID      string `json:"taskId"`
	GroupID     string `json:"groupId"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo"`
	Status      string `json:"status,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// Task statuses.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
)

// CreateGroup stores g, generating its identifier and creation time when unset.
func (c *Client) CreateGroup(ctx context.Context, g Group) (Group, error) {
	if g.GroupID == "" {
		g.GroupID = c.newID()
	}
	if g.CreatedAt == "" {
		g.CreatedAt = c.timestamp()
	}
	var out Group
	err := c.do(ctx, http.MethodPost, c.endpoint(nil, "groups"), g, &out)
	return out, err
}

// ListGroups returns every group.
func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	out := []Group{}
	err := c.do(ctx, http.MethodGet, c.endpoint(nil, "groups"), nil, &out)
	return out, err
}

// GetGroup returns the group, or nil when it does not exist.
func (c *Client) GetGroup(ctx context.Context, groupID string) (*Group, error) {
	var out *Group
	err := c.do(ctx, http.MethodGet, c.endpoint(nil, "groups", groupID), nil, &out)
	return out, err
}

// UpdateGroup rewrites the name and leader of g.
func (c *Client) UpdateGroup(ctx context.Context, g Group) (Group, error) {
	var out Group
	err := c.do(ctx, http.MethodPut, c.endpoint(nil, "groups", g.GroupID), g, &out)
	return out, err
}

// DeleteGroup removes the group. Deleting an absent group succeeds.
func (c *Client) DeleteGroup(ctx context.Context, groupID string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint(nil, "groups", groupID), nil, nil)
}

// CreateUser stores u, generating its identifier when unset.
func (c *Client) CreateUser(ctx context.Context, u User) (User, error) {
	if u.UserID == "" {
		u.UserID = c.newID()
	}
	var out User
	err := c.do(ctx, http.MethodPost, c.endpoint(nil, "users"), u, &out)
	return out, err
}

// ListUsers returns every user of every group.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	out := []User{}
	err := c.do(ctx, http.MethodGet, c.endpoint(nil, "users"), nil, &out)
	return out, err
}

// GetUser returns the user, or nil when it does not exist.
func (c *Client) GetUser(ctx context.Context, userID, groupID string) (*User, error) {
	var out *User
	err := c.do(ctx, http.MethodGet, c.endpoint(groupQuery(groupID), "users", userID), nil, &out)
	return out, err
}

// UpdateUser rewrites the name, email and role of u.
func (c *Client) UpdateUser(ctx context.Context, u User) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPut, c.endpoint(groupQuery(u.GroupID), "users", u.UserID), u, &out)
	return out, err
}

// DeleteUser removes the user.
func (c *Client) DeleteUser(ctx context.Context, userID, groupID string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint(groupQuery(groupID), "users", userID), nil, nil)
}

// CreateTask stores t as a new pending task.
func (c *Client) CreateTask(ctx context.Context, t Task) (Task, error) {
	if t.TaskID == "" {
		t.TaskID = c.newID()
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.CreatedAt == "" {
		t.CreatedAt = c.timestamp()
	}
	var out Task
	err := c.do(ctx, http.MethodPost, c.endpoint(nil, "tasks"), t, &out)
	return out, err
}

// ListTasks returns every task of every group.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	out := []Task{}
	err := c.do(ctx, http.MethodGet, c.endpoint(nil, "tasks"), nil, &out)
	return out, err
}

// GetTask returns the task, or nil when it does not exist.
func (c *Client) GetTask(ctx context.Context, taskID, groupID string) (*Task, error) {
	var out *Task
	err := c.do(ctx, http.MethodGet, c.endpoint(groupQuery(groupID), "tasks", taskID), nil, &out)
	return out, err
}

// UpdateTask rewrites the description, assignee and status of t. An empty
// status resets the task to pending.
func (c *Client) UpdateTask(ctx context.Context, t Task) (Task, error) {
	var out Task
	err := c.do(ctx, http.MethodPut, c.endpoint(groupQuery(t.GroupID), "tasks", t.TaskID), t, &out)
	return out, err
}

// DeleteTask removes the task.
func (c *Client) DeleteTask(ctx context.Context, taskID, groupID string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint(groupQuery(groupID), "tasks", taskID), nil, nil)
}
