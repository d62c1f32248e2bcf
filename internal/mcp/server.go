package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ldi/tasker/internal/tasks"
	"github.com/ldi/tasker/pkg/models"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates a new MCP server exposing the task manager as tools.
func NewServer(manager *tasks.Manager) *server.MCPServer {
	s := server.NewMCPServer("Tasker", "0.1.0")

	s.AddTool(mcp.NewTool("add_task",
		mcp.WithDescription("Add a new pending task. The task list is saved immediately."),
		mcp.WithString("description", mcp.Description("Task description"), mcp.Required()),
		mcp.WithString("due_date", mcp.Description("Optional due date, e.g. 2024-08-10")),
		mcp.WithString("priority", mcp.Description("Priority label (defaults to 'medium')")),
	), addTaskHandler(manager))

	s.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List all tasks in the order they were added."),
	), listTasksHandler(manager))

	s.AddTool(mcp.NewTool("get_task",
		mcp.WithDescription("Get a single task by id."),
		mcp.WithNumber("id", mcp.Description("Task id"), mcp.Required()),
	), getTaskHandler(manager))

	s.AddTool(mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a task as completed. Completed tasks cannot be reopened."),
		mcp.WithNumber("id", mcp.Description("Task id"), mcp.Required()),
	), completeTaskHandler(manager))

	return s
}

// Serve starts the MCP server on stdio.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func addTaskHandler(manager *tasks.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		description := mcp.ParseString(request, "description", "")
		priority := mcp.ParseString(request, "priority", models.DefaultPriority)

		var dueDate *string
		args, _ := request.Params.Arguments.(map[string]any)
		if due, ok := args["due_date"].(string); ok {
			dueDate = &due
		}

		t, err := manager.AddTask(ctx, description, dueDate, priority)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return taskResult(t)
	}
}

func listTasksHandler(manager *tasks.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := json.Marshal(map[string]interface{}{"tasks": manager.Tasks()})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(string(data)), nil
	}
}

func getTaskHandler(manager *tasks.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := mcp.ParseInt(request, "id", 0)

		t, ok := manager.GetTaskByID(id)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("Task %d not found", id)), nil
		}

		return taskResult(t)
	}
}

func completeTaskHandler(manager *tasks.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := mcp.ParseInt(request, "id", 0)

		done, err := manager.MarkTaskCompleted(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !done {
			return mcp.NewToolResultError(fmt.Sprintf("Task %d not found", id)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Task %d marked as completed.", id)), nil
	}
}

func taskResult(t *models.Task) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
