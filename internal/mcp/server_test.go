package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ldi/tasker/internal/store"
	"github.com/ldi/tasker/internal/tasks"
	"github.com/ldi/tasker/pkg/models"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*tasks.Manager, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m, err := tasks.NewManager(context.Background(), s, logger)
	require.NoError(t, err)
	return m, s
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "tool %s not registered", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	return result.Content[0].(mcp.TextContent).Text
}

func TestServerInitialization(t *testing.T) {
	m, _ := newTestManager(t)
	s := NewServer(m)
	stdio := server.NewStdioServer(s)

	r, w := io.Pipe()
	stdout := &bytes.Buffer{}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go func() {
		_ = stdio.Listen(ctx, r, stdout)
	}()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}

	rawReq := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "initialize",
		"params":  initReq.Params,
	}

	data, err := json.Marshal(rawReq)
	require.NoError(t, err)
	w.Write(data)
	w.Write([]byte("\n"))

	// Give it a moment to process
	time.Sleep(200 * time.Millisecond)
	require.NotZero(t, stdout.Len(), "expected response from server")

	var resp struct {
		ID     int `json:"id"`
		Result struct {
			ServerInfo struct {
				Name string `json:"name"`
			} `json:"serverInfo"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp), stdout.String())
	assert.Equal(t, 1, resp.ID)
	assert.Equal(t, "Tasker", resp.Result.ServerInfo.Name)
}

func TestToolHandlers(t *testing.T) {
	m, st := newTestManager(t)
	s := NewServer(m)

	t.Run("add_task", func(t *testing.T) {
		result := callTool(t, s, "add_task", map[string]any{
			"description": "Buy milk",
			"due_date":    "2024-01-01",
			"priority":    "high",
		})
		require.False(t, result.IsError, resultText(t, result))

		var task models.Task
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &task))
		assert.Equal(t, 1, task.ID)
		require.NotNil(t, task.DueDate)
		assert.Equal(t, "2024-01-01", *task.DueDate)
		assert.Equal(t, 1, st.Saves())
	})

	t.Run("add_task defaults", func(t *testing.T) {
		result := callTool(t, s, "add_task", map[string]any{"description": "Read"})
		require.False(t, result.IsError)

		var task models.Task
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &task))
		assert.Equal(t, 2, task.ID)
		assert.Nil(t, task.DueDate)
		assert.Equal(t, models.DefaultPriority, task.Priority)
	})

	t.Run("add_task empty priority", func(t *testing.T) {
		result := callTool(t, s, "add_task", map[string]any{"description": "Nap", "priority": ""})
		require.False(t, result.IsError)

		var task models.Task
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &task))
		assert.Equal(t, 3, task.ID)
		assert.Equal(t, "", task.Priority)
	})

	t.Run("list_tasks", func(t *testing.T) {
		result := callTool(t, s, "list_tasks", nil)
		require.False(t, result.IsError)

		var payload struct {
			Tasks []*models.Task `json:"tasks"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))
		require.Len(t, payload.Tasks, 3)
		assert.Equal(t, "Buy milk", payload.Tasks[0].Description)
		assert.Equal(t, "Read", payload.Tasks[1].Description)
		assert.Equal(t, "Nap", payload.Tasks[2].Description)
	})

	t.Run("get_task", func(t *testing.T) {
		result := callTool(t, s, "get_task", map[string]any{"id": float64(2)})
		require.False(t, result.IsError)
		assert.Contains(t, resultText(t, result), `"description":"Read"`)

		result = callTool(t, s, "get_task", map[string]any{"id": float64(42)})
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "Task 42 not found")
	})

	t.Run("complete_task", func(t *testing.T) {
		saves := st.Saves()
		result := callTool(t, s, "complete_task", map[string]any{"id": float64(1)})
		require.False(t, result.IsError)
		assert.Equal(t, "Task 1 marked as completed.", resultText(t, result))

		task, ok := m.GetTaskByID(1)
		require.True(t, ok)
		assert.True(t, task.Completed)
		assert.Equal(t, saves+1, st.Saves())

		result = callTool(t, s, "complete_task", map[string]any{"id": float64(99)})
		assert.True(t, result.IsError)
		assert.Equal(t, saves+1, st.Saves())
	})
}
