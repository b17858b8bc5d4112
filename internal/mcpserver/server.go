// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes maxlift tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/maxlift/internal/apperr"
	"github.com/starford/maxlift/internal/models"
	"github.com/starford/maxlift/internal/records"
)

// Server wraps the MCP server with maxlift tools.
type Server struct {
	mcp   *server.MCPServer
	store *records.Store
}

// New creates a new MCP server with all maxlift tools registered.
func New(store *records.Store, version string) *Server {
	s := &Server{store: store}

	s.mcp = server.NewMCPServer(
		"Maxlift",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_exercises",
		mcp.WithDescription("List all exercises with their current max and record count."),
	), s.listExercises)

	s.mcp.AddTool(mcp.NewTool("add_exercise",
		mcp.WithDescription("Create a custom exercise."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Display name, e.g. Front Squat")),
	), s.addExercise)

	s.mcp.AddTool(mcp.NewTool("delete_exercise",
		mcp.WithDescription("Delete an exercise together with all of its records."),
		mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID")),
	), s.deleteExercise)

	s.mcp.AddTool(mcp.NewTool("list_records",
		mcp.WithDescription("List an exercise's max records, oldest first."),
		mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID")),
	), s.listRecords)

	s.mcp.AddTool(mcp.NewTool("add_record",
		mcp.WithDescription("Log a max weight for an exercise. "+
			"Read the maxlift://storage-layout resource for field rules."),
		mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID")),
		mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted, greater than zero")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Calendar date, YYYY-MM-DD")),
		mcp.WithString("unit", mcp.Description("kg (default) or lbs"), mcp.Enum(string(models.UnitKg), string(models.UnitLbs))),
	), s.addRecord)

	s.mcp.AddTool(mcp.NewTool("delete_record",
		mcp.WithDescription("Delete a single max record."),
		mcp.WithString("record_id", mcp.Required(), mcp.Description("Record ID")),
	), s.deleteRecord)

	s.mcp.AddTool(mcp.NewTool("latest_max",
		mcp.WithDescription("Get the heaviest record of an exercise."),
		mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID")),
	), s.latestMax)

	s.mcp.AddTool(mcp.NewTool("get_progress",
		mcp.WithDescription("Get an exercise's progress series for charting."),
		mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID")),
	), s.getProgress)

	s.mcp.AddResource(
		mcp.NewResource(StorageLayoutURI, "Storage Layout",
			mcp.WithResourceDescription("Persisted JSON layout of exercises and records."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readStorageLayout,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}

func (s *Server) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries, err := s.store.Summaries(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(summaries), nil
}

func (s *Server) addExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in := models.NewExercise{Name: name}
	if err := in.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	e, err := s.store.AddExercise(ctx, in.Name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(e), nil
}

func (s *Server) deleteExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.store.DeleteExercise(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted exercise: %s", id)), nil
}

func (s *Server) listRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recs, err := s.store.ListRecordsForExercise(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(recs), nil
}

func (s *Server) addRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in := models.NewRecord{
		Weight: weight,
		Date:   date,
		Unit:   models.Unit(req.GetString("unit", "")),
	}
	if err := in.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if _, err := s.store.GetExercise(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("exercise not found: %s", id)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.store.AddRecord(ctx, id, in.Weight, in.Date, in.Unit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(rec), nil
}

func (s *Server) deleteRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("record_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.store.DeleteRecord(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted record: %s", id)), nil
}

func (s *Server) latestMax(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	best, ok, err := s.store.LatestMaxForExercise(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !ok {
		return mcp.NewToolResultText("no records found"), nil
	}
	return jsonResult(best), nil
}

func (s *Server) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	points, err := s.store.Progress(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(points), nil
}

func (s *Server) readStorageLayout(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      StorageLayoutURI,
			MIMEType: "text/markdown",
			Text:     StorageLayout,
		},
	}, nil
}
