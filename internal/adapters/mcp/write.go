package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ezpanso/internal/application"
	"ezpanso/internal/application/commands"
)

// RegisterWriteTools adds all mutating snippet tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, sess *application.Session) {
	s.AddTool(addMatchTool(), addMatchHandler(sess))
	s.AddTool(updateMatchTool(), updateMatchHandler(sess))
	s.AddTool(deleteMatchTool(), deleteMatchHandler(sess))
	s.AddTool(saveTool(), saveHandler(sess))
	s.AddTool(newFileTool(), newFileHandler(sess))
	s.AddTool(deleteFileTool(), deleteFileHandler(sess))
}

// --- add_match ---

func addMatchTool() mcp.Tool {
	return mcp.NewTool("add_match",
		mcp.WithDescription("Add a simple trigger/replace match to a file. Use \\n and \\t for newlines and tabs. Changes stay in memory until save."),
		mcp.WithString("file",
			mcp.Description("File display name. Omit for the active file."),
		),
		mcp.WithString("trigger",
			mcp.Description("Trigger text (e.g. :sig)"),
			mcp.Required(),
		),
		mcp.WithString("replace",
			mcp.Description("Replacement text"),
			mcp.Required(),
		),
	)
}

func addMatchHandler(sess *application.Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAddMatchCommand(sess,
			req.GetString("file", ""),
			req.GetString("trigger", ""),
			req.GetString("replace", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- update_match ---

func updateMatchTool() mcp.Tool {
	return mcp.NewTool("update_match",
		mcp.WithDescription("Update the trigger and replacement of a simple match, located by its current trigger. Matches with extra YAML fields are refused."),
		mcp.WithString("file",
			mcp.Description("File display name. Omit for the active file."),
		),
		mcp.WithString("trigger",
			mcp.Description("Current trigger of the match to update"),
			mcp.Required(),
		),
		mcp.WithString("new_trigger",
			mcp.Description("New trigger text"),
			mcp.Required(),
		),
		mcp.WithString("new_replace",
			mcp.Description("New replacement text"),
			mcp.Required(),
		),
	)
}

func updateMatchHandler(sess *application.Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewUpdateMatchCommand(sess,
			req.GetString("file", ""),
			req.GetString("trigger", ""),
			req.GetString("new_trigger", ""),
			req.GetString("new_replace", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_match ---

func deleteMatchTool() mcp.Tool {
	return mcp.NewTool("delete_match",
		mcp.WithDescription("Delete matches from a file by trigger. Changes stay in memory until save."),
		mcp.WithString("file",
			mcp.Description("File display name. Omit for the active file."),
		),
		mcp.WithString("triggers",
			mcp.Description("Comma-separated triggers to delete"),
			mcp.Required(),
		),
	)
}

func deleteMatchHandler(sess *application.Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var triggers []string
		for _, t := range strings.Split(req.GetString("triggers", ""), ",") {
			if t = strings.TrimSpace(t); t != "" {
				triggers = append(triggers, t)
			}
		}

		cmd := commands.NewDeleteMatchesCommand(sess, req.GetString("file", ""), triggers)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- save ---

func saveTool() mcp.Tool {
	return mcp.NewTool("save",
		mcp.WithDescription("Write every file with unsaved changes back to disk."),
	)
}

func saveHandler(sess *application.Session) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewSaveAllCommand(sess).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Result.Failed) > 0 {
			var sb strings.Builder
			sb.WriteString(result.Message)
			for _, f := range result.Result.Failed {
				fmt.Fprintf(&sb, "\n%s: %v", f.Path, f.Err)
			}
			return mcp.NewToolResultError(sb.String()), nil
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- new_file ---

func newFileTool() mcp.Tool {
	return mcp.NewTool("new_file",
		mcp.WithDescription("Create a new match file under the loaded directory, seeded with a template match."),
		mcp.WithString("name",
			mcp.Description("File name (.yml appended when no extension is given)"),
			mcp.Required(),
		),
	)
}

func newFileHandler(sess *application.Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewNewFileCommand(sess, req.GetString("name", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_file ---

func deleteFileTool() mcp.Tool {
	return mcp.NewTool("delete_file",
		mcp.WithDescription("Delete a match file from disk. This is immediate and cannot be undone."),
		mcp.WithString("file",
			mcp.Description("File display name"),
			mcp.Required(),
		),
	)
}

func deleteFileHandler(sess *application.Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewDeleteFileCommand(sess, req.GetString("file", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
