// Package mcp exposes the loaded match files to MCP clients over stdio.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"ezpanso/internal/application"
	"ezpanso/internal/domain"
	"ezpanso/internal/ports"
)

// RegisterReadTools adds all read-only snippet tools to the MCP server.
// The index may be nil, in which case search scans the loaded files.
func RegisterReadTools(s *server.MCPServer, sess *application.Session, idx ports.SnippetIndex) {
	s.AddTool(listFilesTool(), listFilesHandler(sess))
	s.AddTool(listMatchesTool(), listMatchesHandler(sess))
	s.AddTool(searchTool(), searchHandler(sess, idx))
}

// --- list_files ---

func listFilesTool() mcp.Tool {
	return mcp.NewTool("list_files",
		mcp.WithDescription("List the loaded Espanso match files with their match counts and unsaved-change markers."),
	)
}

func listFilesHandler(sess *application.Session) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		files := sess.Files()
		if len(files) == 0 {
			return mcp.NewToolResultText("No match files loaded."), nil
		}

		var sb strings.Builder
		for _, f := range files {
			marker := ""
			if f.Dirty {
				marker = "  [unsaved]"
			}
			fmt.Fprintf(&sb, "%s  %d matches%s\n", f.DisplayName(), len(f.Matches), marker)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_matches ---

func listMatchesTool() mcp.Tool {
	return mcp.NewTool("list_matches",
		mcp.WithDescription("List the matches of one file. Triggers and replacements are shown with \\n and \\t escapes."),
		mcp.WithString("file",
			mcp.Description("File display name (e.g. base, or 'my-pkg (package)'). Omit for the active file."),
		),
	)
}

func listMatchesHandler(sess *application.Session) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("file", "")
		if name != "" {
			file := sess.FileByDisplayName(name)
			if file == nil {
				return toolError(fmt.Errorf("file %q: %w", name, application.ErrNotFound))
			}
			if err := sess.SetActive(file.Path); err != nil {
				return toolError(err)
			}
		}

		rows := sess.Rows("")
		if len(rows) == 0 {
			return mcp.NewToolResultText("No matches in this file."), nil
		}

		var sb strings.Builder
		for _, r := range rows {
			flag := ""
			if r.Complex {
				flag = "  [complex]"
			}
			fmt.Fprintf(&sb, "%s  →  %s%s\n", r.Trigger, r.Replace, flag)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search all match files by keyword, matching triggers and replacements case-insensitively."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
	)
}

func searchHandler(sess *application.Session, idx ports.SnippetIndex) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		var results []domain.IndexedMatch
		if idx != nil {
			var err error
			results, err = idx.Search(query)
			if err != nil {
				return toolError(err)
			}
		} else {
			results = scanLoadedFiles(sess, query)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			name := r.FileName
			if name == "" {
				name = domain.DisplayNameForPath(r.FilePath)
			}
			fmt.Fprintf(&sb, "%s  %s  →  %s\n",
				name,
				domain.DisplayValue(r.Trigger),
				domain.Preview(r.Replace, 60),
			)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// scanLoadedFiles searches the in-memory session when no index is available
func scanLoadedFiles(sess *application.Session, query string) []domain.IndexedMatch {
	var results []domain.IndexedMatch
	for _, f := range sess.Files() {
		for _, m := range domain.FilterMatches(f.Matches, query) {
			results = append(results, domain.IndexedMatch{
				FilePath: f.Path,
				FileName: f.DisplayName(),
				Trigger:  m.Trigger,
				Replace:  m.Replace,
				Complex:  m.IsComplex(),
			})
		}
	}
	return results
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
