/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package serve provides the serve command for mishtanim.
//
// serve speaks the Model Context Protocol over stdio, so editor agents
// can import token files, preview plans, and browse collections
// without shelling out to the CLI. Stdout carries the protocol, so all
// logging is silenced for the lifetime of the server.
package serve

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"bennypowers.dev/mishtanim/cmd/backend"
	"bennypowers.dev/mishtanim/cmd/render"
	"bennypowers.dev/mishtanim/config"
	"bennypowers.dev/mishtanim/fs"
	"bennypowers.dev/mishtanim/host"
	"bennypowers.dev/mishtanim/host/figma"
	"bennypowers.dev/mishtanim/importer"
	"bennypowers.dev/mishtanim/internal/logger"
	"bennypowers.dev/mishtanim/internal/version"
	"bennypowers.dev/mishtanim/parser"
	"bennypowers.dev/mishtanim/snapshot"
	"bennypowers.dev/mishtanim/token"
)

// Cmd is the serve cobra command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve token import tools over the Model Context Protocol",
	Long: `Serve token import tools over the Model Context Protocol on stdio.

Tools:
  import_tokens     import a token file or inline tokens
  plan_tokens       preview what an import would change
  list_collections  list the file's collections and variables

File paths supplied by clients resolve under the server root and cannot
escape it.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().String("root", ".", "Directory client-supplied paths resolve under")
}

func run(cmd *cobra.Command, args []string) error {
	rootFlag, _ := cmd.Flags().GetString("root")
	root, err := filepath.Abs(rootFlag)
	if err != nil {
		return fmt.Errorf("failed to resolve root %s: %w", rootFlag, err)
	}

	// Stdout is the protocol channel.
	logger.SetOutput(io.Discard)

	filesystem := fs.NewOSFileSystem()
	store, err := snapshot.Open()
	if err != nil {
		store = nil
	}

	s := &server{
		root:  root,
		fs:    filesystem,
		cfg:   config.LoadOrDefault(filesystem, root),
		store: store,
	}

	srv := mcp.NewServer(&mcp.Implementation{Name: "mishtanim", Version: version.Get()}, nil)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "import_tokens",
		Description: "Import a token file or inline tokens into the design file's variable collections",
	}, s.importTokens)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "plan_tokens",
		Description: "Preview what importing a token file would change, without writing anything",
	}, s.planTokens)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_collections",
		Description: "List the design file's variable collections and their variables",
	}, s.listCollections)

	return srv.Run(cmd.Context(), &mcp.StdioTransport{})
}

// server holds the state shared by every tool call: the path sandbox
// root and one lazily built live host, so repeated calls reuse the
// client's snapshot cache.
type server struct {
	root  string
	fs    fs.FileSystem
	cfg   *config.Config
	store *snapshot.Store

	mu      sync.Mutex
	host    *figma.Host
	fileKey string
}

// live returns the shared REST host, building it on first use.
func (s *server) live() (*figma.Host, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.host == nil {
		h, key, err := backend.Live(s.cfg)
		if err != nil {
			return nil, "", err
		}
		s.host, s.fileKey = h, key
	}
	return s.host, s.fileKey, nil
}

type tokenItem struct {
	Name  string `json:"name" jsonschema:"the token name"`
	Value any    `json:"value" jsonschema:"the token value: hex color string, number, boolean, or string"`
}

type importArgs struct {
	Path   string      `json:"path,omitempty" jsonschema:"token file path relative to the server root"`
	Title  string      `json:"title,omitempty" jsonschema:"collection title override"`
	Items  []tokenItem `json:"items,omitempty" jsonschema:"inline tokens to import instead of a file"`
	DryRun bool        `json:"dryRun,omitempty" jsonschema:"preview against an in-memory copy of the file"`
}

type importResult struct {
	Summaries []*importer.Summary `json:"summaries"`
}

func (s *server) importTokens(ctx context.Context, req *mcp.CallToolRequest, args importArgs) (*mcp.CallToolResult, importResult, error) {
	sets, err := s.loadSets(args.Path, args.Title, args.Items)
	if err != nil {
		return nil, importResult{}, err
	}

	var h host.Host
	if args.DryRun {
		h, err = backend.DryRun(ctx, s.cfg, s.store)
	} else {
		h, _, err = s.live()
	}
	if err != nil {
		return nil, importResult{}, err
	}

	imp := importer.New(h)
	var buf bytes.Buffer
	var result importResult
	var failures int
	for _, set := range sets {
		summary, err := imp.Import(ctx, set)
		if err != nil {
			fmt.Fprintf(&buf, "Error importing %s: %v\n", set.Title, err)
			failures++
			continue
		}
		backend.PrintSummary(&buf, summary)
		result.Summaries = append(result.Summaries, summary)
	}
	if failures == len(sets) {
		return nil, importResult{}, fmt.Errorf("failed to import %d set(s)", failures)
	}

	return textResult(buf.String()), result, nil
}

type planArgs struct {
	Path    string      `json:"path,omitempty" jsonschema:"token file path relative to the server root"`
	Title   string      `json:"title,omitempty" jsonschema:"collection title override"`
	Items   []tokenItem `json:"items,omitempty" jsonschema:"inline tokens to plan instead of a file"`
	Offline bool        `json:"offline,omitempty" jsonschema:"plan against the cached snapshot instead of the network"`
}

type planChange struct {
	Name   string `json:"name"`
	Action string `json:"action"`
	Value  string `json:"value,omitempty"`
	Old    string `json:"oldValue,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type planSummary struct {
	Collection    string       `json:"collection"`
	NewCollection bool         `json:"newCollection"`
	Create        int          `json:"create"`
	Update        int          `json:"update"`
	Unchanged     int          `json:"unchanged"`
	Skip          int          `json:"skip"`
	Changes       []planChange `json:"changes"`
}

type planResult struct {
	Plans []planSummary `json:"plans"`
}

func (s *server) planTokens(ctx context.Context, req *mcp.CallToolRequest, args planArgs) (*mcp.CallToolResult, planResult, error) {
	sets, err := s.loadSets(args.Path, args.Title, args.Items)
	if err != nil {
		return nil, planResult{}, err
	}

	var h host.Host
	if args.Offline {
		key, err := backend.FileKey(s.cfg)
		if err != nil {
			return nil, planResult{}, err
		}
		h, err = backend.Offline(s.store, key)
		if err != nil {
			return nil, planResult{}, err
		}
	} else {
		live, key, err := s.live()
		if err != nil {
			return nil, planResult{}, err
		}
		h = live
		defer backend.Refresh(ctx, s.store, key, live)
	}

	imp := importer.New(h)
	var buf bytes.Buffer
	var result planResult
	for _, set := range sets {
		p, err := imp.Plan(ctx, set)
		if err != nil {
			return nil, planResult{}, fmt.Errorf("failed to plan %s: %w", set.Title, err)
		}
		summary := planSummary{
			Collection:    p.Collection,
			NewCollection: p.NewCollection,
		}
		summary.Create, summary.Update, summary.Unchanged, summary.Skip = p.Counts()
		for _, c := range p.Changes {
			summary.Changes = append(summary.Changes, planChange{
				Name:   c.Name,
				Action: c.Action.String(),
				Value:  render.DisplayValue(c.Value),
				Old:    render.DisplayValue(c.OldValue),
				Reason: c.Reason,
			})
		}
		result.Plans = append(result.Plans, summary)
		fmt.Fprintf(&buf, "%s: %d to create, %d to update, %d unchanged, %d skipped\n",
			summary.Collection, summary.Create, summary.Update, summary.Unchanged, summary.Skip)
	}

	return textResult(buf.String()), result, nil
}

type listArgs struct {
	Filter string `json:"filter,omitempty" jsonschema:"only include variables whose name contains this substring"`
}

type listResult struct {
	Collections []render.JSONCollection `json:"collections"`
}

func (s *server) listCollections(ctx context.Context, req *mcp.CallToolRequest, args listArgs) (*mcp.CallToolResult, listResult, error) {
	live, _, err := s.live()
	if err != nil {
		return nil, listResult{}, err
	}

	collections, err := live.Collections(ctx)
	if err != nil {
		return nil, listResult{}, err
	}

	var buf bytes.Buffer
	result := listResult{Collections: []render.JSONCollection{}}
	for _, c := range collections {
		variables, err := live.Variables(ctx, c.ID)
		if err != nil {
			return nil, listResult{}, fmt.Errorf("failed to list variables in %s: %w", c.Name, err)
		}
		if args.Filter != "" {
			variables = filterByName(variables, args.Filter)
			if len(variables) == 0 {
				continue
			}
		}
		result.Collections = append(result.Collections, render.CollectionJSON(c, variables))
		fmt.Fprintf(&buf, "%s: %d variables\n", c.Name, len(variables))
	}

	return textResult(buf.String()), result, nil
}

// loadSets resolves a tool call's input to token sets: either a file
// under the server root, or inline items.
func (s *server) loadSets(path, title string, items []tokenItem) ([]*token.Set, error) {
	switch {
	case path == "" && len(items) == 0:
		return nil, fmt.Errorf("pass a path or inline items")
	case path != "" && len(items) > 0:
		return nil, fmt.Errorf("pass a path or inline items, not both")
	}

	if len(items) > 0 {
		set := &token.Set{Title: title}
		if set.Title == "" {
			set.Title = "Imported Tokens"
		}
		for _, item := range items {
			set.Items = append(set.Items, token.Token{Name: item.Name, Value: item.Value})
		}
		return []*token.Set{set}, nil
	}

	// Client paths must stay inside the server root.
	joined, err := securejoin.SecureJoin(s.root, path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	return parser.ParseFile(s.fs, joined, parser.Options{
		Title:     title,
		CSSColors: s.cfg.CSSColors,
	})
}

// filterByName keeps variables whose name contains the substring,
// ignoring case.
func filterByName(variables []*host.Variable, filter string) []*host.Variable {
	needle := strings.ToLower(filter)
	kept := make([]*host.Variable, 0, len(variables))
	for _, v := range variables {
		if strings.Contains(strings.ToLower(v.Name), needle) {
			kept = append(kept, v)
		}
	}
	return kept
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
