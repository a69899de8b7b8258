// Package tools defines the tools exposed by the MemeMania server.
package tools

import (
	"context"

	"github.com/timmy/mememania/internal/domain"
	"github.com/timmy/mememania/internal/mcp"
)

const (
	AppName        = "MemeMania"
	AppDescription = "A server which gives you latest trending memes from reddit"

	DefaultMemeCount = 3
	MaxMemeCount     = 5
)

// MemeGetter is the part of the meme service used by get_memes.
type MemeGetter interface {
	GetMemes(ctx context.Context, count int) (*domain.MemeBatchResult, error)
}

// AboutResult describes the server.
type AboutResult struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GetMemesArgs are the arguments of get_memes.
type GetMemesArgs struct {
	Count int `json:"count,omitempty" jsonschema:"description=Number of memes to fetch,minimum=1,maximum=5,default=3" validate:"min=1,max=5"`
}

// NewAboutTool returns the about tool. It always returns the same record.
func NewAboutTool() mcp.Tool {
	return mcp.NewFuncTool("about", "Describe this server", mcp.NoArgs{},
		func(ctx context.Context, _ mcp.NoArgs) (*AboutResult, error) {
			return &AboutResult{Name: AppName, Description: AppDescription}, nil
		})
}

// NewValidateTool returns the validate tool, which echoes the configured caller id.
func NewValidateTool(callerID string) mcp.Tool {
	return mcp.NewFuncTool("validate", "Return the caller identifier of this deployment", mcp.NoArgs{},
		func(ctx context.Context, _ mcp.NoArgs) (string, error) {
			return callerID, nil
		})
}

// NewGetMemesTool returns the get_memes tool backed by svc.
func NewGetMemesTool(svc MemeGetter) mcp.Tool {
	return mcp.NewFuncTool("get_memes", "Fetch trending memes from Reddit", GetMemesArgs{Count: DefaultMemeCount},
		func(ctx context.Context, args GetMemesArgs) (*domain.MemeBatchResult, error) {
			return svc.GetMemes(ctx, args.Count)
		})
}

// NewRegistry registers about, validate and get_memes.
func NewRegistry(callerID string, svc MemeGetter) *mcp.Registry {
	r := mcp.NewRegistry()
	r.MustRegister(
		NewAboutTool(),
		NewValidateTool(callerID),
		NewGetMemesTool(svc),
	)
	return r
}
