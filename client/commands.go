package client

import (
	"context"
	"fmt"
)

// CommandKind enumerates the UI events the view understands.
type CommandKind int

const (
	CmdReload CommandKind = iota
	CmdNextPage
	CmdPrevPage
	CmdSelectCategory
	CmdSelectOrder
	CmdSearch
	CmdMoveViewport
	CmdOpenPost
	CmdEditPost
	CmdCreatePost
	CmdDeletePost
	CmdDeletePhoto
)

// Command is one UI event. Only the fields relevant to its Kind are read.
type Command struct {
	Kind CommandKind

	Category string
	Order    string
	Query    string
	Viewport *Bounds

	PostID  string
	PhotoID string

	Title       string
	Description string
	Price       float64

	Post     Post
	Files    []UploadFile
	Progress ProgressFunc
}

// DetailRenderer receives the post shown in the detail/modal view. A
// Renderer may optionally implement it.
type DetailRenderer interface {
	RenderDetail(post *Post)
}

// Dispatch applies one command to the view. Commands that change what
// is visible re-render through the Renderer; commands that resolve a
// single post feed it to the Renderer's RenderDetail when implemented.
func (v *View) Dispatch(ctx context.Context, cmd Command) error {
	switch cmd.Kind {
	case CmdReload:
		return v.Refresh(ctx, true)
	case CmdNextPage:
		return v.NextPage(ctx)
	case CmdPrevPage:
		return v.PrevPage(ctx)
	case CmdSelectCategory:
		return v.SetCategory(ctx, cmd.Category)
	case CmdSelectOrder:
		return v.SetOrder(ctx, cmd.Order)
	case CmdSearch:
		return v.Search(ctx, cmd.Query)
	case CmdMoveViewport:
		return v.SetViewport(ctx, cmd.Viewport)
	case CmdOpenPost:
		post, err := v.OpenPost(ctx, cmd.PostID)
		if err != nil {
			return err
		}
		v.renderDetail(post)
		return nil
	case CmdEditPost:
		post, err := v.EditPost(ctx, cmd.PostID, cmd.Title, cmd.Description, cmd.Price)
		if err != nil {
			return err
		}
		v.renderDetail(post)
		return nil
	case CmdCreatePost:
		return v.CreatePostWithPhotos(ctx, cmd.Post, cmd.Files, cmd.Progress)
	case CmdDeletePost:
		return v.RemovePost(ctx, cmd.PostID)
	case CmdDeletePhoto:
		post, err := v.RemovePhoto(ctx, cmd.PostID, cmd.PhotoID)
		if err != nil {
			return err
		}
		v.renderDetail(post)
		return nil
	default:
		return fmt.Errorf("client: unknown command %d", cmd.Kind)
	}
}

func (v *View) renderDetail(post *Post) {
	if d, ok := v.renderer.(DetailRenderer); ok {
		d.RenderDetail(post)
	}
}
