package cli

import (
	"fmt"

	"github.com/julianstephens/planhub/internal/models"
)

type ResourceCmd struct {
	Add    ResourceAddCmd    `cmd:"" help:"Bookmark a learning resource."`
	List   ResourceListCmd   `cmd:"" help:"List resources."`
	Toggle ResourceToggleCmd `cmd:"" help:"Toggle a resource's completed flag."`
	Delete ResourceDeleteCmd `cmd:"" help:"Delete a resource."`
}

type ResourceAddCmd struct {
	URL   string `arg:"" help:"Resource URL."`
	Title string `short:"t" help:"Title (defaults to 'Untitled Resource')."`
}

func (c *ResourceAddCmd) Run(ctx *Context) error {
	r, ok := ctx.Resources.AddResource(c.URL, c.Title)
	if !ok {
		fmt.Fprintln(ctx.Out, "URL is empty; nothing added.")
		return nil
	}
	fmt.Fprintf(ctx.Out, "Added %s %d: %s\n", r.Type, r.ID, r.Title)
	return nil
}

type ResourceListCmd struct {
	Type string `help:"Only show one type (video|course)."`
}

func (c *ResourceListCmd) Run(ctx *Context) error {
	switch models.ResourceType(c.Type) {
	case "", models.ResourceVideo, models.ResourceCourse:
	default:
		return fmt.Errorf("invalid type %q (expected video or course)", c.Type)
	}

	var rs []models.Resource
	for _, r := range ctx.Store.Resources() {
		if c.Type == "" || string(r.Type) == c.Type {
			rs = append(rs, r)
		}
	}
	if len(rs) == 0 {
		fmt.Fprintln(ctx.Out, "No resources found.")
		return nil
	}
	printResources(ctx.Out, rs)
	return nil
}

type ResourceToggleCmd struct {
	ID string `arg:"" help:"Resource ID."`
}

func (c *ResourceToggleCmd) Run(ctx *Context) error {
	id, err := ParseID(c.ID)
	if err != nil {
		return err
	}
	if !ctx.Resources.ToggleResource(id) {
		return ctx.notFound("resource", id)
	}
	r, _ := ctx.Store.Resource(id)
	state := "open"
	if r.Completed {
		state = "done"
	}
	fmt.Fprintf(ctx.Out, "Resource %d is now %s.\n", id, state)
	return nil
}

type ResourceDeleteCmd struct {
	ID string `arg:"" help:"Resource ID."`
}

func (c *ResourceDeleteCmd) Run(ctx *Context) error {
	id, err := ParseID(c.ID)
	if err != nil {
		return err
	}
	if !ctx.Resources.DeleteResource(id) {
		return ctx.notFound("resource", id)
	}
	fmt.Fprintf(ctx.Out, "Deleted resource %d.\n", id)
	return nil
}
