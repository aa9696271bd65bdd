package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `showcase exposes a portfolio site: a testimonial carousel and a filterable project gallery.

Both are live controllers shared with the web front end. Changes made here show up for every viewer.

Carousel:
- carousel_state returns the current slide, slide count, autoplay flag and the slides.
- carousel_navigate moves by next, previous, first, last or goto (with index). Wrap-around applies to next and previous only.
- carousel_autoplay starts, stops or toggles autoplay.

Gallery:
- gallery_view returns the visible page and the active query.
- gallery_query changes only the fields you pass. Category and search reset to page one; sort keeps the page.
- get_project loads a single project by id.

Analytics:
- recent_events lists recent slide changes, gallery queries, project views and enrichment runs.

Docs:
- showcase://docs/overview
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "showcase://docs/overview",
		Name:        "docs_overview",
		Title:       "showcase overview",
		Description: "Carousel and gallery semantics: wrap-around, autoplay, filters, sort keys and paging.",
		Content: `# showcase overview

## Carousel

- Slides are indexed from 0. ` + "`next`" + ` after the last slide returns to 0; ` + "`previous`" + ` from 0 goes to the last slide.
- ` + "`goto`" + ` with an index outside the slide range fails with ` + "`OUT_OF_RANGE`" + ` and nothing changes.
- Every manual move restarts the autoplay timer, so the next automatic advance is a full interval away.
- Autoplay pauses while a pointer hovers the carousel and resumes on leave, unless it was stopped explicitly.

## Gallery

- Categories: ` + "`all`" + `, ` + "`web`" + `, ` + "`mobile`" + `, ` + "`design`" + `, ` + "`other`" + `.
- Sort keys: ` + "`date`" + ` (newest first), ` + "`name`" + `, ` + "`category`" + ` (then name), ` + "`stars`" + ` (most first).
- Search matches title, description and tags, case-insensitively.
- Pages hold six projects. Out-of-range pages are clamped; an empty result still reports one page.
- Unknown categories or sort keys fail with ` + "`INVALID_QUERY`" + ` and leave the query unchanged.

## Enrichment

When a GitHub username is configured, repository stars, forks, language and update time are merged into matching projects. Matching is by repository name taken from the project's repository URL.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
