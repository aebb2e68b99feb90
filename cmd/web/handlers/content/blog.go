package content

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"diamondband.live/site/cmd/web/handlers/common"
	"diamondband.live/site/cmd/web/templates"
	"diamondband.live/site/internal/catalog"
	"diamondband.live/site/internal/db"
)

const relatedPosts = 3

func HandleBlogPage(p *common.Pages, cat *catalog.Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		pp, err := cat.Posts(c.Request().Context(), common.PageParam(c))
		if err != nil {
			slog.Error("blog: failed to list posts", "error", err)
			return common.ErrInternal("failed to load posts")
		}
		return common.Render(c, http.StatusOK, templates.Blog(templates.BlogView{
			Page:     p.Page(c, "News", "blog"),
			PostPage: pp,
		}))
	}
}

// HandleBlogPost renders one published post. Drafts and scheduled posts 404.
func HandleBlogPost(p *common.Pages, cat *catalog.Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		post, err := cat.Post(ctx, c.Param("slug"))
		if err != nil {
			if db.IsNotFound(err) {
				return common.ErrNotFound("post not found")
			}
			slog.Error("blog: failed to load post", "slug", c.Param("slug"), "error", err)
			return common.ErrInternal("failed to load post")
		}

		latest, err := cat.LatestPosts(ctx, relatedPosts+1)
		if err != nil {
			slog.Warn("blog: latest posts unavailable", "error", err)
		}
		related := make([]*db.BlogPost, 0, relatedPosts)
		for _, lp := range latest {
			if lp.Slug != post.Slug && len(related) < relatedPosts {
				related = append(related, lp)
			}
		}

		page := p.Page(c, post.Title, "blog")
		page.Description = post.Excerpt
		return common.Render(c, http.StatusOK, templates.BlogPost(templates.PostView{
			Page:   page,
			Post:   post,
			Latest: related,
		}))
	}
}
