// Package admin holds shared helpers for the server-rendered admin pages.
package admin

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// RedirectMessage redirects to path with a URL-encoded success message.
func RedirectMessage(c *gin.Context, path, message string) {
	c.Redirect(http.StatusFound, path+"?message="+url.QueryEscape(message))
}

// RedirectError redirects to path with a URL-encoded error message. Form
// submission failures route back to the originating form this way instead of
// surfacing a raw error page.
func RedirectError(c *gin.Context, path string, err error) {
	c.Redirect(http.StatusFound, path+"?error="+url.QueryEscape(err.Error()))
}

// Flash extracts the message/error query parameters for template rendering.
func Flash(c *gin.Context) (message, errMsg string) {
	return c.Query("message"), c.Query("error")
}
