package handlers

import (
	"html/template"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/handsoff/console/internal/middleware"
)

// render executes a page template with the data every layout needs.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	session := middleware.GetSession(c)
	if session != nil {
		data["User"] = session.User
		data["Authenticated"] = session.IsAuthenticated()
	}
	data["Flashes"] = middleware.Flashes(c)
	data["Path"] = c.Request.URL.Path

	c.HTML(status, name, data)
}

// parseID reads a positive numeric path parameter. On failure it answers
// 404 and returns false.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		notFound(c)
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}

// Pager is the prev/next navigation under a paged table.
type Pager struct {
	Page       int
	TotalPages int
	Prev       template.URL
	Next       template.URL
}

// newPager builds page links on path that keep the filters in values.
func newPager(path string, values url.Values, page, totalPages int) *Pager {
	if totalPages < 1 {
		totalPages = 1
	}
	p := &Pager{Page: page, TotalPages: totalPages}
	link := func(n int) template.URL {
		v := url.Values{}
		for k, vals := range values {
			for _, val := range vals {
				if val != "" {
					v.Add(k, val)
				}
			}
		}
		v.Set("page", strconv.Itoa(n))
		return template.URL(path + "?" + v.Encode())
	}
	if page > 1 {
		p.Prev = link(page - 1)
	}
	if page < totalPages {
		p.Next = link(page + 1)
	}
	return p
}

func totalPages(total int64, pageSize int) int {
	if pageSize < 1 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
