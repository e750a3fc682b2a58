package http

import (
	"mime"
	"path/filepath"

	"github.com/freekieb7/pebble/filesystem"
)

// ServeStatic maps files under dirPath onto GET routePath/:filename. A
// missing file answers 404, a failed read 500, both with the reason phrase
// as body. Lookups never leave dirPath: the captured filename is reduced to
// its base name before joining.
func (r *Router) ServeStatic(dirPath, routePath string) {
	fs := filesystem.NewLocalFilesystem()

	r.GET(routePath+"/:filename", func(c *Context) Response {
		filename := c.Param("filename")
		if filename == "" {
			return c.SendString(StatusInternalServerError, StatusText(StatusInternalServerError))
		}

		path := filepath.Join(dirPath, filepath.Base(filename))

		isFile, err := fs.IsFile(path)
		if err != nil || !isFile {
			return c.SendString(StatusNotFound, StatusText(StatusNotFound))
		}

		content, err := fs.ReadFile(path)
		if err != nil {
			return c.SendString(StatusInternalServerError, StatusText(StatusInternalServerError))
		}

		c.Response.SetHeader("Content-Type", mimeType(filename))
		return c.SendString(StatusOK, string(content))
	})
}

func mimeType(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return "application/octet-stream"
}
