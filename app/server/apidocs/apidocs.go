package apidocs

import (
	"bytes"
	"fmt"
	"github.com/labstack/echo/v4"
	"html/template"
	"net/http"
	"path"
)

type Opts func(*config)

// configures the Doc middlewares
type config struct {
	// Title of the viewer page
	Title string
	// SpecURL the url to find the spec for
	SpecURL string
}

func WithTitle(title string) Opts {
	return func(c *config) {
		c.Title = title
	}
}

func prepare(cfg *config) string {
	tmpl := template.Must(template.New("apidoc").Parse(pageTemplate))
	buf := bytes.NewBuffer(nil)
	_ = tmpl.Execute(buf, cfg)
	return buf.String()
}

// Doc creates a middleware serving the viewer at docPath and the OpenAPI
// document at docPath/apispec.json.
func Doc(docPath string, apiJSON []byte, opts ...Opts) echo.MiddlewareFunc {
	cfg := &config{
		Title:   "API documentation",
		SpecURL: path.Join(docPath, "apispec.json"),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	uiHTML := prepare(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch reqPath := c.Request().URL.Path; reqPath {
			case docPath, docPath + "/":
				return c.HTML(http.StatusOK, uiHTML)
			case cfg.SpecURL:
				return c.JSONBlob(http.StatusOK, apiJSON)
			default:
				if next == nil {
					return c.String(http.StatusNotFound, fmt.Sprintf("%q not found", reqPath))
				}
				return next(c)
			}
		}
	}
}

const pageTemplate = `
<!DOCTYPE html>
<html lang="zh">
  <head>
    <title>{{ .Title }}</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>

  <body>
    <script id="api-reference" data-url="{{ .SpecURL }}"></script>

    <script src="https://cdnjs.cloudflare.com/ajax/libs/scalar-api-reference/1.25.99/standalone.min.js" integrity="sha512-ai3lOYZ5efNXMYwnqhz0mnCaImbqfwLE1VCx9Y9nhB3OJX4/uegjIAoQtJHy3SILHp/gS1OlPCIeNFPZT5i2WQ==" crossorigin="anonymous" referrerpolicy="no-referrer"></script>
  </body>
</html>`
