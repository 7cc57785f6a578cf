package routes

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/BindingStudio/internal/config"
)

const docsIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    :root {
      color-scheme: light;
      --bg: #f4f6fb;
      --text: #0f1a2e;
      --muted: #4f5b73;
      --accent: #2563eb;
      --border: #d6dbe6;
      --code-bg: #0f172a;
      --code-text: #e2e8f0;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: system-ui, -apple-system, "Segoe UI", sans-serif;
      color: var(--text);
      background: var(--bg);
    }
    main {
      max-width: 1040px;
      margin: 0 auto;
      padding: 40px 20px 64px;
    }
    .panel {
      background: #fff;
      border: 1px solid var(--border);
      border-radius: 14px;
      padding: 24px;
      margin-bottom: 20px;
    }
    h1 { margin: 0 0 10px; font-size: 2.2rem; }
    h2 {
      margin: 0 0 12px;
      font-size: 0.9rem;
      text-transform: uppercase;
      letter-spacing: 0.08em;
      color: var(--muted);
    }
    p { color: var(--muted); line-height: 1.6; }
    .button {
      display: inline-block;
      padding: 10px 16px;
      border-radius: 999px;
      background: var(--accent);
      color: #fff;
      text-decoration: none;
      font-weight: 600;
      margin-right: 8px;
    }
    table { width: 100%; border-collapse: collapse; }
    td { padding: 8px 6px; border-top: 1px solid var(--border); vertical-align: top; }
    td:first-child { white-space: nowrap; font-family: ui-monospace, monospace; }
    img { max-width: 100%; border: 1px solid var(--border); border-radius: 10px; }
    pre {
      margin: 0;
      padding: 20px;
      overflow: auto;
      border-radius: 12px;
      background: var(--code-bg);
      color: var(--code-text);
      font-size: 0.88rem;
      line-height: 1.5;
    }
  </style>
</head>
<body>
  <main>
    <section class="panel">
      <h1>{{ .Title }}</h1>
      <p>The OpenAPI document is served from <code>/docs/openapi.yaml</code>. This page is only exposed in development.</p>
      <a class="button" href="/docs/openapi.yaml">Open Raw Spec</a>
      <a class="button" href="/docs/openapi.yaml" download="openapi.yaml">Download YAML</a>
    </section>
    <section class="panel">
      <h2>Endpoints</h2>
      <table>
        {{ range .Endpoints }}<tr><td>{{ .Route }}</td><td>{{ .Summary }}</td></tr>
        {{ end }}
      </table>
    </section>
    <section class="panel">
      <h2>Default preview</h2>
      <img src="/api/render/image" alt="Default binding layout" width="800" height="400">
    </section>
    <section class="panel">
      <h2>Spec loaded {{ .LoadedAt }}</h2>
      <pre>{{ .Spec }}</pre>
    </section>
  </main>
</body>
</html>
`

type docsEndpoint struct {
	Route   string
	Summary string
}

type docsPageData struct {
	Title     string
	LoadedAt  string
	Spec      string
	Endpoints []docsEndpoint
}

var docsEndpoints = []docsEndpoint{
	{"GET /health", "Liveness probe"},
	{"GET /metrics", "Prometheus metrics"},
	{"GET /api/profiles", "List stored binding profiles"},
	{"POST /api/profiles", "Create a profile"},
	{"GET /api/profiles/:id", "Fetch one profile"},
	{"PATCH /api/profiles/:id", "Partially update a profile; ?mirror=true negates angles on stance change"},
	{"DELETE /api/profiles/:id", "Delete a profile"},
	{"GET /api/profiles/:id/image", "Render a stored profile as PNG"},
	{"GET /api/profiles/:id/export", "Download <name>-binding-profile.json"},
	{"POST /api/profiles/:id/export/share", "Upload the export and return a signed link"},
	{"DELETE /api/profiles/:id/export/share", "Remove the shared export"},
	{"GET /api/render/scene", "Scene geometry for query parameters"},
	{"GET /api/render/image", "PNG for query parameters"},
	{"GET /api/ws/preview", "Live preview websocket"},
}

func registerDocsRoutes(app fiber.Router, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}

	spec, err := loadOpenAPISpec()
	if err != nil {
		return fmt.Errorf("load openapi spec: %w", err)
	}

	indexTemplate, err := template.New("docs-index").Parse(docsIndexHTML)
	if err != nil {
		return fmt.Errorf("parse docs template: %w", err)
	}

	pageData := docsPageData{
		Title:     "Binding Studio API Docs",
		LoadedAt:  time.Now().UTC().Format(time.RFC3339),
		Spec:      string(spec),
		Endpoints: docsEndpoints,
	}

	indexHandler := func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, fiber.MIMETextHTMLCharsetUTF8)
		c.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; img-src 'self' data:; base-uri 'none'; form-action 'none'; frame-ancestors 'none'")

		var body bytes.Buffer
		if err := indexTemplate.Execute(&body, pageData); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render api docs")
		}

		return c.Status(fiber.StatusOK).Send(body.Bytes())
	}

	app.Get("/docs", indexHandler)
	app.Get("/docs/", indexHandler)
	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, "application/yaml; charset=utf-8")
		c.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="openapi.yaml"`)
		return c.Status(fiber.StatusOK).Send(spec)
	})

	return nil
}

func loadOpenAPISpec() ([]byte, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("resolve source path")
	}

	specPath := filepath.Join(filepath.Dir(currentFile), "..", "..", "docs", "openapi.yaml")
	spec, err := os.ReadFile(specPath)
	if err != nil {
		return nil, err
	}
	return spec, nil
}

func applyDocsBaseHeaders(c *fiber.Ctx, contentType string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "no-store, max-age=0")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderXFrameOptions, "DENY")
	c.Set("Referrer-Policy", "no-referrer")
	c.Set("Cross-Origin-Resource-Policy", "same-origin")
	c.Set("X-Robots-Tag", "noindex, nofollow")
}
