// Package site serves the club site's theming surface: the page with the
// control panel, the composed stylesheet, and the palette endpoints.
package site

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"motoclub-theme/internal/config"
	"motoclub-theme/internal/cookiestore"
	"motoclub-theme/internal/panel"
	"motoclub-theme/internal/remote"
	"motoclub-theme/internal/theme"
	"motoclub-theme/internal/ui"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server is the theme HTTP server
type Server struct {
	Config *config.Config
	Site   *remote.Manager
	Theme  *theme.Service

	panel      *panel.Renderer
	page       *template.Template
	limiter    *RateLimiter
	clients    clientResolver
	httpServer *http.Server
	ln         net.Listener
}

// NewServer wires the HTTP surface over an initialized site scheme manager.
func NewServer(cfg *config.Config, site *remote.Manager) (*Server, error) {
	renderer, err := panel.NewRenderer()
	if err != nil {
		return nil, err
	}
	page, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	rpm := 0
	var clients clientResolver
	if cfg.Env != nil {
		rpm = cfg.Env.PostRateLimitRPM
		clients.trusted = cfg.Env.TrustedProxies
	}

	return &Server{
		Config:  cfg,
		Site:    site,
		Theme:   theme.NewService(site),
		panel:   renderer,
		page:    page,
		limiter: NewRateLimiter(rpm),
		clients: clients,
	}, nil
}

// Handler returns the full middleware-wrapped route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /theme.css", s.handleStylesheet)
	mux.HandleFunc("GET /colors.json", s.handleColorsFile)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(panel.Static())))
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /theme/profile", s.limited("theme_profile", s.handleSetProfile))
	mux.HandleFunc("POST /theme/custom", s.limited("theme_custom", s.handleSaveCustom))
	mux.HandleFunc("POST /theme/custom/delete", s.limited("theme_custom_delete", s.handleDeleteCustom))
	mux.HandleFunc("POST /theme/preview", s.limited("theme_preview", s.handlePreview))
	mux.HandleFunc("POST /theme/reset", s.limited("theme_reset", s.handleReset))

	mux.HandleFunc("GET /api/colors/profiles", s.handleSiteProfiles)
	mux.HandleFunc("POST /api/colors/active", s.limited("colors_active", s.handleSiteActive))
	mux.HandleFunc("GET /api/colors/export", s.handleSiteExport)
	mux.HandleFunc("POST /api/colors/export", s.limited("colors_export", s.handleSiteExport))
	mux.HandleFunc("POST /api/colors/import", s.limited("colors_import", s.handleSiteImport))

	return withRequestID(withAccessLog(mux))
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	var err error
	s.ln, err = net.Listen("tcp", s.Config.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Config.Listen, err)
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ui.LogStatus("info", "Theme server listening on "+s.ln.Addr().String())

	go s.watchShutdown(ctx)
	go s.sweepLimiter(ctx)

	if err := s.httpServer.Serve(s.ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// watchShutdown monitors context for cancellation
func (s *Server) watchShutdown(ctx context.Context) {
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		ui.LogStatus("error", "Shutdown error: "+err.Error())
	}
}

func (s *Server) sweepLimiter(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := s.limiter.Sweep(10 * time.Minute)
			ui.LogStatus("debug", fmt.Sprintf("Rate limiter tracking %d clients", n))
		}
	}
}

// visitor builds the visitor preference store for one request.
func (s *Server) visitor(w http.ResponseWriter, r *http.Request) *cookiestore.Store {
	opts := cookiestore.Options{
		CookieName: s.Config.CookieName,
		CookieDays: s.Config.CookieDays,
	}
	if s.Config.Env != nil {
		opts.Secure = s.Config.Env.CookieSecure
	}
	store := cookiestore.New(cookiestore.NewHTTPJar(w, r), nil, opts)
	store.Init()
	return store
}

func (s *Server) tailwindRuntime() bool {
	return s.Config.Env != nil && s.Config.Env.TailwindRuntime
}
