package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"

	"motoclub-theme/internal/cookiestore"
	"motoclub-theme/internal/palette"
	"motoclub-theme/internal/panel"
	"motoclub-theme/internal/remote"
	"motoclub-theme/internal/theme"
	"motoclub-theme/internal/ui"
)

// maxUploadBytes bounds import uploads, multipart overhead included.
const maxUploadBytes = 2 << 20

type pageData struct {
	Panel         template.HTML
	Tailwind      bool
	TailwindPatch template.JS
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	store := s.visitor(w, r)

	view := panel.BuildView(store, s.Site.ProfileOptions())
	view.Notice = panel.LookupNotice(r.URL.Query().Get("notice"))
	html, err := s.panel.Render(view)
	if err != nil {
		ui.LogStatus("error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pageData{Panel: html}
	if s.tailwindRuntime() {
		data.Tailwind = true
		data.TailwindPatch = template.JS(s.Theme.Render(store).Tailwind)
	}

	var buf bytes.Buffer
	if err := s.page.ExecuteTemplate(&buf, "page.html", data); err != nil {
		ui.LogStatus("error", "Render page: "+err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	sheet := s.Theme.Render(s.visitor(w, r))
	writeCached(w, r, "text/css; charset=utf-8", sheet.ETag, []byte(sheet.CSS))
}

func (s *Server) handleColorsFile(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.Config.ColorsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		ui.LogStatus("error", "Read colors file: "+err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeCached(w, r, "application/json", theme.ETag(data), data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":       "ok",
		"site_profile": s.Site.Current(),
	})
}

func (s *Server) handleSetProfile(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.FormValue("id"))
	if id == "" {
		http.Error(w, "missing profile id", http.StatusBadRequest)
		return
	}
	s.visitor(w, r).SetProfile(id)
	redirectNotice(w, r, panel.NoticeApplied)
}

func (s *Server) handleSaveCustom(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		redirectNotice(w, r, panel.NoticeNameRequired)
		return
	}
	colors, err := colorsFromForm(r)
	if err != nil {
		redirectNotice(w, r, panel.NoticeInvalidColor)
		return
	}
	id := s.visitor(w, r).SaveCustomProfile(name, colors)
	ui.LogStatus("debug", "Saved visitor palette "+id)
	redirectNotice(w, r, panel.NoticeSaved)
}

func (s *Server) handleDeleteCustom(w http.ResponseWriter, r *http.Request) {
	s.visitor(w, r).DeleteCustomProfile(r.FormValue("id"))
	redirectNotice(w, r, panel.NoticeDeleted)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.visitor(w, r).SetProfile(cookiestore.DefaultProfile)
	redirectNotice(w, r, panel.NoticeReset)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	colors, err := colorsFromForm(r)
	if err != nil {
		http.Error(w, panel.LookupNotice(panel.NoticeInvalidColor).Message, http.StatusBadRequest)
		return
	}
	page, err := s.sitePage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	store := s.visitor(w, r)
	store.Preview(colors)
	sheet := s.Theme.Render(page, store)

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = io.WriteString(w, sheet.CSS)
}

type siteProfiles struct {
	Active  string          `json:"active"`
	Options []remote.Option `json:"options"`
}

// siteState answers the page's site palette requests. Overlay is what the
// page keeps in memory and sends back; CSS is the stylesheet the page
// layers over /theme.css while the overlay is in effect.
type siteState struct {
	OK      bool                 `json:"ok"`
	Message string               `json:"message,omitempty"`
	Result  *remote.ImportResult `json:"result,omitempty"`
	Active  string               `json:"active"`
	Options []remote.Option      `json:"options"`
	Overlay remote.Overlay       `json:"overlay"`
	CSS     string               `json:"css"`
}

func (s *Server) handleSiteProfiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, siteProfiles{Active: s.Site.Current(), Options: s.Site.ProfileOptions()})
}

func (s *Server) handleSiteActive(w http.ResponseWriter, r *http.Request) {
	req, err := activeFromRequest(r)
	if err != nil || req.Profile == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing profile"})
		return
	}
	page := s.Site.Session()
	if err := page.Restore(req.Overlay); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := page.ApplyProfile(req.Profile); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, remote.ErrProfileNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.siteState(w, r, page, true))
}

func (s *Server) handleSiteExport(w http.ResponseWriter, r *http.Request) {
	page, err := s.sitePage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	name, err := page.ExportToJSON(&buf)
	if err != nil {
		ui.LogStatus("error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleSiteImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var message string
	notify := remote.NotifierFunc(func(level remote.Level, msg string) {
		message = msg
		remote.LogNotifier{}.Notify(level, msg)
	})

	var (
		body     io.Reader
		filename string
	)
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		body, filename = file, header.Filename
	}

	page, err := s.sitePage(r)
	if err != nil {
		page = s.Site.Session()
		notify(remote.LevelError, "Errore: "+err.Error())
		out := s.siteState(w, r, page, false)
		out.Message = message
		writeJSON(w, http.StatusBadRequest, out)
		return
	}

	res, err := page.ImportFromJSON(body, filename, notify)
	out := s.siteState(w, r, page, err == nil)
	out.Message = message
	if err != nil {
		writeJSON(w, http.StatusBadRequest, out)
		return
	}
	out.Result = &res
	writeJSON(w, http.StatusOK, out)
}

// sitePage builds the page's site palette view from the overlay form field.
func (s *Server) sitePage(r *http.Request) (*remote.Session, error) {
	page := s.Site.Session()
	raw := strings.TrimSpace(r.FormValue("overlay"))
	if raw == "" {
		return page, nil
	}
	var ov remote.Overlay
	if err := json.Unmarshal([]byte(raw), &ov); err != nil {
		return nil, fmt.Errorf("%w: %v", remote.ErrInvalidFormat, err)
	}
	if err := page.Restore(ov); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *Server) siteState(w http.ResponseWriter, r *http.Request, page *remote.Session, ok bool) siteState {
	out := siteState{
		OK:      ok,
		Active:  page.Current(),
		Options: page.ProfileOptions(),
		Overlay: page.Overlay(),
	}
	if page.Changed() {
		out.CSS = s.Theme.Render(page, s.visitor(w, r)).CSS
	}
	return out
}

type activeRequest struct {
	Profile string         `json:"profile"`
	Overlay remote.Overlay `json:"overlay"`
}

func activeFromRequest(r *http.Request) (activeRequest, error) {
	var req activeRequest
	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == "application/json" {
		if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req); err != nil {
			return req, err
		}
		req.Profile = strings.TrimSpace(req.Profile)
		return req, nil
	}
	req.Profile = strings.TrimSpace(r.FormValue("profile"))
	if raw := strings.TrimSpace(r.FormValue("overlay")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Overlay); err != nil {
			return req, err
		}
	}
	return req, nil
}

// colorsFromForm reads the twelve editor fields and requires #RRGGBB values.
func colorsFromForm(r *http.Request) (palette.Colors, error) {
	var c palette.Colors
	for _, k := range palette.FieldKeys {
		c.Set(k, strings.TrimSpace(r.FormValue(k)))
	}
	return c, c.Validate()
}

// redirectNotice sends a panel form post back to the page with a notice.
func redirectNotice(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, "/?notice="+url.QueryEscape(code), http.StatusSeeOther)
}

func writeCached(w http.ResponseWriter, r *http.Request, contentType, etag string, body []byte) {
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Vary", "Cookie")
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ui.LogStatus("error", "Encode response: "+err.Error())
	}
}
