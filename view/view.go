package view

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/go-freelance/auth"
	"github.com/diewo77/go-freelance/i18n"
	"github.com/diewo77/go-freelance/validation"
)

var (
	baseDir  string
	once     sync.Once
	devMode  bool
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
	assetManifest     map[string]string
	assetManifestOnce sync.Once

	langResolver  = func(r *http.Request) string { return i18n.LangFromContext(r.Context()) }
	flashResolver func(http.ResponseWriter, *http.Request) any
	mediaResolver = func(key string) string { return "/media/" + key }
)

// SetDevMode disables the template cache and reloads the asset manifest on every request.
func SetDevMode(dev bool) { devMode = dev }

// SetLangResolver allows the host app to provide a custom language resolver.
func SetLangResolver(f func(*http.Request) string) {
	if f != nil {
		langResolver = f
	}
}

// SetFlashResolver sets the callback that consumes pending flash messages
// for the page being rendered.
func SetFlashResolver(f func(http.ResponseWriter, *http.Request) any) {
	flashResolver = f
}

// SetMediaResolver sets how templates turn a stored file key into a URL.
func SetMediaResolver(f func(string) string) {
	if f != nil {
		mediaResolver = f
	}
}

// layoutBase walks upward from a template path to find the directory that contains layout.html.
// If none is found, it returns the template's own directory.
func layoutBase(mainPath string) string {
	d := filepath.Dir(mainPath)
	for {
		lp := filepath.Join(d, "layout.html")
		if fi, err := os.Stat(lp); err == nil && !fi.IsDir() {
			return d
		}
		p := filepath.Dir(d)
		if p == d { // reached filesystem root
			return filepath.Dir(mainPath)
		}
		d = p
	}
}

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the func map for lang: i18n, formatting and small helpers.
func Funcs(lang string) template.FuncMap {
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"tf":   func(code string, args ...any) string { return i18n.Tf(lang, code, args...) },
		"lang": func() string { return lang },
		// fieldErr returns the translated violation for field, or "".
		"fieldErr": func(errs any, field string) string {
			v, ok := errs.(validation.Violations)
			if !ok {
				return ""
			}
			if code, ok := v[field]; ok {
				return i18n.T(lang, code)
			}
			return ""
		},
		// errList returns the translated violations sorted by field.
		"errList": func(errs any) []string {
			v, ok := errs.(validation.Violations)
			if !ok || len(v) == 0 {
				return nil
			}
			fields := make([]string, 0, len(v))
			for f := range v {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			out := make([]string, 0, len(fields))
			for _, f := range fields {
				out = append(out, i18n.T(lang, v[f]))
			}
			return out
		},
		"date": func(t any) string {
			switch v := t.(type) {
			case time.Time:
				return v.Format(validation.DateLayout)
			case *time.Time:
				if v == nil {
					return ""
				}
				return v.Format(validation.DateLayout)
			}
			return ""
		},
		"media": func(key string) string {
			if key == "" {
				return ""
			}
			return mediaResolver(key)
		},
		"year":  func() int { return time.Now().Year() },
		"asset": func(path string) string { return resolveAsset(path) },
		// dict creates a map from key-value pairs for passing to sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// versionedAsset returns /static/<name>?v=<hash> for cache busting.
func versionedAsset(rel string) string {
	if strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") || strings.HasPrefix(rel, "//") {
		return rel
	}
	p := filepath.Join("static", rel)
	b, err := os.ReadFile(p)
	if err != nil {
		return "/static/" + rel
	}
	h := sha1.Sum(b)
	return "/static/" + rel + "?v=" + fmt.Sprintf("%x", h[:8])
}

// resolveAsset prefers a hashed filename from manifest.json then falls back to query param versioning.
func resolveAsset(rel string) string {
	if devMode {
		parseManifest()
	} else {
		assetManifestOnce.Do(parseManifest)
	}
	if assetManifest != nil {
		if h, ok := assetManifest[rel]; ok {
			return "/static/" + h
		}
	}
	return versionedAsset(rel)
}

func parseManifest() {
	mf := filepath.Join("static", "manifest.json")
	b, err := os.ReadFile(mf)
	if err != nil {
		return
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return
	}
	assetManifest = m
}

// SetBaseDir overrides the template base directory (useful for tests or custom setups).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	once = sync.Once{}
}

// ResetForTests clears caches and forces base dir detection to rerun.
func ResetForTests() {
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
	baseDir = ""
	once = sync.Once{}
}

func parse(name, lang string) (*template.Template, error) {
	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		candidates := []string{
			filepath.Join("templates", name),
			filepath.Join("../templates", name),
			filepath.Join("../../templates", name),
			filepath.Join("../../../templates", name),
		}
		found := false
		for _, c := range candidates {
			if fi, e2 := os.Stat(c); e2 == nil && !fi.IsDir() {
				mainPath = c
				found = true
				break
			}
		}
		if !found {
			return nil, err
		}
	}
	root := layoutBase(mainPath)
	funcMap := Funcs(lang)

	contentBytes, err := os.ReadFile(mainPath)
	if err != nil {
		return nil, err
	}
	layoutPath := filepath.Join(root, "layout.html")
	fi, statErr := os.Stat(layoutPath)
	if bytes.Contains(bytes.ToLower(contentBytes), []byte("<!doctype")) || statErr != nil || fi.IsDir() {
		// Full document provided or no layout; render the file alone.
		return template.New(filepath.Base(mainPath)).Funcs(funcMap).ParseFiles(mainPath)
	}
	partials, _ := filepath.Glob(filepath.Join(root, "partials", "*.html"))
	files := append([]string{layoutPath, mainPath}, partials...)
	return template.New("layout.html").Funcs(funcMap).ParseFiles(files...)
}

func lookup(name, lang string) (*template.Template, error) {
	if baseDir == "" {
		once.Do(detectBase)
	}
	key := lang + "|" + name
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[key]
		tplCache.RUnlock()
		if ok {
			return t, nil
		}
	}
	t, err := parse(name, lang)
	if err != nil {
		return nil, err
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[key] = t
		tplCache.Unlock()
	}
	return t, nil
}

// Render executes the named page (e.g. "projects/list.html") inside the layout with status 200.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	return RenderStatus(w, r, http.StatusOK, name, data)
}

// RenderStatus is Render with an explicit status code. The page is rendered
// into a buffer first so a template error never leaves a half-written response.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) error {
	lang := langResolver(r)
	t, err := lookup(name, lang)
	if err != nil {
		return err
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Year"]; !exists {
		data["Year"] = time.Now().Year()
	}
	if _, exists := data["IsLoggedIn"]; !exists {
		uid, loggedIn := auth.UserIDFromContext(r.Context())
		data["IsLoggedIn"] = loggedIn
		data["UserID"] = uid
	}
	if _, exists := data["Errors"]; !exists {
		data["Errors"] = validation.Violations{}
	}
	data["Lang"] = lang
	data["Path"] = r.URL.Path
	if flashResolver != nil {
		data["Flash"] = flashResolver(w, r)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
