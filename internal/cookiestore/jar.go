package cookiestore

import (
	"net/http"
	"sync"
)

// Jar is the cookie storage the store persists through.
type Jar interface {
	Get(name string) (string, bool)
	Set(c *http.Cookie)
}

// HTTPJar reads cookies from a request and writes Set-Cookie headers to the
// response. Cookies set during the request are visible to later Gets.
type HTTPJar struct {
	r   *http.Request
	w   http.ResponseWriter
	set map[string]*http.Cookie
}

// NewHTTPJar binds a jar to one request/response pair.
func NewHTTPJar(w http.ResponseWriter, r *http.Request) *HTTPJar {
	return &HTTPJar{r: r, w: w, set: make(map[string]*http.Cookie)}
}

func (j *HTTPJar) Get(name string) (string, bool) {
	if c, ok := j.set[name]; ok {
		if c.MaxAge < 0 {
			return "", false
		}
		return c.Value, true
	}
	c, err := j.r.Cookie(name)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

func (j *HTTPJar) Set(c *http.Cookie) {
	j.set[c.Name] = c
	http.SetCookie(j.w, c)
}

// MemoryJar keeps cookies in memory. A negative MaxAge deletes.
type MemoryJar struct {
	mu      sync.Mutex
	cookies map[string]*http.Cookie
}

// NewMemoryJar creates an empty jar.
func NewMemoryJar() *MemoryJar {
	return &MemoryJar{cookies: make(map[string]*http.Cookie)}
}

func (j *MemoryJar) Get(name string) (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	c, ok := j.cookies[name]
	if !ok {
		return "", false
	}
	return c.Value, true
}

func (j *MemoryJar) Set(c *http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if c.MaxAge < 0 {
		delete(j.cookies, c.Name)
		return
	}
	cp := *c
	j.cookies[c.Name] = &cp
}

// Cookie returns the stored cookie with all its attributes.
func (j *MemoryJar) Cookie(name string) (*http.Cookie, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	c, ok := j.cookies[name]
	if !ok {
		return nil, false
	}
	cp := *c
	return &cp, true
}
