package access

import "net/http"

// RequestCookies is a CookieJar seeded from an inbound request.
type RequestCookies struct {
	values   map[string]string
	pending  []*http.Cookie
	deferred []func()
}

func NewRequestCookies(r *http.Request) *RequestCookies {
	jar := &RequestCookies{values: make(map[string]string)}
	if r != nil {
		for _, c := range r.Cookies() {
			jar.values[c.Name] = c.Value
		}
	}
	return jar
}

func (j *RequestCookies) Get(name string) (string, bool) {
	v, ok := j.values[name]
	return v, ok
}

// Set records a mutation. A later write to the same cookie replaces the
// earlier one; a negative MaxAge removes the cookie from the read view.
func (j *RequestCookies) Set(cookie *http.Cookie) {
	if cookie.MaxAge < 0 {
		delete(j.values, cookie.Name)
	} else {
		j.values[cookie.Name] = cookie.Value
	}
	for i, c := range j.pending {
		if c.Name == cookie.Name && c.Path == cookie.Path && c.Domain == cookie.Domain {
			j.pending[i] = cookie
			return
		}
	}
	j.pending = append(j.pending, cookie)
}

func (j *RequestCookies) Pending() []*http.Cookie {
	out := make([]*http.Cookie, len(j.pending))
	copy(out, j.pending)
	return out
}

func (j *RequestCookies) OnCommit(fn func()) {
	j.deferred = append(j.deferred, fn)
}

func (j *RequestCookies) Commit() []*http.Cookie {
	deferred := j.deferred
	j.deferred = nil
	for _, fn := range deferred {
		fn()
	}
	return j.Pending()
}
