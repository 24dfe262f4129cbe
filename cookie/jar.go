package cookie

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/kbukum/gorest/encryption"
	"github.com/kbukum/gorest/logger"
)

// Jar is an http.CookieJar whose contents are mirrored to a Store. It is
// safe for concurrent use. After Close it stores nothing and returns no
// cookies.
type Jar struct {
	mu      sync.Mutex
	jar     *cookiejar.Jar
	store   Store
	records map[string]Record
	closed  bool
	now     func() time.Time
	log     *logger.Logger
}

var _ http.CookieJar = (*Jar)(nil)

// Option configures New.
type Option func(*options)

type options struct {
	store   Store
	fileDir *string
	enc     encryption.Encryptor
	log     *logger.Logger
	now     func() time.Time
	newFile func(dir string, enc encryption.Encryptor) (*FileStore, error)
}

// WithStore uses s as the backing store.
func WithStore(s Store) Option {
	return func(o *options) { o.store = s }
}

// WithFileStore keeps cookies in a temporary file under dir ("" for the
// system temp directory).
func WithFileStore(dir string) Option {
	return func(o *options) { o.fileDir = &dir }
}

// WithEncryptor seals the file store contents with enc.
func WithEncryptor(enc encryption.Encryptor) Option {
	return func(o *options) { o.enc = enc }
}

// WithLogger sets the logger used for store failures.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// withClock overrides time.Now in tests.
func withClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// withFileStoreFunc replaces NewFileStore in tests.
func withFileStoreFunc(fn func(string, encryption.Encryptor) (*FileStore, error)) Option {
	return func(o *options) { o.newFile = fn }
}

// New creates a jar. Cookies already in the store are loaded, skipping
// expired ones. Without options the store lives in memory.
func New(opts ...Option) (*Jar, error) {
	o := options{now: time.Now, newFile: NewFileStore}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get("cookie")
	}

	store := o.store
	owned := false
	if store == nil && o.fileDir != nil {
		fs, err := o.newFile(*o.fileDir, o.enc)
		if err != nil {
			return nil, err
		}
		store = fs
		owned = true
	}
	if store == nil {
		store = NewMemoryStore()
	}

	j := &Jar{
		jar:     newCookieJar(),
		store:   store,
		records: make(map[string]Record),
		now:     o.now,
		log:     o.log,
	}

	records, err := store.Load()
	if err != nil {
		if owned {
			_ = store.Close()
		}
		return nil, err
	}
	now := j.now()
	for _, r := range records {
		if r.Expired(now) {
			continue
		}
		j.records[r.key()] = r
		j.jar.SetCookies(r.origin(), []*http.Cookie{r.cookie()})
	}
	return j, nil
}

func newCookieJar() *cookiejar.Jar {
	// cookiejar.New never returns a non-nil error.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return jar
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	return j.jar.Cookies(u)
}

// SetCookies implements http.CookieJar and writes the change through to
// the store.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed || len(cookies) == 0 {
		return
	}
	j.jar.SetCookies(u, cookies)

	now := j.now()
	host := strings.ToLower(u.Hostname())
	for _, c := range cookies {
		r := newRecord(host, u, c, now)
		if r.Expired(now) {
			delete(j.records, r.key())
			continue
		}
		j.records[r.key()] = r
	}

	if err := j.store.Save(j.snapshot()); err != nil {
		j.log.Warn("cookie store save failed", logger.Fields(logger.FieldError, err.Error()))
	}
}

// Len returns the number of live cookies held by the jar.
func (j *Jar) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := j.now()
	n := 0
	for _, r := range j.records {
		if !r.Expired(now) {
			n++
		}
	}
	return n
}

// Store returns the backing store.
func (j *Jar) Store() Store {
	return j.store
}

// Close erases all cookies and the backing store. It is idempotent.
func (j *Jar) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	j.records = nil
	j.jar = newCookieJar()
	return j.store.Close()
}

func (j *Jar) snapshot() []Record {
	out := make([]Record, 0, len(j.records))
	for _, r := range j.records {
		out = append(out, r)
	}
	return out
}

func newRecord(host string, u *url.URL, c *http.Cookie, now time.Time) Record {
	r := Record{
		Host:     host,
		Name:     c.Name,
		Value:    c.Value,
		Domain:   strings.TrimPrefix(strings.ToLower(c.Domain), "."),
		Path:     c.Path,
		Expires:  c.Expires,
		Secure:   c.Secure,
		HTTPOnly: c.HttpOnly,
		SameSite: c.SameSite,
	}
	if r.Path == "" || r.Path[0] != '/' {
		r.Path = defaultPath(u.Path)
	}
	switch {
	case c.MaxAge < 0:
		r.Expires = now
	case c.MaxAge > 0:
		r.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
	}
	return r
}

// defaultPath is the RFC 6265 section 5.1.4 default cookie path.
func defaultPath(p string) string {
	if p == "" || p[0] != '/' {
		return "/"
	}
	i := strings.LastIndex(p, "/")
	if i == 0 {
		return "/"
	}
	return p[:i]
}

func (r Record) origin() *url.URL {
	scheme := "http"
	if r.Secure {
		scheme = "https"
	}
	return &url.URL{Scheme: scheme, Host: r.Host, Path: r.Path}
}

func (r Record) cookie() *http.Cookie {
	return &http.Cookie{
		Name:     r.Name,
		Value:    r.Value,
		Domain:   r.Domain,
		Path:     r.Path,
		Expires:  r.Expires,
		Secure:   r.Secure,
		HttpOnly: r.HTTPOnly,
		SameSite: r.SameSite,
	}
}
