package server

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const (
	indexPage    = "index.html"
	notFoundPage = "404.html"
)

// ErrBind is returned when the listening socket cannot be opened.
var ErrBind = errors.New("cannot bind listener")

func init() {
	// Force register the WASM mime type
	_ = mime.AddExtensionType(".wasm", "application/wasm")
}

// Server serves the contents of a static root directory over HTTP.
type Server struct {
	root       afero.Fs
	fileServer http.Handler
	logger     *slog.Logger
}

// New returns a Server for root. Request paths are resolved against the root
// of the filesystem, so root should already be scoped to the static directory.
func New(root afero.Fs, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		root:       root,
		fileServer: http.FileServer(afero.NewHttpFs(root).Dir("/")),
		logger:     logger,
	}
}

// NewFromDir serves dir from the OS filesystem, read-only and confined to dir.
func NewFromDir(dir string, logger *slog.Logger) *Server {
	root := afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), dir))
	return New(root, logger)
}

// ServeHTTP answers GET and HEAD with the file at the request path. Anything
// else, and any path without a servable file, gets a 404.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.notFound(w)
		return
	}

	name, err := validatePath(r.URL.Path)
	if err != nil {
		http.Error(w, "400 - Bad Request: Invalid path", http.StatusBadRequest)
		return
	}

	if s.hasSymlink(name) {
		s.notFound(w)
		return
	}

	info, err := s.root.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.notFound(w)
		} else {
			http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	// Directories are only served through their index page; never list them.
	if info.IsDir() {
		indexName := path.Join(name, indexPage)
		index, err := s.root.Stat(indexName)
		if err != nil || index.IsDir() || s.hasSymlink(indexName) {
			s.notFound(w)
			return
		}
		s.fileServer.ServeHTTP(w, r)
		return
	}

	// http.FileServer redirects ".../index.html" to its directory; serve it as is.
	if path.Base(name) == indexPage {
		s.serveFile(w, r, name, info)
		return
	}

	s.fileServer.ServeHTTP(w, r)
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, name string, info fs.FileInfo) {
	f, err := s.root.Open(name)
	if err != nil {
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("Failed to close file", "path", name, "error", cerr)
		}
	}()
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// hasSymlink reports whether any component of name is a symbolic link.
// Links could point anywhere on disk, so they are never followed.
func (s *Server) hasSymlink(name string) bool {
	lstater, ok := s.root.(afero.Lstater)
	if !ok {
		return false
	}
	current := "/"
	for _, segment := range strings.Split(strings.TrimPrefix(name, "/"), "/") {
		if segment == "" {
			continue
		}
		current = path.Join(current, segment)
		info, lstatCalled, err := lstater.LstatIfPossible(current)
		if err != nil || !lstatCalled {
			// Missing components are reported as 404 by the Stat that follows.
			return false
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			return true
		}
	}
	return false
}

// notFound writes a 404, using the root's 404.html as the body when present.
func (s *Server) notFound(w http.ResponseWriter) {
	if content, err := afero.ReadFile(s.root, "/"+notFoundPage); err == nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write(content)
		return
	}
	http.Error(w, "404 - Page Not Found", http.StatusNotFound)
}

// Listen opens the TCP listener for addr. Any failure wraps ErrBind.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBind, err)
	}
	return ln, nil
}

// Serve logs the startup line and serves requests on ln until it fails.
func (s *Server) Serve(ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info(fmt.Sprintf("server listening and ready to serve on localhost:%s", listenPort(ln)))

	return httpServer.Serve(ln)
}

// ListenAndServe binds addr and serves on it.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := Listen(addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

func listenPort(ln net.Listener) string {
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		return strconv.Itoa(tcp.Port)
	}
	_, port, err := net.SplitHostPort(ln.Addr().String())
	if err != nil {
		return ln.Addr().String()
	}
	return port
}
