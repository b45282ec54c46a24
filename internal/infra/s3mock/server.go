package s3mock

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

// Server is an in-memory, path-style S3 endpoint that understands enough of
// the protocol for the result archive: HEAD bucket, PUT, GET, HEAD and
// DELETE object.
type Server struct {
	buckets map[string]struct{}
	data    *sync.Map

	logger *slog.Logger
}

type object struct {
	content     []byte
	contentType string
}

// NewServer serves the given buckets. Requests to any other bucket get
// NoSuchBucket.
func NewServer(buckets ...string) *Server {
	s := &Server{
		buckets: make(map[string]struct{}, len(buckets)),
		data:    &sync.Map{},
		logger:  slog.Default(),
	}
	for _, b := range buckets {
		s.buckets[b] = struct{}{}
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bucket, key := extractBucketAndKey(r.URL.Path)
	if _, ok := s.buckets[bucket]; !ok {
		writeError(w, r, http.StatusNotFound, "NoSuchBucket")
		return
	}

	switch {
	case r.Method == http.MethodHead && key == "":
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodHead:
		s.headObject(w, r, bucket, key)
	case r.Method == http.MethodGet:
		s.getObject(w, r, bucket, key)
	case r.Method == http.MethodPut:
		s.putObject(w, r, bucket, key)
	case r.Method == http.MethodDelete:
		s.data.Delete(bucket + "/" + key)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "MethodNotAllowed")
	}
}

// Len reports the number of stored objects.
func (s *Server) Len() int {
	n := 0
	s.data.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func extractBucketAndKey(path string) (string, string) {
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func (s *Server) headObject(w http.ResponseWriter, r *http.Request, bucket, key string) {
	if _, ok := s.data.Load(bucket + "/" + key); !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) getObject(w http.ResponseWriter, r *http.Request, bucket, key string) {
	v, ok := s.data.Load(bucket + "/" + key)
	if !ok {
		writeError(w, r, http.StatusNotFound, "NoSuchKey")
		return
	}

	obj := v.(object)
	w.Header().Set("Content-Type", obj.contentType)
	w.Header().Set("Content-Length", fmt.Sprint(len(obj.content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.content)
}

func (s *Server) putObject(w http.ResponseWriter, r *http.Request, bucket, key string) {
	content, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "IncompleteBody")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	s.data.Store(bucket+"/"+key, object{content: content, contentType: contentType})
	s.logger.Debug("object stored", slog.String("bucket", bucket), slog.String("key", key))

	w.Header().Set("ETag", fmt.Sprintf("%q", fmt.Sprintf("%x", len(content))))
	w.WriteHeader(http.StatusOK)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>%s</Code><Message>%s</Message><Resource>%s</Resource></Error>`,
		code, code, r.URL.Path)
}
