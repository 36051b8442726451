package uploads

import (
	"io"
	"net/http"
	"strconv"

	"gocloud.dev/gcerrors"
)

// Handler serves stored images under PublicPrefix.
func (i *Images) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, ok := KeyFromURL(r.URL.Path)
		if !ok {
			http.NotFound(w, r)
			return
		}
		rd, err := i.bucket.NewReader(r.Context(), key, nil)
		if err != nil {
			if gcerrors.Code(err) == gcerrors.NotFound {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		defer rd.Close()

		if ct := rd.ContentType(); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.Header().Set("Content-Length", strconv.FormatInt(rd.Size(), 10))
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = io.Copy(w, rd)
	})
}
