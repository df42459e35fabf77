package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"

	"jobhunt-readme/internal/store"
)

type PostingsHandler struct {
	DB *sql.DB
}

// List serves GET /postings?category=&source=&limit=
func (h PostingsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 500
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			WriteError(w, r, http.StatusBadRequest, CodeInvalidLimit, "limit must be a positive integer")
			return
		}
		limit = n
	}

	rows, err := store.ListPostings(r.Context(), h.DB, store.ListOpts{
		Category:  q.Get("category"),
		SourceURL: q.Get("source"),
		Limit:     limit,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, CodeStoreError, err.Error())
		return
	}
	if rows == nil {
		rows = []store.StoredPosting{}
	}
	writeJSON(w, rows)
}
