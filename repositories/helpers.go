package repositories

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/padelhub/padel-web/apiclient"
)

// checkNotFound replaces a backend 404 with the repository's own not-found error.
func checkNotFound(err error, notFoundError error) error {
	if err == nil {
		return nil
	}
	if apiclient.IsStatus(err, http.StatusNotFound) {
		return fmt.Errorf("%w: %w", notFoundError, err)
	}
	return err
}

func withQuery(path string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
