// Package httpapi exposes garment generation over HTTP. Requests carry
// either a raw design parameter tree or a ready pattern document; responses
// reference the session artifacts by path and id for later download.
package httpapi
