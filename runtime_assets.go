package folio

import (
	"io/fs"

	vanilla "github.com/goliatone/go-folio/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the stylesheet, script and images the page links
// to, so applications can serve them without a build step.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(folio.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
