// Package loader provides rescache.Loader implementations that classify a key
// by its suffix, fetch the raw bytes from a Source, and decode them into a
// texture or sound.
//
//	src := loader.NewFSSource(os.DirFS("./assets"))
//	cache, err := rescache.New(256, loader.New(src))
//
// Sources are available for any fs.FS and for Redis, where each asset is
// stored under a prefixed string key.
package loader
