// Package boo provides a library for reading and bumping the version declared
// in plugin main files.
//
// It provides functionalities for:
//   - Encoding dot-notation versions ("1.2.3") as a single integer
//     (major*10000 + minor*100 + micro) and back, see Codec.
//   - Finding and rewriting the "* Version: x.y.z" declaration in a main file
//     while leaving every other byte untouched, see Locator.
//   - Discovering plugin directories and their main file (init.php, then
//     index.php), see Discover and NewPlugin.
//   - Applying increase/decrease deltas to one plugin or a batch of plugins,
//     see Engine.
//   - Packaging plugins as zip archives and committing the result with git.
//
// Usage Example:
//
//	codec := boo.NewCodec(boo.StandardWeights())
//	engine := boo.NewEngine(codec)
//
//	p, err := boo.NewPlugin("./wp-content/plugins/hello", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rec, err := engine.Apply(engine.PluginVersion(p), "0.1.0", "0.0.0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Println(rec.Message())
//
// Every error returned by this package is an *Error; use errors.Is with
// ErrInvalidVersion, ErrSearchNotFound, ErrIO, ErrInvalidDirectory or
// ErrCommand to classify it.
package boo
