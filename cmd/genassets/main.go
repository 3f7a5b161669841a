// Command genassets writes the generated placeholder sprites and sounds to a
// directory, in the layout SAVETHEEARTH_ASSETS expects.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/tomz197/savetheearth/internal/asset"
	"github.com/tomz197/savetheearth/internal/logging"
)

func main() {
	dir := flag.String("dir", "assets", "output directory")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for rock shapes and noise")
	flag.Parse()

	logger := logging.New(os.Stderr, "genassets")
	if err := asset.WriteDir(*dir, asset.Placeholders(*seed)); err != nil {
		logger.Fatal("cannot write assets", "err", err)
	}
	logger.Info("assets written", "dir", *dir,
		"images", len(asset.Images()), "sounds", len(asset.Sounds()))
}
