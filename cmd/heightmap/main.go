// Command heightmap renders the configured terrain height field to a
// greyscale PNG, one pixel per column.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"voxelstream/internal/config"
	"voxelstream/internal/world"

	"golang.org/x/image/draw"
)

func main() {
	cfg := config.Default()
	fs := flag.NewFlagSet("heightmap", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	out := fs.String("o", "heightmap.png", "output PNG path")
	size := fs.Int("size", 256, "columns per side")
	originX := fs.Int("x", 0, "world X of the top-left column")
	originZ := fs.Int("z", 0, "world Z of the top-left column")
	scale := fs.Int("scale", 2, "output pixels per column")
	chunkGrid := fs.Bool("grid", false, "darken chunk borders")
	config.BindFlags(fs, cfg)
	_ = fs.Parse(os.Args[1:])

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "heightmap: %v\n", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, config.ExplicitFlags(fs))
	}

	log := cfg.NewLogger(os.Stderr)
	if *size <= 0 || *scale <= 0 {
		log.Error("size and scale must be positive", "size", *size, "scale", *scale)
		os.Exit(2)
	}

	heights, err := cfg.HeightSource()
	if err != nil {
		log.Error("height source", "error", err)
		os.Exit(1)
	}

	img, lo, hi := render(heights, *originX, *originZ, *size, *chunkGrid)
	if *scale > 1 {
		dst := image.NewGray(image.Rect(0, 0, *size**scale, *size**scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = dst
	}

	if err := writePNG(*out, img); err != nil {
		log.Error("write png", "error", err)
		os.Exit(1)
	}
	log.Info("heightmap written", "path", *out, "min_height", lo, "max_height", hi, "columns", *size**size)
}

// render samples a size x size window of heights and maps the observed
// range onto 0..255.
func render(heights world.HeightSource, x0, z0, size int, grid bool) (*image.Gray, int, int) {
	samples := make([]int, size*size)
	lo, hi := 0, 0
	for dz := 0; dz < size; dz++ {
		for dx := 0; dx < size; dx++ {
			h := heights.HeightAt(x0+dx, z0+dz)
			samples[dz*size+dx] = h
			if dx == 0 && dz == 0 {
				lo, hi = h, h
			}
			lo, hi = min(lo, h), max(hi, h)
		}
	}

	img := image.NewGray(image.Rect(0, 0, size, size))
	span := hi - lo
	for dz := 0; dz < size; dz++ {
		for dx := 0; dx < size; dx++ {
			var v uint8
			if span > 0 {
				v = uint8((samples[dz*size+dx] - lo) * 255 / span)
			}
			if grid {
				if _, local := world.BlockToChunk(x0+dx, 0, z0+dz); local.X == 0 || local.Z == 0 {
					v /= 2
				}
			}
			img.SetGray(dx, dz, color.Gray{Y: v})
		}
	}
	return img, lo, hi
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
