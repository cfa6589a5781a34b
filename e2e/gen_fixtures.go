//go:build ignore

// gen_fixtures creates a demo root of version folders for trying browse.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
)

// Which version folders hold each image. Gaps exercise the
// "not available in this version" path.
var layout = map[string][]string{
	"sunrise.png":  {"v1", "v2", "v3"},
	"harbor.jpg":   {"v1", "v2", "v3"},
	"portrait.png": {"v1", "v3"},
	"skyline.gif":  {"v2", "v3"},
	"forest.bmp":   {"v1", "v2"},
	"Banner.PNG":   {"v3"},
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]

	count := 0
	for name, versions := range layout {
		for _, v := range versions {
			folder := filepath.Join(dir, v)
			os.MkdirAll(folder, 0o755)
			img := gradient(240, 160, int(v[1]-'0'))
			write(filepath.Join(folder, name), img)
			count++
		}
	}
	// A nested directory and a non-image file that the scanner must ignore.
	os.MkdirAll(filepath.Join(dir, "v1", "drafts"), 0o755)
	os.WriteFile(filepath.Join(dir, "v1", "notes.txt"), []byte("not an image\n"), 0o644)

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created %d images in %s\n", count, dir)
}

// gradient tints each version differently so versions are easy to tell apart.
func gradient(w, h, version int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8(version * 80),
				A: 255,
			}
			if x < 4 || x >= w-4 || y < 4 || y >= h-4 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func write(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".jpg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 85})
	case ".gif":
		err = gif.Encode(f, img, nil)
	case ".bmp":
		err = bmp.Encode(f, img)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		panic(err)
	}
}
