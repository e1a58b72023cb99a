// Command julia_cpu renders the Julia set for c = -0.8 + 0.156i and saves it
// as a 1000×1000 32-bit BMP named julia_cpu.bmp in the working directory.
package main

import (
	"log"

	julia "github.com/marben/julia_cpu"
	"github.com/marben/julia_cpu/bitmap"
	"github.com/marben/julia_cpu/render"
)

const filename = "julia_cpu.bmp"

// main never exits with a failure status: an unwritable output file is
// only reported on stderr.
func main() {
	log.SetFlags(0)
	run(filename)
}

func run(path string) {
	img := render.Image()

	if err := bitmap.Save(path, img.Pix, julia.Dim, julia.Dim); err != nil {
		log.Printf("%v", err)
	}
}
