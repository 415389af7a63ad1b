// Package halftone reduces images to black and white by ordered dithering
// and by error diffusion.
//
// Ordered dithering tiles a small threshold matrix over the image and is
// computed row-parallel. Error diffusion carries each pixel's quantization
// error forward to pixels not yet visited, so the output depends on the exact
// row-major visiting order and is computed sequentially.
//
// The Floyd-Steinberg, Jarvis-Judice-Ninke and Stucki tables come from
// github.com/makeworld-the-better-one/dither/v2. Rogers and Stevenson-Arce
// are declared here in the same offset form.
package halftone
