// Package filters implements the neighborhood operators: convolution kernels,
// order-statistic smoothing, adaptive edge-preserving smoothing and
// thresholding.
//
// # Framework
//
// Windowed operators are built on ApplyWindowed. It computes every pixel
// whose whole window lies inside the image and copies all other pixels
// unchanged (border copy, no padding or mirroring). Rows are processed in
// parallel and each worker obtains its own PixelFunc from a NewPixelFunc
// factory, so histogram and sample buffers are never shared.
//
// Thresholding is not windowed in that sense: its windows are clipped at the
// image edge so every pixel gets a result from a smaller sample.
//
// # Gray Conversions
//
// Edge, gradient, detection and threshold operators work on luminance
// (0.299R + 0.587G + 0.114B) and write the result to R, G and B. High-pass,
// high-boost, order-statistic and edge-preserving operators work on each
// color channel independently. Alpha is always preserved.
//
// # Available Operators
//
//   - ConvolveAbs: Laplacian H1/H2 and Frey-Chen
//   - Gradient: Roberts, Roberts cross, Prewitt, Sobel (gx, gy, magnitude)
//   - Compass: Kirsch and Robinson rotation sets
//   - ConvolveChannels: high-pass h1, h2, m1, m2, m3 and high-boost
//   - Detect: point and line detection
//   - Mean, Median, Max, Min, Mode
//   - EdgePreserve: Kawahara, Tomita-Tsuji, Nagao-Matsuyama, Somboonkaew
//   - ThresholdGlobal, ThresholdLocal, Niblack
package filters
