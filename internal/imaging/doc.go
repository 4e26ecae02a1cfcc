// Package imaging provides image loading and edge detection for the
// road-extraction pipeline.
//
// Loading goes through ImageCache, which decodes PNG, JPEG, GIF, BMP, TIFF,
// and WebP files and caches the result per path. EdgeDetect implements the
// Canny algorithm (grayscale, Gaussian smoothing, Sobel gradients,
// non-maximum suppression, hysteresis thresholding) and returns an EdgeMap,
// the binary input to Hough line detection.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner,
// X increasing rightward and Y increasing downward.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. EdgeDetect is a pure function over
// its inputs; EdgeMap is immutable after construction.
package imaging
