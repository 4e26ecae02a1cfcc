// Package detection finds straight road candidates in aerial imagery.
//
// The entry point is Detector, which composes image loading, Canny edge
// detection, and a Hough line transform into a single Detect call returning
// line segments in pixel coordinates.
//
// # Algorithm Overview
//
//  1. Edge detection over the grayscale image (see the imaging package)
//  2. Hough voting: each edge pixel votes for every (rho, theta) bin it
//     could belong to, at the configured distance and angle resolutions
//  3. Peak selection: bins at or above the vote threshold that are local
//     maxima become line candidates
//  4. Endpoint tracing: edge pixels near each candidate line are projected
//     onto it and the extremes become the segment endpoints
//
// # Determinism
//
// Detection contains no randomness. Identical images and parameters produce
// identical segments, which keeps repeated exports byte-stable.
//
// # Ordering
//
// Segments are returned in descending vote order, but callers must not rely
// on ordering; compare results as sets.
package detection
