// Package detection finds connected regions in binary rasters.
//
// After binarization every pixel is either White (foreground) or Black
// (background). Components groups the White pixels into 8-connected regions
// and reports their bounding boxes, areas and centroids, which is how a user
// sees what an opening removed or a closing merged.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
//
// # Connectivity
//
// Two White pixels belong to the same component when they touch along an
// edge or a corner (8-connectivity). A diagonal line of single pixels is one
// component.
package detection
