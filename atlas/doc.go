// Package atlas implements a reader for Spine .atlas descriptors, the text
// files that accompany a packed sprite sheet and record where each named part
// was placed.
//
// Only the fixed 7-line record layout is understood. The 6 header lines at
// the top of the file (sheet image name, size, format, filter, repeat) are
// kept verbatim but not interpreted:
//
//	leg
//	  rotate: true
//	  xy: 10, 20
//	  size: 30, 40
//	  orig: 40, 30
//	  offset: 0, 0
//	  index: -1
//
// Records follow each other with no separators. A descriptor whose body is
// not an exact multiple of 7 lines is rejected as a whole, since every
// subsequent record would otherwise be read out of step.
//
// Cutting the parts out of the sheet image is left to the parts package.
package atlas
