// Package formats reads and writes planetgen's binary file formats.
//
// PLNT stores a generated planet: generator params, emitted GPU vertices
// and the region list of every plate. All values are little endian.
package formats
