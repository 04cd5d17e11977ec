/*
Package hmap implements the HMAP heightmap container (GTA V heightmap.dat)
read and single-surface rewrite.

An HMAP file stores a fixed 44 byte header followed, for the sparse layout,
by one 8 byte row descriptor per row and then a data blob holding two
surfaces: "max" and "min" heights, one byte per cell. The raw layout keeps
both surfaces row-major back to back; the sparse layout keeps only a run of
explicit columns per row and mirrors the min run half a blob after the max
run. Byte order is not declared anywhere, it is inferred from how the magic
reads.

Decode and Update are pure functions over byte slices. Update rewrites only
the bytes owned by one surface and returns a buffer of the original length
with the header, descriptors and any trailing bytes untouched.
*/
package hmap
