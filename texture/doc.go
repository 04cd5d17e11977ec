/*
Package texture converts heightmap surfaces to and from images.

It covers the conversions the editing workflow needs around the HMAP codec:
min-max normalisation for display, the vertical flip between storage and
preview orientation, resampling an edited image back onto the container grid,
and PNG and EDDS (Enfusion DDS) texture files. EDDS textures store a DDS
header followed by a block table and one COPY or LZ4 chunk-stream block per
mip level, smallest first.
*/
package texture
