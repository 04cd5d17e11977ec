package main

import (
	"github.com/urfave/cli/v3"

	"github.com/woozymasta/hmap/internal/config"
)

// applyPreviewConfig applies config file defaults to export view options
// when the corresponding CLI flag was not explicitly set.
func applyPreviewConfig(c *cli.Command, cfg config.Config, flip, normalize *bool, scale *int) {
	if cfg.Flip != nil && !c.IsSet("no-flip") {
		*flip = *cfg.Flip
	}
	if cfg.Normalize != nil && !c.IsSet("no-normalize") {
		*normalize = *cfg.Normalize
	}
	if cfg.Scale != nil && !c.IsSet("scale") {
		*scale = *cfg.Scale
	}
}

// applyHexConfig applies config file defaults to hex text options.
func applyHexConfig(c *cli.Command, cfg config.Config, width *int, indent *bool) {
	if cfg.HexWidth != nil && width != nil && !c.IsSet("width") {
		*width = *cfg.HexWidth
	}
	if cfg.HexIndent != nil && indent != nil && !c.IsSet("no-indent") {
		*indent = *cfg.HexIndent
	}
}

// applyTextureConfig applies config file defaults to EDDS export options.
func applyTextureConfig(c *cli.Command, cfg config.Config, format *string, compress *bool, mipmaps *int) {
	if cfg.TextureFormat != "" && !c.IsSet("texture-format") {
		*format = cfg.TextureFormat
	}
	if cfg.TextureCompress != nil && !c.IsSet("no-compress") {
		*compress = *cfg.TextureCompress
	}
	if cfg.TextureMipMaps != nil && !c.IsSet("mipmaps") {
		*mipmaps = *cfg.TextureMipMaps
	}
}
