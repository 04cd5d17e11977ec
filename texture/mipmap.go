package texture

// maxMipLevels caps the chain the Enfusion loader accepts.
const maxMipLevels = 11

// mipLevelCount returns the number of levels down to 1x1, capped at maxMipLevels.
func mipLevelCount(width, height int) int {
	count := 1
	for width > 1 || height > 1 {
		count++
		width = max(width/2, 1)
		height = max(height/2, 1)
	}
	return min(count, maxMipLevels)
}

// mipDimension calculates the dimension of a mipmap level.
func mipDimension(base, level int) int {
	return max(base>>level, 1)
}
