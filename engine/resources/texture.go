package resources

/**
 * @brief Raw texture pixels, rows tightly packed.
 */
type Texture struct {
	Name         string
	Width        uint32
	Height       uint32
	ChannelCount uint8
	Pixels       []uint8
}

func (t *Texture) IsEmpty() bool {
	return t == nil || len(t.Pixels) == 0
}

/**
 * @brief Parameters used when loading a texture image.
 */
type ImageResourceParams struct {
	/** @brief Indicates if the image should be flipped on the y-axis when loaded. */
	FlipY bool
}
