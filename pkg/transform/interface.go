package transform

// Type selects the geometric transform applied to an image.
type Type string

const (
	// TypeResize scales the image to cover the target box and then
	// crops it to the exact target size from the center.
	TypeResize Type = "resize"

	// TypeCrop crops the image at its natural size from the center.
	TypeCrop Type = "crop"
)

// ParseType maps a raw request value to a transform type. Anything
// that is not "crop" falls back to resize.
func ParseType(raw string) Type {
	switch raw {
	case string(TypeCrop):
		return TypeCrop
	default:
		return TypeResize
	}
}

// Transformer applies the resize/crop arithmetic to encoded image
// bytes. It reports the resolved target dimensions because a zero
// width or height is derived from the image's aspect ratio and the
// caller needs the final values for key derivation.
type Transformer interface {
	Transform(data []byte, width, height uint, transformType Type) (result []byte, resolvedWidth, resolvedHeight uint, err error)
}
