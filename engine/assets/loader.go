package assets

// AssetType groups files by the loader that reads them.
type AssetType uint8

const (
	AssetTypeNone AssetType = iota
	AssetTypeShader
	AssetTypeImage
)

func (t AssetType) String() string {
	switch t {
	case AssetTypeShader:
		return "shader"
	case AssetTypeImage:
		return "image"
	}
	return "none"
}

// Loader reads one family of asset files, recognised by extension.
type Loader interface {
	// Extensions lists the lower case file extensions handled, dot included.
	Extensions() []string
}
