package resources

type ResourceType uint8

/** @brief Pre-defined resource types. */
const (
	/** @brief Binary resource type. */
	ResourceTypeBinary ResourceType = iota
	/** @brief Image resource type. */
	ResourceTypeImage
	/** @brief Interchange scene resource type (the conversion source). */
	ResourceTypeScene
	/** @brief Converted character asset resource type. */
	ResourceTypeCharacterAsset
	/** @brief Unrecognised resource type. */
	ResourceTypeNone
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeBinary:
		return "binary"
	case ResourceTypeImage:
		return "image"
	case ResourceTypeScene:
		return "scene"
	case ResourceTypeCharacterAsset:
		return "character asset"
	default:
		return "none"
	}
}

/** @brief A magic number indicating the file as an anima binary file. */
const ResourceMagic uint32 = 0xdaaaadd1

/** @brief The current version of the character asset layout. */
const CharacterAssetVersion uint8 = 1

/**
 * @brief The header data for binary resource types.
 */
type ResourceHeader struct {
	/** @brief A magic number indicating the file as an anima binary file. */
	MagicNumber uint32
	/** @brief The format version this resource uses. */
	Version uint8
	/** @brief The resource type. */
	ResourceType ResourceType
	/** @brief Reserved for future header data.. */
	Reserved uint16
	/** @brief Deterministic identifier derived from the source asset name. */
	AssetID [16]byte
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}
