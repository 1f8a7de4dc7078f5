package enums

// GiftPackageID identifies a tier in the fixed gift catalog.
type GiftPackageID string

const (
	GiftPackageSmall  GiftPackageID = "small"
	GiftPackageMedium GiftPackageID = "medium"
	GiftPackageLarge  GiftPackageID = "large"
	GiftPackageCustom GiftPackageID = "custom"
)

// String implements fmt.Stringer.
func (g GiftPackageID) String() string {
	return string(g)
}
