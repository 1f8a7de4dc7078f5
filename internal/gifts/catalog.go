package gifts

import (
	"github.com/shopspring/decimal"

	"github.com/avalosmendoza/wedding-backend/pkg/enums"
)

// Package is one tier of the gift catalog.
type Package struct {
	Amount      decimal.Decimal
	Name        string
	Description string
}

// Catalog is the fixed set of gift tiers. Amounts are hardcoded so a
// client can never dictate the price of a non-custom tier; only the
// custom tier takes a caller-supplied amount.
type Catalog struct {
	packages map[enums.GiftPackageID]Package
	order    []enums.GiftPackageID
}

// NewCatalog builds the catalog once at process start. It is read-only
// afterwards and safe for concurrent use.
func NewCatalog() *Catalog {
	return &Catalog{
		packages: map[enums.GiftPackageID]Package{
			enums.GiftPackageSmall: {
				Amount:      decimal.NewFromInt(25),
				Name:        "Small Gift",
				Description: "A lovely gesture",
			},
			enums.GiftPackageMedium: {
				Amount:      decimal.NewFromInt(50),
				Name:        "Medium Gift",
				Description: "A generous gift",
			},
			enums.GiftPackageLarge: {
				Amount:      decimal.NewFromInt(100),
				Name:        "Large Gift",
				Description: "A wonderful contribution",
			},
			enums.GiftPackageCustom: {
				Amount:      decimal.Zero,
				Name:        "Custom Amount",
				Description: "Choose your own amount",
			},
		},
		order: []enums.GiftPackageID{
			enums.GiftPackageSmall,
			enums.GiftPackageMedium,
			enums.GiftPackageLarge,
			enums.GiftPackageCustom,
		},
	}
}

// Lookup returns the package for the given id.
func (c *Catalog) Lookup(id enums.GiftPackageID) (Package, bool) {
	pkg, ok := c.packages[id]
	return pkg, ok
}

// IDs returns the package ids in display order.
func (c *Catalog) IDs() []enums.GiftPackageID {
	ids := make([]enums.GiftPackageID, len(c.order))
	copy(ids, c.order)
	return ids
}
