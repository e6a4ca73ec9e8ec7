package checkout

import "github.com/google/uuid"

// splitByShop groups resolved cart lines by their owning shop so each
// shop receives an independent order. Line order within a shop is
// preserved; shop order follows first appearance in the cart.
func splitByShop(lines []resolvedLine) ([]uuid.UUID, map[uuid.UUID][]resolvedLine) {
	var shopIDs []uuid.UUID
	groups := make(map[uuid.UUID][]resolvedLine)
	for _, line := range lines {
		if _, seen := groups[line.ShopID]; !seen {
			shopIDs = append(shopIDs, line.ShopID)
		}
		groups[line.ShopID] = append(groups[line.ShopID], line)
	}
	return shopIDs, groups
}
