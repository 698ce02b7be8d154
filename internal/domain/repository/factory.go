package repository

// Factory describes access to the persistent repositories.
type Factory interface {
	Users() UserRepository
	Points() PointsRepository
	DiscountCodes() DiscountCodeRepository
}
