package databases

import "go.mongodb.org/mongo-driver/mongo/options"

// DefaultPageSize is how many documents a listing page holds
const DefaultPageSize = 20

type mongoPaginate struct {
	limit int64
	page  int64
}

// newMongoPaginate clamps page to at least 1 and a non-positive limit to DefaultPageSize
func newMongoPaginate(limit, page int) *mongoPaginate {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	return &mongoPaginate{
		limit: int64(limit),
		page:  int64(page),
	}
}

func (mp *mongoPaginate) getPaginatedOpts() *options.FindOptions {
	skip := mp.page*mp.limit - mp.limit
	return options.Find().SetLimit(mp.limit).SetSkip(skip)
}
