package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-nft-registry/internal/api/shared/constants"
	"github.com/feral-file/ff-nft-registry/internal/contract"
)

// PageQueryParams holds the pagination parameters of the listing endpoints
type PageQueryParams struct {
	FromIndex uint64 `form:"from_index,default=0"`
	Limit     uint64 `form:"limit,default=50"`
}

// ParsePageQuery parses pagination parameters, capping the limit at MAX_PAGE_SIZE
func ParsePageQuery(c *gin.Context) (*PageQueryParams, error) {
	var params PageQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit == 0 {
		params.Limit = constants.DEFAULT_TOKENS_LIMIT
	}
	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}

	return &params, nil
}

// Page converts the parameters to a registry page
func (p *PageQueryParams) Page() contract.Page {
	return contract.Page{FromIndex: p.FromIndex, Limit: p.Limit}
}
