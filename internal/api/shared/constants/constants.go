package constants

const (
	MAX_PAGE_SIZE        = uint64(100)
	DEFAULT_FROM_INDEX   = uint64(0)
	DEFAULT_TOKENS_LIMIT = uint64(50)
)
