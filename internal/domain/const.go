package domain

const (
	// Event standard constants
	NFT_STANDARD_NAME = "nep171"
	NFT_METADATA_SPEC = "1.0.0"

	// Collection metadata spec identifier
	NFT_COLLECTION_SPEC = "nft-1.0.0"

	// Media CID used by the stock mint
	STOCK_MEDIA_CID = "QmQsrnCZ9uoYwqWS66CwhGQFEMGCMFtjntBisEGggaKL9o"

	// Stock mint texts
	STOCK_TITLE_PREFIX = "NFT #"
	STOCK_DESCRIPTION  = "This NFT carries static metadata"

	// Confirmation messages
	MSG_TOKEN_MINTED = "token minted successfully"
	MSG_NFT_UPDATED  = "NFT updated"

	// Royalty shares are expressed in basis points
	ROYALTY_BASIS_POINTS = 10000
)
